// Package handler contains the HTTP handlers for the account API.
package handler

import (
	"net/http"

	"roster/internal/delivery/http/response"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountUsecase usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
	}
}

// Register handles new account registration
//
//	@Summary		Register a new account
//	@Description	Creates an account with a unique email and a bcrypt-hashed password
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usecase.RegisterInput	true	"Registration payload"
//	@Success		200		{object}	response.Response{data=usecase.RegisterOutput}
//	@Failure		400		{object}	response.Response
//	@Failure		500		{object}	response.Response
//	@Router			/api/user/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "Invalid request format")
	}

	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.accountUsecase.Register(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "Account registered successfully")
}

// Login handles credential verification
//
//	@Summary		Log in with email and password
//	@Description	Verifies credentials and returns the account profile
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usecase.LoginInput	true	"Login payload"
//	@Success		200		{object}	response.Response{data=usecase.LoginOutput}
//	@Failure		400		{object}	response.Response
//	@Failure		500		{object}	response.Response
//	@Router			/api/user/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "Invalid request format")
	}

	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.accountUsecase.Login(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Profile returns the profile of a single account
//
//	@Summary		Get an account profile
//	@Description	Returns the profile of the account identified by the userId query parameter
//	@Tags			user
//	@Produce		json
//	@Param			userId	query		string	true	"Account ID"
//	@Success		200		{object}	response.Response{data=usecase.AccountOutput}
//	@Failure		400		{object}	response.Response
//	@Failure		404		{object}	response.Response
//	@Router			/api/user/profile [get]
func (h *AccountHandler) Profile(c echo.Context) error {
	accountID, err := parseAccountID(c.QueryParam("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "userId must be a valid UUID")
	}

	output, err := h.accountUsecase.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "")
}

// ListAccounts returns every account
//
//	@Summary		List all accounts
//	@Description	Returns all registered accounts without pagination
//	@Tags			user
//	@Produce		json
//	@Success		200	{object}	response.Response{data=[]usecase.AccountOutput}
//	@Failure		500	{object}	response.Response
//	@Router			/api/user/getUsers [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	outputs, err := h.accountUsecase.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, outputs, "")
}

// UpdateAccount handles partial profile updates
//
//	@Summary		Update an account
//	@Description	Applies the provided fields to the account, leaving the rest untouched
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string						true	"Account ID"
//	@Param			request	body		usecase.UpdateAccountInput	true	"Fields to update"
//	@Success		200		{object}	response.Response{data=usecase.AccountOutput}
//	@Failure		400		{object}	response.Response
//	@Failure		404		{object}	response.Response
//	@Router			/api/user/update/{userId} [put]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	accountID, err := parseAccountID(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "userId must be a valid UUID")
	}

	var input usecase.UpdateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "Invalid request format")
	}

	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.accountUsecase.UpdateAccount(c.Request().Context(), accountID, &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "Account updated successfully")
}

// ChangePassword replaces the password of an account
//
//	@Summary		Change an account password
//	@Description	Hashes the new password and stores it for the account
//	@Tags			user
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string						true	"Account ID"
//	@Param			request	body		usecase.ChangePasswordInput	true	"New password"
//	@Success		200		{object}	response.Response
//	@Failure		400		{object}	response.Response
//	@Failure		500		{object}	response.Response
//	@Router			/api/user/changePassword/{userId} [post]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	accountID, err := parseAccountID(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "userId must be a valid UUID")
	}

	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_REQUEST", "Invalid request format")
	}

	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.accountUsecase.ChangePassword(c.Request().Context(), accountID, &input); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// DeleteAccount removes an account permanently
//
//	@Summary		Delete an account
//	@Description	Permanently removes the account identified by userId
//	@Tags			user
//	@Produce		json
//	@Param			userId	path		string	true	"Account ID"
//	@Success		200		{object}	response.Response
//	@Failure		400		{object}	response.Response
//	@Failure		404		{object}	response.Response
//	@Router			/api/user/delete/{userId} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	accountID, err := parseAccountID(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "userId must be a valid UUID")
	}

	if err := h.accountUsecase.DeleteAccount(c.Request().Context(), accountID); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted successfully")
}

func parseAccountID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
