package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roster/internal/delivery/http/validator"
	domainerrors "roster/internal/domain/errors"
	mockUsecase "roster/internal/mocks/usecase"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func TestAccountHandler_Register_Success(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	accountID := uuid.New()
	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Run(func(ctx context.Context, input *usecase.RegisterInput) {
			assert.Equal(t, "test@example.com", input.Email)
		}).
		Return(&usecase.RegisterOutput{
			Account: &usecase.AccountOutput{
				ID:    accountID,
				Name:  "Test User",
				Email: "test@example.com",
				Role:  "ADMIN",
			},
		}, nil)

	body := `{"name":"Test User","email":"test@example.com","password":"Password123!"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), accountID.String())
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAccountHandler_Register_MissingEmail(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	body := `{"name":"Test User","password":"Password123!"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)

	// Validation failure surfaces as an HTTPError for the error middleware
	require.Error(t, err)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAccountHandler_Login_PropagatesUsecaseError(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed"))

	body := `{"email":"test@example.com","password":"wrong"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.ErrorCode())
}

func TestAccountHandler_Profile_InvalidUserID(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile?userId=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Profile(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ACCOUNT_ID")
}

func TestAccountHandler_Profile_Success(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	accountID := uuid.New()
	uc.EXPECT().
		GetProfile(mock.Anything, accountID).
		Return(&usecase.AccountOutput{
			ID:    accountID,
			Name:  "Test User",
			Email: "test@example.com",
			Role:  "STUDENT",
		}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile?userId="+accountID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Profile(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test@example.com")
}

func TestAccountHandler_ListAccounts_Success(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	uc.EXPECT().
		ListAccounts(mock.Anything).
		Return([]*usecase.AccountOutput{
			{ID: uuid.New(), Name: "First", Email: "first@example.com", Role: "ADMIN"},
			{ID: uuid.New(), Name: "Second", Email: "second@example.com", Role: "STUDENT"},
		}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/user/getUsers", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ListAccounts(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "first@example.com")
	assert.Contains(t, rec.Body.String(), "second@example.com")
}

func TestAccountHandler_UpdateAccount_Success(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	accountID := uuid.New()
	uc.EXPECT().
		UpdateAccount(mock.Anything, accountID, mock.AnythingOfType("*usecase.UpdateAccountInput")).
		Return(&usecase.AccountOutput{
			ID:    accountID,
			Name:  "Renamed",
			Email: "test@example.com",
			Role:  "STUDENT",
		}, nil)

	body := `{"name":"Renamed"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/user/update/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(accountID.String())

	err := handler.UpdateAccount(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Renamed")
}

func TestAccountHandler_ChangePassword_Success(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	accountID := uuid.New()
	uc.EXPECT().
		ChangePassword(mock.Anything, accountID, mock.AnythingOfType("*usecase.ChangePasswordInput")).
		Return(nil)

	body := `{"password":"NewPassword456!"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/user/changePassword/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(accountID.String())

	err := handler.ChangePassword(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_DeleteAccount_InvalidUserID(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/user/delete/:userId")
	c.SetParamNames("userId")
	c.SetParamValues("42")

	err := handler.DeleteAccount(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ACCOUNT_ID")
}

func TestAccountHandler_DeleteAccount_Success(t *testing.T) {
	uc := mockUsecase.NewMockAccountUsecase(t)
	handler := NewAccountHandler(uc)

	accountID := uuid.New()
	uc.EXPECT().DeleteAccount(mock.Anything, accountID).Return(nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/user/delete/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(accountID.String())

	err := handler.DeleteAccount(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
