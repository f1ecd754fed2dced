// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "roster/internal/delivery/context"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	role := entity.DefaultRole
	if input.Role != "" {
		role = entity.Role(input.Role)
		if !role.IsValid() {
			srv.log(ctx).Warn("Registration rejected, unknown role", slog.String("role", input.Role))

			return nil, domainerrors.ErrInvalidRole.WrapMessage("unknown role " + input.Role)
		}
	}

	// Hash outside the transaction; bcrypt is CPU-bound.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         role,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, findErr := accountRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check email uniqueness")
		}

		// The unique index still arbitrates concurrent registrations for the same email.
		if createErr := accountRepo.Create(ctx, newAccount); createErr != nil {
			if errors.Is(createErr, repository.ErrEmailTaken) {
				return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
			}

			return errors.Wrap(createErr, "failed to create account during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.publishEvent(ctx, service.EventAccountRegistered, newAccount)
	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", newAccount.ID))

	return &usecase.RegisterOutput{Account: toAccountOutput(newAccount)}, nil
}

// Login verifies an account's credentials and returns its identity.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrEmailNotFound.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{Account: toAccountOutput(account)}, nil
}

// GetProfile fetches a single account by its identifier.
func (srv *accountService) GetProfile(ctx context.Context, id uuid.UUID) (*usecase.AccountOutput, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("profile not found")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountOutput(account), nil
}

// ListAccounts returns every account. Unbounded by design; see DESIGN.md.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*usecase.AccountOutput, error) {
	accounts, err := srv.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	outputs := make([]*usecase.AccountOutput, 0, len(accounts))
	for _, account := range accounts {
		outputs = append(outputs, toAccountOutput(account))
	}

	return outputs, nil
}

// UpdateAccount applies a partial update; fields left nil retain their prior values.
func (srv *accountService) UpdateAccount(ctx context.Context, id uuid.UUID, input *usecase.UpdateAccountInput) (*usecase.AccountOutput, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account to update not found")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Email != nil {
		account.Email = *input.Email
	}
	if input.Phone != nil {
		account.Phone = *input.Phone
	}

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Warn("Account update failed", slog.Any("accountID", id), slog.Any("error", err))

		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
		}

		return nil, errors.Wrap(err, "failed to update account")
	}

	srv.log(ctx).Debug("Account updated", slog.Any("accountID", id))

	return toAccountOutput(account), nil
}

// ChangePassword replaces the stored credential for an account.
// The previous password stops working as soon as the update is persisted.
func (srv *accountService) ChangePassword(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) error {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrInvalidAccountID.WrapMessage("no account for the given id")
		}

		return errors.Wrap(err, "failed to find account by id")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during password change", slog.Any("accountID", id), slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}

	account.PasswordHash = hashedPassword
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to persist new password")
	}

	srv.publishEvent(ctx, service.EventAccountPasswordChanged, account)
	srv.log(ctx).Info("Password changed", slog.Any("accountID", id))

	return nil
}

// DeleteAccount removes an account permanently.
func (srv *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("account to delete not found")
		}

		return errors.Wrap(err, "failed to find account by id")
	}

	if err := srv.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("account to delete not found")
		}

		return errors.Wrap(err, "failed to delete account")
	}

	srv.publishEvent(ctx, service.EventAccountDeleted, account)
	srv.log(ctx).Info("Account deleted", slog.Any("accountID", id))

	return nil
}

// publishEvent emits a lifecycle event. Failures are logged and never surfaced
// to the caller; the account operation already succeeded.
func (srv *accountService) publishEvent(ctx context.Context, eventType string, account *entity.Account) {
	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  eventType,
		AccountID:  account.ID.String(),
		Email:      account.Email,
		Role:       account.Role.String(),
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account event",
			slog.String("event_type", eventType),
			slog.Any("accountID", account.ID),
			slog.Any("error", err),
		)
	}
}

// toAccountOutput maps a domain entity to the caller-facing DTO.
// The password hash never crosses this boundary.
func toAccountOutput(account *entity.Account) *usecase.AccountOutput {
	if account == nil {
		return nil
	}

	return &usecase.AccountOutput{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Phone:     account.Phone,
		Role:      account.Role.String(),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}
