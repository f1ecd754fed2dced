package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	mockRepo "roster/internal/mocks/repository"
	mockSvc "roster/internal/mocks/service"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	txManager   *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
	publisher   *mockSvc.MockEventPublisher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewAccountService(AccountServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		Hasher:      hasher,
		Publisher:   publisher,
		Logger:      logger,
	})

	return accountServiceFixtures{
		service:     svc,
		txManager:   txManager,
		accountRepo: accountRepo,
		hasher:      hasher,
		publisher:   publisher,
	}
}

func testAccount(role entity.Role) *entity.Account {
	return &entity.Account{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "test@example.com",
		Phone:        "0912345678",
		Role:         role,
		PasswordHash: "hashed_password",
		CreatedAt:    time.Now().Add(-time.Hour),
		UpdatedAt:    time.Now().Add(-time.Hour),
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrAccountNotFound)

			mockAccountRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, account *entity.Account) {
					account.ID = uuid.New()
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.publisher.EXPECT().
		PublishAccountEvent(ctx, mock.AnythingOfType("*service.AccountEvent")).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Email, output.Account.Email)
}

func TestAccountService_Register_DefaultsToAdminRole(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
		// Role intentionally omitted
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	var createdRole entity.Role
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrAccountNotFound)

			mockAccountRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, account *entity.Account) {
					account.ID = uuid.New()
					createdRole = account.Role
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.publisher.EXPECT().
		PublishAccountEvent(ctx, mock.AnythingOfType("*service.AccountEvent")).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, createdRole)
	assert.Equal(t, entity.RoleAdmin.String(), output.Account.Role)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(testAccount(entity.RoleAdmin), nil)

			return fn(mockFactory)
		})

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAccountService_Register_DuplicateEmailOnCreate(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "raced@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrAccountNotFound)

			// Concurrent registration won the race; the unique index reports it.
			mockAccountRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Account")).
				Return(repository.ErrEmailTaken)

			return fn(mockFactory)
		})

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAccountService_Register_InvalidRole(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
		Role:     "SUPERUSER",
	}

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("", errors.New("bcrypt failure"))

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := testAccount(entity.RoleStudent)
	input := &usecase.LoginInput{
		Email:    account.Email,
		Password: "Password123!",
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(account, nil)
	fx.hasher.EXPECT().Check(input.Password, account.PasswordHash).Return(true)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, account.ID, output.Account.ID)
	assert.Equal(t, account.Email, output.Account.Email)
}

func TestAccountService_Login_EmailNotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "missing@example.com",
		Password: "Password123!",
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailNotFound)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := testAccount(entity.RoleAdmin)
	input := &usecase.LoginInput{
		Email:    account.Email,
		Password: "wrong-password",
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, input.Email).Return(account, nil)
	fx.hasher.EXPECT().Check(input.Password, account.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_GetProfile_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := testAccount(entity.RoleStudent)

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)

	output, err := fx.service.GetProfile(ctx, account.ID)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, account.ID, output.ID)
	assert.Equal(t, account.Name, output.Name)
	assert.Equal(t, account.Email, output.Email)
	assert.Equal(t, account.Role.String(), output.Role)
}

func TestAccountService_GetProfile_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.GetProfile(ctx, id)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAccountService_ListAccounts_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accounts := []*entity.Account{
		testAccount(entity.RoleAdmin),
		testAccount(entity.RoleStudent),
	}

	fx.accountRepo.EXPECT().ListAll(ctx).Return(accounts, nil)

	outputs, err := fx.service.ListAccounts(ctx)

	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, accounts[0].ID, outputs[0].ID)
	assert.Equal(t, accounts[1].ID, outputs[1].ID)
}

func TestAccountService_ListAccounts_Empty(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.accountRepo.EXPECT().ListAll(ctx).Return(nil, nil)

	outputs, err := fx.service.ListAccounts(ctx)

	require.NoError(t, err)
	assert.Empty(t, outputs)
}

func TestAccountService_UpdateAccount_PartialUpdatePreservesFields(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := testAccount(entity.RoleStudent)
	originalEmail := account.Email
	originalPhone := account.Phone

	newName := "Renamed User"
	input := &usecase.UpdateAccountInput{Name: &newName}

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.accountRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, newName, updated.Name)
			assert.Equal(t, originalEmail, updated.Email)
			assert.Equal(t, originalPhone, updated.Phone)
		}).
		Return(nil)

	output, err := fx.service.UpdateAccount(ctx, account.ID, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, newName, output.Name)
	assert.Equal(t, originalEmail, output.Email)
}

func TestAccountService_UpdateAccount_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()
	newName := "Renamed User"

	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.UpdateAccount(ctx, id, &usecase.UpdateAccountInput{Name: &newName})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAccountService_UpdateAccount_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := testAccount(entity.RoleStudent)
	newEmail := "taken@example.com"

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.accountRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Return(repository.ErrEmailTaken)

	output, err := fx.service.UpdateAccount(ctx, account.ID, &usecase.UpdateAccountInput{Email: &newEmail})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAccountService_ChangePassword_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := testAccount(entity.RoleStudent)
	input := &usecase.ChangePasswordInput{Password: "NewPassword456!"}

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("new_hashed_password", nil)
	fx.accountRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, "new_hashed_password", updated.PasswordHash)
		}).
		Return(nil)
	fx.publisher.EXPECT().
		PublishAccountEvent(ctx, mock.AnythingOfType("*service.AccountEvent")).
		Run(func(ctx context.Context, event *service.AccountEvent) {
			assert.Equal(t, service.EventAccountPasswordChanged, event.EventType)
		}).
		Return(nil)

	err := fx.service.ChangePassword(ctx, account.ID, input)

	require.NoError(t, err)
}

func TestAccountService_ChangePassword_UnknownAccount(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrAccountNotFound)

	err := fx.service.ChangePassword(ctx, id, &usecase.ChangePasswordInput{Password: "NewPassword456!"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAccountID)
}

func TestAccountService_DeleteAccount_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := testAccount(entity.RoleAdmin)

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.accountRepo.EXPECT().Delete(ctx, account.ID).Return(nil)
	fx.publisher.EXPECT().
		PublishAccountEvent(ctx, mock.AnythingOfType("*service.AccountEvent")).
		Run(func(ctx context.Context, event *service.AccountEvent) {
			assert.Equal(t, service.EventAccountDeleted, event.EventType)
			assert.Equal(t, account.ID.String(), event.AccountID)
		}).
		Return(nil)

	err := fx.service.DeleteAccount(ctx, account.ID)

	require.NoError(t, err)
}

func TestAccountService_DeleteAccount_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrAccountNotFound)

	err := fx.service.DeleteAccount(ctx, id)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAccountService_DeleteAccount_PublishFailureDoesNotFailOperation(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := testAccount(entity.RoleStudent)

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.accountRepo.EXPECT().Delete(ctx, account.ID).Return(nil)
	fx.publisher.EXPECT().
		PublishAccountEvent(ctx, mock.AnythingOfType("*service.AccountEvent")).
		Return(errors.New("broker unavailable"))

	err := fx.service.DeleteAccount(ctx, account.ID)

	require.NoError(t, err)
}

func TestAccountService_OutputOmitsPasswordHash(t *testing.T) {
	account := testAccount(entity.RoleStudent)

	output := toAccountOutput(account)

	require.NotNil(t, output)
	assert.Equal(t, account.ID, output.ID)
	// AccountOutput has no password field at all; spot-check the mapped values.
	assert.Equal(t, account.Email, output.Email)
	assert.Equal(t, account.CreatedAt, output.CreatedAt)
}
