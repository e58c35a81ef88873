package usecase

import (
	"testing"
	"time"

	"movievault/internal/entity"
	"movievault/pkg/apperrors"
	"movievault/pkg/jwt"
	"movievault/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func newAuthUseCase(repo *MockUserRepository) (AuthUseCase, *jwt.Service) {
	jwtService := jwt.NewService("test-secret-key", time.Hour)
	return NewAuthUseCase(repo, jwtService, logger.New()), jwtService
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("GetByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = "user-123"
	}).Return(nil)

	uc, jwtService := newAuthUseCase(repo)

	user, token, err := uc.Register("alice", "alice@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)

	// The issued token resolves back to the same identity.
	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	repo.AssertExpectations(t)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	repo.On("GetByUsername", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	var stored string
	repo.On("Create", mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		u := args.Get(0).(*entity.User)
		u.ID = "user-123"
		stored = u.Password
	}).Return(nil)

	uc, _ := newAuthUseCase(repo)

	_, _, err := uc.Register("alice", "alice@example.com", "password123")
	assert.NoError(t, err)

	assert.NotEqual(t, "password123", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("password123")))
}

func TestRegister_ValidationListsAllFields(t *testing.T) {
	uc, _ := newAuthUseCase(new(MockUserRepository))

	_, _, err := uc.Register("", "not-an-email", "123")

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "username")
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "password")
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", "alice@example.com").Return(&entity.User{ID: "existing"}, nil)

	uc, _ := newAuthUseCase(repo)

	_, _, err := uc.Register("alice", "alice@example.com", "password123")

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.KindConflict, appErr.Kind)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("GetByUsername", "alice").Return(&entity.User{ID: "existing"}, nil)

	uc, _ := newAuthUseCase(repo)

	_, _, err := uc.Register("alice", "alice@example.com", "password123")

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.KindConflict, appErr.Kind)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo := new(MockUserRepository)
	repo.On("GetByEmail", "alice@example.com").Return(&entity.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hash),
	}, nil)

	uc, jwtService := newAuthUseCase(repo)

	user, token, err := uc.Login("alice@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Empty(t, user.Password)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	uc, _ := newAuthUseCase(repo)

	_, _, err := uc.Login("ghost@example.com", "password123")

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.KindAuth, appErr.Kind)
	assert.Equal(t, "invalid credentials", appErr.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo := new(MockUserRepository)
	repo.On("GetByEmail", "alice@example.com").Return(&entity.User{
		ID:       "user-123",
		Password: string(hash),
	}, nil)

	uc, _ := newAuthUseCase(repo)

	// Wrong, empty, and almost-right passwords all fail the same way.
	for _, password := range []string{"wrong", "", "password123 "} {
		_, _, err := uc.Login("alice@example.com", password)

		appErr, ok := apperrors.As(err)
		assert.True(t, ok, "password %q", password)
		assert.Equal(t, apperrors.KindAuth, appErr.Kind)
		assert.Equal(t, "invalid credentials", appErr.Message)
	}
}

func TestGetUser_Found(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", "user-123").Return(&entity.User{ID: "user-123", Password: "hash"}, nil)

	uc, _ := newAuthUseCase(repo)

	user, err := uc.GetUser("user-123")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Empty(t, user.Password)
}

func TestGetUser_Gone(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	uc, _ := newAuthUseCase(repo)

	_, err := uc.GetUser("ghost")

	appErr, ok := apperrors.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperrors.KindAuth, appErr.Kind)
	assert.Equal(t, "user not found", appErr.Message)
}
