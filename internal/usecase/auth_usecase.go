package usecase

import (
	"errors"
	"regexp"
	"strings"

	"movievault/internal/entity"
	"movievault/internal/repo/persistent"
	"movievault/pkg/apperrors"
	"movievault/pkg/jwt"
	"movievault/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUseCase interface {
	Register(username, email, password string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dummyHash keeps login cost comparable whether or not the email exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("movievault-timing-pad"), bcrypt.DefaultCost)

func (uc *authUseCase) Register(username, email, password string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	fields := map[string]string{}
	if username == "" {
		fields["username"] = "username is required"
	} else if len(username) < 3 || len(username) > 50 {
		fields["username"] = "username must be between 3 and 50 characters"
	}
	if email == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "email is not a valid address"
	}
	if password == "" {
		fields["password"] = "password is required"
	} else if len(password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return nil, "", apperrors.Validation(fields)
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", apperrors.Conflict("user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to look up email %s: %v", email, err)
		return nil, "", apperrors.Internal("failed to register", err)
	}

	if _, err := uc.userRepo.GetByUsername(username); err == nil {
		return nil, "", apperrors.Conflict("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.logger.Error("Failed to look up username %s: %v", username, err)
		return nil, "", apperrors.Internal("failed to register", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperrors.Internal("failed to register", err)
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", apperrors.Internal("failed to create user", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperrors.Internal("failed to generate token", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		// Burn a hash comparison so unknown emails cost the same as a
		// wrong password.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, "", apperrors.Auth("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.Auth("invalid credentials")
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperrors.Internal("failed to generate token", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Auth("user not found")
		}
		return nil, apperrors.Internal("failed to load user", err)
	}
	user.Password = ""
	return user, nil
}
