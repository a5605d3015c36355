package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"everse/backend/services/auth-service/internal/models"
	"everse/backend/services/auth-service/internal/password"
	"everse/backend/services/auth-service/internal/repository"
)

var (
	// ErrEmailInUse is returned when attempting to register duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrInvalidCredentials represents login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidInput covers malformed signup payloads.
	ErrInvalidInput = errors.New("auth: invalid input")
	// ErrNotFound is returned for unknown user ids.
	ErrNotFound = errors.New("auth: user not found")
)

// UserRepository defines storage contract used by the service.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// SignupInput is the registration payload.
type SignupInput struct {
	Email    string
	Password string
	Role     string
	Profile  models.Profile
}

// AuthService contains registration/login logic.
type AuthService struct {
	repo   UserRepository
	hasher password.Hasher
	tokens *TokenIssuer
	logger *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo UserRepository, hasher password.Hasher, tokens *TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Signup registers a new user. Role defaults to customer.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, invalid("email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email is malformed")
	}

	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleCustomer
	}
	if !models.ValidRole(role) {
		return nil, invalid("role must be customer or manufacturer")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Profile:      trimProfile(in.Profile, role),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	s.logger.Info("user signed up",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role),
	)
	return user, nil
}

// Login checks credentials and issues a token. Hashes made with an outdated bcrypt cost are
// upgraded in place; a failed upgrade does not fail the login.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plain == "" {
		return nil, invalid("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.logger.Debug("password mismatch", zap.Int64("user_id", user.ID))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, plain)
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok.Value, ExpiresAt: tok.ExpiresAt, User: user}, nil
}

func (s *AuthService) rehash(ctx context.Context, user *models.User, plain string) {
	hash, err := s.hasher.Hash(plain)
	if err == nil {
		err = s.repo.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.logger.Warn("password rehash failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}
	user.PasswordHash = hash
}

// Profile returns the account for id.
func (s *AuthService) Profile(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, invalid("user id is required")
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// trimProfile drops the field group that does not belong to role.
func trimProfile(p models.Profile, role string) models.Profile {
	out := models.Profile{
		Name:  strings.TrimSpace(p.Name),
		Phone: strings.TrimSpace(p.Phone),
	}
	switch role {
	case models.RoleCustomer:
		out.CarModel = strings.TrimSpace(p.CarModel)
		out.ChargerModel = strings.TrimSpace(p.ChargerModel)
	case models.RoleManufacturer:
		out.CompanyName = strings.TrimSpace(p.CompanyName)
		out.BusinessEmail = strings.ToLower(strings.TrimSpace(p.BusinessEmail))
		out.LicenseNumber = strings.TrimSpace(p.LicenseNumber)
		out.ManufacturerType = strings.TrimSpace(p.ManufacturerType)
	}
	return out
}

type inputError struct{ msg string }

func (e *inputError) Error() string { return "auth: " + e.msg }

func (e *inputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error { return &inputError{msg: msg} }

// InputMessage returns the client facing part of a validation error.
func InputMessage(err error) string {
	var ie *inputError
	if errors.As(err, &ie) {
		return ie.msg
	}
	return "invalid input"
}
