package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles administrator registration, credential verification, and JWT
// token lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator
	ids       utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new administrator account.
//
// The email is lowercased, the password is hashed with bcrypt and the user is
// persisted with a fresh UUIDv7.
//
// Returns the persisted user or:
//   - ErrInvalidInput (wrapped) if a required field is missing or malformed.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is taken.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("func", "authService.RegisterUser").Msg("invalid registration data")
		return models.User{}, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("password hashing failed")
		return models.User{}, err
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		UserID:   a.ids.Generate(),
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	})
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an administrator by email and password.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials so
// that the response does not reveal which accounts exist.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("func", "authService.Login").Str("email", req.Email).Msg("unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(req.Password)); err != nil {
		log.Debug().Str("func", "authService.Login").Str("user_id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token carries the user id as subject, the email and username as
// private claims, the configured issuer, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Identity(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, wrong algorithm, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Authenticate parses tokenString and loads its subject. A token whose user
// has been deleted is rejected like an invalid one.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.Identity{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		logger.FromContext(ctx).Debug().Str("func", "authService.Authenticate").Str("user_id", token.UserID).Msg("token subject not found")
		return models.Identity{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user.Identity(), nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}
	return string(hash), nil
}
