package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"remodel-portal/internal/config"
	"remodel-portal/internal/logger"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
	"remodel-portal/models"
)

// usernameRe bounds usernames to 3-30 lowercase word characters.
var usernameRe = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)

const minPasswordLength = 6

// authService is the concrete implementation of AuthService.
// It handles account creation and credential verification using a
// UserRepository for persistence and bcrypt for password hashing. Sessions
// are issued by an external layer; this service only vouches for identities.
type authService struct {
	userRepository store.UserRepository

	// bcryptCost is the work factor applied when hashing passwords.
	// Values below utils.MinBcryptCost are raised there.
	bcryptCost int

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and configured with the hashing cost from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, ids *utils.UUIDGenerator, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		bcryptCost:     cfg.BcryptCost,
		ids:            ids,
		logger:         logger,
	}
}

// CreateUser creates a new account.
//
// Username and e-mail are trimmed and lowercased before validation, the
// plaintext password is bcrypt-hashed and discarded, and persistence is
// delegated to the UserRepository.
//
// Returns the persisted user (with a server-assigned id and the password
// fields blanked) or:
//   - a *ValidationError when a field fails validation.
//   - a wrapped storage error when the repository call fails (e.g. username
//     or e-mail already taken, see store.ErrUserAlreadyExists).
func (a *authService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Name = strings.TrimSpace(user.Name)

	if err := validateNewUser(user); err != nil {
		log.Err(err).Str("username", user.Username).Msg("invalid user data provided")
		return models.User{}, err
	}

	hash, err := utils.HashPassword(user.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user.ID = a.ids.Generate()
	user.Password = ""
	user.PasswordHash = hash
	user.IsActive = true
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	created.PasswordHash = ""
	return created, nil
}

// LookupUser finds an account by username or e-mail. The identifier is
// matched case-insensitively.
func (a *authService) LookupUser(ctx context.Context, identifier string) (models.User, error) {
	log := logger.FromContext(ctx)

	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	found, err := a.userRepository.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return found, nil
}

// ResolveByID finds an account by its id. Used by the authorization
// middleware to turn an x-user-id header into an identity.
func (a *authService) ResolveByID(ctx context.Context, id string) (models.User, error) {
	if id == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	found, err := a.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup by id failed: %w", err)
	}

	return found, nil
}

// VerifyCredentials authenticates an identifier/password pair.
//
// Returns the matching user record or:
//   - ErrInvalidDataProvided when identifier or password is empty.
//   - ErrWrongCredentials when no account matches or the password is wrong.
//     The two cases are deliberately indistinguishable.
//   - ErrUserDeactivated when the account exists but is inactive.
func (a *authService) VerifyCredentials(ctx context.Context, identifier string, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	found, err := a.userRepository.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("identifier", identifier).Msg("credential check for unknown identifier")
			return models.User{}, ErrWrongCredentials
		}
		log.Err(err).Str("identifier", identifier).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !found.IsActive {
		log.Warn().Str("id", found.ID).Msg("credential check for deactivated account")
		return models.User{}, ErrUserDeactivated
	}

	if !utils.VerifyPassword(found.PasswordHash, password) {
		log.Warn().Str("id", found.ID).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return found, nil
}

// RecordLogin stamps the account's last successful login. Unknown ids are
// silently ignored by the store.
func (a *authService) RecordLogin(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidDataProvided
	}

	if err := a.userRepository.UpdateLastLogin(ctx, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("recording login failed: %w", err)
	}

	return nil
}

// EnsureBootstrapAdmin seeds the configured administrator account on startup.
// When an account with the configured e-mail already exists, or the
// configuration leaves e-mail or password blank, nothing happens.
func (a *authService) EnsureBootstrapAdmin(ctx context.Context, cfg config.Bootstrap) error {
	log := logger.FromContext(ctx)

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Debug().Msg("bootstrap admin not configured, skipping")
		return nil
	}

	_, err := a.userRepository.FindUserByIdentifier(ctx, strings.ToLower(cfg.AdminEmail))
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("bootstrap admin lookup failed: %w", err)
	}

	username := cfg.AdminUsername
	if username == "" {
		username = "admin"
	}

	created, err := a.CreateUser(ctx, models.User{
		Username: username,
		Email:    cfg.AdminEmail,
		Name:     "Administrator",
		Password: cfg.AdminPassword,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin creation failed: %w", err)
	}

	log.Info().Str("id", created.ID).Str("email", created.Email).Msg("bootstrap admin created")
	return nil
}

// validateNewUser checks the normalized fields of an account about to be
// created.
func validateNewUser(user models.User) error {
	if !usernameRe.MatchString(user.Username) {
		return newValidationError("username", "must be 3-30 characters of a-z, 0-9, '_' or '-'")
	}

	if _, err := mail.ParseAddress(user.Email); err != nil {
		return newValidationError("email", "must be a valid e-mail address")
	}

	if n := utf8.RuneCountInString(user.Name); n < 2 || n > 100 {
		return newValidationError("name", "must be 2-100 characters")
	}

	if len(user.Password) < minPasswordLength {
		return newValidationError("password", "must be at least %d characters", minPasswordLength)
	}

	if user.Role != "" && user.Role != models.RoleAdmin && user.Role != models.RoleUser {
		return newValidationError("role", "must be %q or %q", models.RoleAdmin, models.RoleUser)
	}

	return nil
}
