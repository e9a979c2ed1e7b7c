package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

const SessionTTL = 24 * time.Hour

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

type AuthService struct {
	users         repository.UserRepository
	sessionSecret string
}

func NewAuthService(users repository.UserRepository, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

// Register creates a requester account. Self-registration never grants a
// support role; promotions go through the user directory.
func (a *AuthService) Register(ctx context.Context, email, name, password, businessUnit string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if _, err := mail.ParseAddress(email); err != nil || name == "" || len(password) < 6 {
		return nil, fmt.Errorf("%w: email, name and a password of at least 6 characters are required", repository.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", repository.ErrInvalidInput, maxPasswordBytes)
	}

	existing, _, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: %w", repository.ErrInvalidInput, err)
	}
	if err != nil {
		return nil, err
	}
	u := &models.User{Email: email, Name: name, Role: models.RoleUser, BusinessUnit: strings.TrimSpace(businessUnit)}
	// A concurrent sign-up can still hit the unique email index.
	if err := a.users.Create(ctx, u, hash); errors.Is(err, repository.ErrConflict) {
		return nil, ErrEmailTaken
	} else if err != nil {
		return nil, err
	}
	return u, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (token string, user *models.User, err error) {
	u, hash, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil || hash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(hash, password) {
		return "", nil, ErrInvalidCredentials
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, string(u.Role), SessionTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}
