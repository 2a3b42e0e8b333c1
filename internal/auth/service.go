package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellpulse/wellpulse/internal/platform/httpx"
)

// Credentials carries an issued token together with the account it
// belongs to.
type Credentials struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// Service wraps signup and login business rules.
type Service struct {
	repo       Repository
	tokens     *TokenManager
	bcryptCost int
}

// NewService constructs a new Service. A non-positive cost falls back to
// bcrypt's default.
func NewService(repo Repository, tokens *TokenManager, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// Signup registers a new account and issues its first token. Email
// matching is case-insensitive: the address is lower-cased before both
// the duplicate check and storage.
func (s *Service) Signup(ctx context.Context, email, password string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return nil, httpx.DuplicateError("User with this email already exists")
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, email, string(hash))
	if err != nil {
		// Lost a race with a concurrent signup for the same address.
		if errors.Is(err, httpx.ErrDuplicate) {
			return nil, httpx.DuplicateError("User with this email already exists")
		}
		return nil, err
	}

	return s.issueFor(user)
}

// Login validates credentials and issues a token. A missing account and
// a wrong password return the same error so responses cannot be used to
// enumerate registered addresses.
func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.UnauthorizedError("Invalid email or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httpx.UnauthorizedError("Invalid email or password")
	}

	return s.issueFor(user)
}

// UserByID resolves an account by id.
func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindUserByID(ctx, id)
}

func (s *Service) issueFor(user *User) (*Credentials, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Credentials{Token: token, User: user.Public()}, nil
}
