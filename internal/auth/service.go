package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sai-laundry/laundry-backend/internal/users"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotVerified is returned when an unverified customer tries to log in.
	ErrNotVerified = errors.New("account awaiting verification")
	// ErrEmailTaken is returned when signup reuses an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// Service implements signup and login over the users store. New customers
// start unverified; only verified customers and admins may log in.
type Service struct {
	users  *users.Store
	tokens *Tokens
}

// NewService wires the auth service.
func NewService(userStore *users.Store, tokens *Tokens) *Service {
	return &Service{users: userStore, tokens: tokens}
}

// Signup registers a customer account. The account cannot log in until an
// admin verifies it.
func (s *Service) Signup(ctx context.Context, name, email, mobile, password string) (*users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := users.User{
		UID:          uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Mobile:       strings.TrimSpace(mobile),
		Email:        email,
		Role:         users.RoleCustomer,
		Verified:     false,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login checks credentials and the verification gate, returning a signed
// session token and the profile. Admins bypass the verified flag.
func (s *Service) Login(ctx context.Context, email, password string) (string, *users.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil || u.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if u.Role != users.RoleAdmin && !u.Verified {
		return "", nil, ErrNotVerified
	}

	token, err := s.tokens.Issue(u.UID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
