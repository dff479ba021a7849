package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkpost/internal/logger"
	"inkpost/internal/models"
	"inkpost/internal/store"
	"inkpost/internal/utils"
)

// AuthService registers users, checks credentials and binds users to
// sessions.
type AuthService struct {
	users        store.UserRepository
	hashPassword func(string) (string, error)
}

type AuthOption func(*AuthService)

// WithPasswordHasher replaces the PBKDF2 hasher, e.g. with a cheaper
// iteration count in tests.
func WithPasswordHasher(h func(string) (string, error)) AuthOption {
	return func(s *AuthService) {
		s.hashPassword = h
	}
}

func NewAuthService(users store.UserRepository, opts ...AuthOption) *AuthService {
	s := &AuthService{
		users:        users,
		hashPassword: utils.HashPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type registration struct {
	Email    string `form:"email" validate:"required,email,max=250"`
	Name     string `form:"name" validate:"required,max=250"`
	Password string `form:"password" validate:"required"`
}

// Register creates an account and logs it in on sess.
func (s *AuthService) Register(ctx context.Context, sess Session, email, name, password string) (*models.User, error) {
	log := logger.FromContext(ctx)

	in := registration{
		Email:    NormalizeEmail(email),
		Name:     strings.TrimSpace(name),
		Password: password,
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{Email: in.Email, Name: in.Name, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// lost a race with a concurrent registration
			return nil, ErrDuplicateEmail
		}
		log.Err(err).Msg("user creation ended with error")
		return nil, fmt.Errorf("user creation ended with error: %w", err)
	}

	if err := s.establish(sess, user.ID); err != nil {
		return nil, err
	}
	log.Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies email and password and binds the user to sess. Failures
// are ErrUnknownEmail or ErrBadPassword, both wrapping ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, sess Session, email, password string) (*models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		log.Info().Uint("user_id", user.ID).Msg("wrong password")
		return nil, ErrBadPassword
	}

	if err := s.establish(sess, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout forgets the session's identity. Logging out twice is fine.
func (s *AuthService) Logout(sess Session) error {
	sess.Clear()
	if err := sess.Save(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// CurrentUser loads the session's user from the store on every call. It
// returns nil, nil for anonymous visitors and for sessions whose user no
// longer exists; the latter are cleared.
func (s *AuthService) CurrentUser(ctx context.Context, sess Session) (*models.User, error) {
	id, ok := sessionUserID(sess)
	if !ok {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		sess.Delete(SessionUserKey)
		if err := sess.Save(); err != nil {
			return nil, fmt.Errorf("saving session: %w", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", id, err)
	}
	return user, nil
}

func (s *AuthService) establish(sess Session, userID uint) error {
	sess.Clear()
	sess.Set(SessionUserKey, userID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
