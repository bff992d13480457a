package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a
// wrong password alike.
var ErrInvalidCredentials = errs.NewUnauthorizedError("Invalid email or password", true)

type UserService struct {
	users       userStore
	emails      EmailQueue
	logger      *zerolog.Logger
	bcryptCost  int
	compareHash func(hash, password []byte) error

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(users userStore, emails EmailQueue, logger *zerolog.Logger) *UserService {
	return &UserService{
		users:       users,
		emails:      emails,
		logger:      logger,
		bcryptCost:  bcrypt.DefaultCost,
		compareHash: bcrypt.CompareHashAndPassword,
	}
}

// unknownUserHash is compared against when the email has no account, so an
// unknown email costs the same bcrypt work as a wrong password.
func (s *UserService) unknownUserHash() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("lightbnb-unknown-user"), s.bcryptCost)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to generate placeholder password hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Register stores a new user with a bcrypt-hashed password and queues the
// welcome email. A queue failure is logged, the user is still created.
func (s *UserService) Register(ctx context.Context, name, email, password string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.users.AddUser(ctx, model.NewUser{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hash),
	})
	if err != nil {
		return model.User{}, err
	}

	if s.emails != nil {
		if err := s.emails.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

// Login returns the user whose email and password match.
func (s *UserService) Login(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.users.GetUserWithEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if sqlerr.IsNotFound(err) {
			_ = s.compareHash(s.unknownUserHash(), []byte(password))
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}

	if err := s.compareHash([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.users.GetUserWithID(ctx, id)
}
