package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/internal/security"
	"github.com/taskvault/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	hasher *security.PasswordHasher
	tokens *security.TokenManager
	logger *zap.Logger
}

func New(users repository.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenManager, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a user with a freshly hashed password. A taken login
// fails with domain.ErrDuplicateLogin; the unique index on users.login
// backs the pre-check against concurrent registration.
func (uc *UseCase) Register(ctx context.Context, login, password, role string) (*domain.User, error) {
	if login == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	if _, err := uc.users.GetByLogin(ctx, login); err == nil {
		return nil, domain.ErrDuplicateLogin
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := uc.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = domain.DefaultRole
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Login:          login,
		HashedPassword: hashed,
		Role:           role,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown login
// and wrong password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, login, password string) (string, error) {
	user, err := uc.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := uc.hasher.Verify(ctx, user.HashedPassword, password); err != nil {
		return "", err
	}

	return uc.tokens.Issue(user.Login)
}

// ResolveToken validates the token and re-reads the user from storage,
// so a deleted account is rejected immediately regardless of token
// expiry.
func (uc *UseCase) ResolveToken(ctx context.Context, tokenString string) (*domain.User, error) {
	login, err := uc.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}
