package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrEmailAlreadyExists = errors.New("email address already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetActiveByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	ListActive(ctx context.Context) ([]models.UserDB, error)
	SearchActive(ctx context.Context, search string) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Insert(ctx context.Context, name, email, passwordHash string, age *int) (*models.UserDB, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.UserDB, error)
	SetActiveFlag(ctx context.Context, id int64, active bool) error
	HardDelete(ctx context.Context, id int64) error
}

// TokenIssuer defines an interface for generating JWT tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID int64) (string, error)
}

// bcrypt only reads the first 72 bytes of a password; Go's implementation
// rejects longer inputs outright. Validation allows up to 128 characters,
// so longer passwords are cut to the prefix bcrypt can use. The same cut
// applies on hash and on compare, keeping login consistent.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// AuthService handles registration and login.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt TokenIssuer) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register creates a new user with a hashed password. The duplicate check
// spans soft-deleted rows: a deleted user's email cannot be reused.
func (svc *AuthService) Register(ctx context.Context, name, email, password string, age *int) (*models.UserDB, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("email already taken", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Insert(ctx, name, email, string(hashed), age)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates an active user and returns it with a JWT token.
// A missing user and a wrong password both yield ErrInvalidCredentials so
// the response does not reveal which emails are registered.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetActiveByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Infow("login for unknown email", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes(password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, "", err
	}

	return user, token, nil
}
