package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmptySearchQuery = errors.New("search query required")
)

// UserUpdate lists the fields a partial update may carry, with the password
// still in plaintext. The service hashes it before it reaches storage.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
	IsActive *bool
}

// UserService implements the user lifecycle: retrieval, update, soft and
// permanent deletion, search, and status toggling. All storage access goes
// through the injected reader and writer.
type UserService struct {
	reader UserReader
	writer UserWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
	}
}

// Get returns the active user with the given id.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := svc.reader.GetActiveByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns all active users in creation order.
func (svc *UserService) List(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.ListActive(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}

// Update applies a partial update to an active user. Only the supplied
// fields change; a supplied email must not collide with a different user
// (active or not), and a supplied password is re-hashed before storing.
func (svc *UserService) Update(ctx context.Context, id int64, upd UserUpdate) (*models.UserDB, error) {
	user, err := svc.reader.GetActiveByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user for update", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if upd.Email != nil {
		existing, err := svc.reader.GetByEmail(ctx, *upd.Email)
		if err != nil {
			logger.Log.Errorw("failed to check email collision", "err", err)
			return nil, err
		}
		if existing != nil && existing.ID != id {
			logger.Log.Infow("email already taken", "email", *upd.Email)
			return nil, ErrEmailAlreadyExists
		}
	}

	patch := models.UserPatch{
		Name:     upd.Name,
		Email:    upd.Email,
		Age:      upd.Age,
		IsActive: upd.IsActive,
	}

	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword(passwordBytes(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return nil, err
		}
		hashedStr := string(hashed)
		patch.PasswordHash = &hashedStr
	}

	// Nothing to change: skip the write, keep updated_at untouched
	if patch.IsEmpty() {
		return user, nil
	}

	updated, err := svc.writer.Update(ctx, id, patch)
	if err != nil {
		logger.Log.Errorw("failed to update user", "id", id, "err", err)
		return nil, err
	}

	return updated, nil
}

// Delete soft-deletes an active user by clearing its active flag. The row
// persists and stays addressable by id for toggle and permanent deletion.
func (svc *UserService) Delete(ctx context.Context, id int64) error {
	user, err := svc.reader.GetActiveByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user for delete", "id", id, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := svc.writer.SetActiveFlag(ctx, id, false); err != nil {
		logger.Log.Errorw("failed to soft delete user", "id", id, "err", err)
		return err
	}
	return nil
}

// PermanentlyDelete removes the row regardless of active status. Irreversible.
func (svc *UserService) PermanentlyDelete(ctx context.Context, id int64) error {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user for permanent delete", "id", id, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := svc.writer.HardDelete(ctx, id); err != nil {
		logger.Log.Errorw("failed to permanently delete user", "id", id, "err", err)
		return err
	}
	return nil
}

// Search returns active users whose name or email contains the query,
// case-insensitively. An empty query is an input error, not an empty result.
func (svc *UserService) Search(ctx context.Context, query string) ([]models.UserDB, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptySearchQuery
	}

	users, err := svc.reader.SearchActive(ctx, query)
	if err != nil {
		logger.Log.Errorw("failed to search users", "query", query, "err", err)
		return nil, err
	}
	return users, nil
}

// ToggleStatus flips is_active on any user found by id, active or not.
// This deliberately bypasses the active-only visibility used elsewhere so a
// soft-deleted user can be restored.
func (svc *UserService) ToggleStatus(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user for toggle", "id", id, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	newStatus := !user.IsActive
	updated, err := svc.writer.Update(ctx, id, models.UserPatch{IsActive: &newStatus})
	if err != nil {
		logger.Log.Errorw("failed to toggle user status", "id", id, "err", err)
		return nil, err
	}
	return updated, nil
}
