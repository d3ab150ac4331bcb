package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/usersphere/internal/logger"
	"github.com/sbilibin2017/usersphere/internal/models"
)

const userColumns = "id, name, email, password_hash, age, is_active, created_at, updated_at"

// squish collapses a multi-line query to a single line for logging.
func squish(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// UserReadRepository handles user read operations.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user query",
		"query", squish(query),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActiveByID returns the active user with the given id, or nil if absent.
func (r *UserReadRepository) GetActiveByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND is_active = TRUE
	`
	return r.getOne(ctx, query, id)
}

// GetActiveByEmail returns the active user with the given email, or nil if absent.
func (r *UserReadRepository) GetActiveByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND is_active = TRUE
	`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with the given id regardless of active status.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetByEmail returns the user with the given email regardless of active
// status. Email uniqueness spans soft-deleted rows, so duplicate checks
// must go through here.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

// ListActive returns all active users in creation order.
func (r *UserReadRepository) ListActive(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_active = TRUE
		ORDER BY id
	`

	var users []models.UserDB
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("user query",
		"query", squish(query),
		"count", len(users),
		"error", err,
	)

	return users, err
}

// SearchActive returns active users whose name or email contains the query,
// case-insensitively, in creation order.
func (r *UserReadRepository) SearchActive(ctx context.Context, search string) ([]models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_active = TRUE
		  AND (name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY id
	`

	var users []models.UserDB
	err := r.db.SelectContext(ctx, &users, query, search)

	logger.Log.Infow("user query",
		"query", squish(query),
		"args", []any{search},
		"count", len(users),
		"error", err,
	)

	return users, err
}

// UserWriteRepository handles user write operations. When a transaction is
// present in the context (see middlewares.TxMiddleware) it is used instead
// of the bare connection.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Insert creates a new user row and returns it with the assigned id.
func (r *UserWriteRepository) Insert(ctx context.Context, name, email, passwordHash string, age *int) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (name, email, password_hash, age, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW(), NOW())
		RETURNING ` + userColumns + `
	`
	args := []any{name, email, passwordHash, age}

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)

	logger.Log.Infow("user query",
		"query", squish(query),
		"args", []any{name, email, age},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the non-nil fields of the patch to the given row and stamps
// updated_at. Returns the updated row, or sql.ErrNoRows if the id is absent.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.UserDB, error) {
	set := make([]string, 0, 6)
	args := make([]any, 0, 6)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		add("password_hash", *patch.PasswordHash)
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	set = append(set, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), userColumns,
	)

	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)

	logger.Log.Infow("user query",
		"query", squish(query),
		"id", id,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetActiveFlag sets is_active on the given row and stamps updated_at.
// Returns sql.ErrNoRows if the id is absent.
func (r *UserWriteRepository) SetActiveFlag(ctx context.Context, id int64, active bool) error {
	const query = `
		UPDATE users
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, id, active)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user query",
		"query", squish(query),
		"args", []any{id, active},
		"rows", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// HardDelete permanently removes the row regardless of active status.
// Returns sql.ErrNoRows if the id is absent.
func (r *UserWriteRepository) HardDelete(ctx context.Context, id int64) error {
	const query = `
		DELETE FROM users
		WHERE id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user query",
		"query", squish(query),
		"args", []any{id},
		"rows", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
