package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/usersphere/internal/models"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupUserPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		age INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserRepository_Lifecycle(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	age := 30
	ann, err := writeRepo.Insert(ctx, "Ann Lee", "ann@x.com", "digest-a", &age)
	assert.NoError(t, err)
	assert.NotZero(t, ann.ID)
	assert.True(t, ann.IsActive)
	assert.Equal(t, ann.CreatedAt, ann.UpdatedAt)

	bob, err := writeRepo.Insert(ctx, "Bob Smith", "bob@example.com", "digest-b", nil)
	assert.NoError(t, err)
	assert.Nil(t, bob.Age)

	t.Run("duplicate email is rejected by the table", func(t *testing.T) {
		_, err := writeRepo.Insert(ctx, "Second Ann", "ann@x.com", "digest-c", nil)
		assert.Error(t, err)
	})

	t.Run("list returns active users in creation order", func(t *testing.T) {
		users, err := readRepo.ListActive(ctx)
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, ann.ID, users[0].ID)
		assert.Equal(t, bob.ID, users[1].ID)
	})

	t.Run("search is case insensitive over name and email", func(t *testing.T) {
		byName, err := readRepo.SearchActive(ctx, "ANN")
		assert.NoError(t, err)
		assert.Len(t, byName, 1)
		assert.Equal(t, "Ann Lee", byName[0].Name)

		byEmail, err := readRepo.SearchActive(ctx, "example.com")
		assert.NoError(t, err)
		assert.Len(t, byEmail, 1)
		assert.Equal(t, "Bob Smith", byEmail[0].Name)
	})

	t.Run("partial update stamps updated_at and keeps other fields", func(t *testing.T) {
		name := "Anna Lee"
		updated, err := writeRepo.Update(ctx, ann.ID, models.UserPatch{Name: &name})
		assert.NoError(t, err)
		assert.Equal(t, name, updated.Name)
		assert.Equal(t, ann.Email, updated.Email)
		assert.Equal(t, ann.Age, updated.Age)
		assert.True(t, updated.UpdatedAt.After(ann.UpdatedAt))
		assert.Equal(t, ann.CreatedAt, updated.CreatedAt)
	})

	t.Run("soft deleted user disappears from active reads but stays addressable", func(t *testing.T) {
		assert.NoError(t, writeRepo.SetActiveFlag(ctx, bob.ID, false))

		active, err := readRepo.GetActiveByID(ctx, bob.ID)
		assert.NoError(t, err)
		assert.Nil(t, active)

		found, err := readRepo.SearchActive(ctx, "bob")
		assert.NoError(t, err)
		assert.Empty(t, found)

		anyStatus, err := readRepo.GetByID(ctx, bob.ID)
		assert.NoError(t, err)
		assert.NotNil(t, anyStatus)
		assert.False(t, anyStatus.IsActive)

		byEmail, err := readRepo.GetByEmail(ctx, "bob@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, byEmail)
	})

	t.Run("hard delete removes the row for good", func(t *testing.T) {
		assert.NoError(t, writeRepo.HardDelete(ctx, bob.ID))

		gone, err := readRepo.GetByID(ctx, bob.ID)
		assert.NoError(t, err)
		assert.Nil(t, gone)
	})
}
