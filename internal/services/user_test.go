package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/usersphere/internal/models"
	"github.com/sbilibin2017/usersphere/internal/services"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func boolPtr(b bool) *bool { return &b }

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewUserService(mockReader, mockWriter)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(&models.UserDB{ID: 1, Name: "Ann Lee", IsActive: true}, nil)

		user, err := svc.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(99)).
			Return(nil, nil)

		user, err := svc.Get(ctx, 99)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(nil, errors.New("db error"))

		_, err := svc.Get(ctx, 1)
		assert.EqualError(t, err, "db error")
	})
}

func TestUserService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewUserService(mockReader, mockWriter)

	expected := []models.UserDB{
		{ID: 1, Name: "Ann Lee", IsActive: true},
		{ID: 2, Name: "Bob Smith", IsActive: true},
	}

	mockReader.EXPECT().
		ListActive(gomock.Any()).
		Return(expected, nil)

	users, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, users)
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewUserService(mockReader, mockWriter)
	ctx := context.Background()

	active := &models.UserDB{ID: 1, Name: "Ann Lee", Email: "ann@x.com", IsActive: true}

	t.Run("partial update changes only supplied fields", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(active, nil)

		mockWriter.EXPECT().
			Update(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, id int64, patch models.UserPatch) (*models.UserDB, error) {
				assert.Equal(t, "Anna Lee", *patch.Name)
				assert.Nil(t, patch.Email)
				assert.Nil(t, patch.PasswordHash)
				assert.Nil(t, patch.Age)
				updated := *active
				updated.Name = *patch.Name
				updated.UpdatedAt = time.Now()
				return &updated, nil
			})

		user, err := svc.Update(ctx, 1, services.UserUpdate{Name: strPtr("Anna Lee")})
		assert.NoError(t, err)
		assert.Equal(t, "Anna Lee", user.Name)
		assert.Equal(t, "ann@x.com", user.Email)
	})

	t.Run("password is re-hashed before storing", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(active, nil)

		mockWriter.EXPECT().
			Update(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, id int64, patch models.UserPatch) (*models.UserDB, error) {
				assert.NotNil(t, patch.PasswordHash)
				assert.NotEqual(t, "newsecret", *patch.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*patch.PasswordHash), []byte("newsecret")))
				return active, nil
			})

		_, err := svc.Update(ctx, 1, services.UserUpdate{Password: strPtr("newsecret")})
		assert.NoError(t, err)
	})

	t.Run("email collision with different user", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(active, nil)
		mockReader.EXPECT().
			GetByEmail(gomock.Any(), "bob@example.com").
			Return(&models.UserDB{ID: 2, Email: "bob@example.com"}, nil)

		user, err := svc.Update(ctx, 1, services.UserUpdate{Email: strPtr("bob@example.com")})
		assert.ErrorIs(t, err, services.ErrEmailAlreadyExists)
		assert.Nil(t, user)
	})

	t.Run("own email is not a collision", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(active, nil)
		mockReader.EXPECT().
			GetByEmail(gomock.Any(), "ann@x.com").
			Return(active, nil)
		mockWriter.EXPECT().
			Update(gomock.Any(), int64(1), gomock.Any()).
			Return(active, nil)

		_, err := svc.Update(ctx, 1, services.UserUpdate{Email: strPtr("ann@x.com")})
		assert.NoError(t, err)
	})

	t.Run("long password is still hashed", func(t *testing.T) {
		longPass := strings.Repeat("p", 100)

		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(active, nil)

		mockWriter.EXPECT().
			Update(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, id int64, patch models.UserPatch) (*models.UserDB, error) {
				assert.NotNil(t, patch.PasswordHash)
				// bcrypt reads the first 72 bytes; the stored digest must match them
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*patch.PasswordHash), []byte(longPass)[:72]))
				return active, nil
			})

		_, err := svc.Update(ctx, 1, services.UserUpdate{Password: &longPass})
		assert.NoError(t, err)
	})

	t.Run("empty update leaves the row untouched", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(active, nil)
		// No writer expectation: nothing must be written

		user, err := svc.Update(ctx, 1, services.UserUpdate{})
		assert.NoError(t, err)
		assert.Equal(t, active, user)
	})

	t.Run("not found", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(99)).
			Return(nil, nil)

		user, err := svc.Update(ctx, 99, services.UserUpdate{Name: strPtr("Nobody")})
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewUserService(mockReader, mockWriter)
	ctx := context.Background()

	t.Run("soft delete clears the active flag", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(&models.UserDB{ID: 1, IsActive: true}, nil)
		mockWriter.EXPECT().
			SetActiveFlag(gomock.Any(), int64(1), false).
			Return(nil)

		assert.NoError(t, svc.Delete(ctx, 1))
	})

	t.Run("already deleted user is not found", func(t *testing.T) {
		mockReader.EXPECT().
			GetActiveByID(gomock.Any(), int64(1)).
			Return(nil, nil)

		assert.ErrorIs(t, svc.Delete(ctx, 1), services.ErrUserNotFound)
	})
}

func TestUserService_PermanentlyDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewUserService(mockReader, mockWriter)
	ctx := context.Background()

	t.Run("removes soft deleted user", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(&models.UserDB{ID: 1, IsActive: false}, nil)
		mockWriter.EXPECT().
			HardDelete(gomock.Any(), int64(1)).
			Return(nil)

		assert.NoError(t, svc.PermanentlyDelete(ctx, 1))
	})

	t.Run("absent id is not found", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), int64(404)).
			Return(nil, nil)

		assert.ErrorIs(t, svc.PermanentlyDelete(ctx, 404), services.ErrUserNotFound)
	})
}

func TestUserService_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewUserService(mockReader, mockWriter)
	ctx := context.Background()

	t.Run("matches returned", func(t *testing.T) {
		expected := []models.UserDB{{ID: 1, Name: "Ann Lee", IsActive: true}}
		mockReader.EXPECT().
			SearchActive(gomock.Any(), "ann").
			Return(expected, nil)

		users, err := svc.Search(ctx, "ann")
		assert.NoError(t, err)
		assert.Equal(t, expected, users)
	})

	t.Run("empty query is an input error", func(t *testing.T) {
		_, err := svc.Search(ctx, "")
		assert.ErrorIs(t, err, services.ErrEmptySearchQuery)

		_, err = svc.Search(ctx, "   ")
		assert.ErrorIs(t, err, services.ErrEmptySearchQuery)
	})
}

func TestUserService_ToggleStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewUserService(mockReader, mockWriter)
	ctx := context.Background()

	t.Run("deactivates an active user", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), int64(1)).
			Return(&models.UserDB{ID: 1, IsActive: true}, nil)
		mockWriter.EXPECT().
			Update(gomock.Any(), int64(1), models.UserPatch{IsActive: boolPtr(false)}).
			Return(&models.UserDB{ID: 1, IsActive: false}, nil)

		user, err := svc.ToggleStatus(ctx, 1)
		assert.NoError(t, err)
		assert.False(t, user.IsActive)
	})

	t.Run("reactivates a soft deleted user", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), int64(2)).
			Return(&models.UserDB{ID: 2, IsActive: false}, nil)
		mockWriter.EXPECT().
			Update(gomock.Any(), int64(2), models.UserPatch{IsActive: boolPtr(true)}).
			Return(&models.UserDB{ID: 2, IsActive: true}, nil)

		user, err := svc.ToggleStatus(ctx, 2)
		assert.NoError(t, err)
		assert.True(t, user.IsActive)
	})

	t.Run("absent id is not found", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(gomock.Any(), int64(404)).
			Return(nil, nil)

		user, err := svc.ToggleStatus(ctx, 404)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
