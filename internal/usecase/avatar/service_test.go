package avatar_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/olegk/users-api/internal/domain"
	"github.com/olegk/users-api/internal/domain/entity"
	"github.com/olegk/users-api/internal/mocks"
	"github.com/olegk/users-api/internal/pkg/apperror"
	"github.com/olegk/users-api/internal/usecase/avatar"
)

func TestService_Set(t *testing.T) {
	t.Run("uploads processed image and records key and url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		objStorage := mocks.NewMockObjectStorage(ctrl)
		processor := mocks.NewMockImageProcessor(ctrl)
		svc := avatar.NewService(repo, objStorage, processor)

		ctx := context.Background()
		existing := &entity.User{ID: uuid.New(), Name: "Ada", Email: "ada@x.com"}

		processed := bytes.NewReader([]byte("processed"))
		repo.EXPECT().GetByEmail(ctx, "ada@x.com").Return(existing, nil)
		processor.EXPECT().Process(gomock.Any()).Return(processed, int64(9), "image/jpeg", nil)

		var uploadedKey string
		objStorage.EXPECT().Upload(ctx, gomock.Any(), processed, "image/jpeg", int64(9)).DoAndReturn(
			func(_ context.Context, key string, _ any, _ string, _ int64) error {
				uploadedKey = key
				assert.True(t, strings.HasPrefix(key, "avatars/"+existing.ID.String()+"/"))
				assert.True(t, strings.HasSuffix(key, ".jpg"))
				return nil
			})
		objStorage.EXPECT().GetURL(gomock.Any()).DoAndReturn(func(key string) string {
			return "https://cdn.example.com/" + key
		})
		repo.EXPECT().SetAvatarByEmail(ctx, "ada@x.com", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, email, key, url string) (*entity.User, error) {
				assert.Equal(t, uploadedKey, key)
				updated := *existing
				updated.AvatarKey = key
				updated.AvatarURL = url
				return &updated, nil
			})

		u, err := svc.Set(ctx, avatar.SetInput{
			Email:       "Ada@X.com",
			File:        bytes.NewReader([]byte("raw")),
			ContentType: "image/jpeg",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, u.AvatarURL)
	})

	t.Run("removes the previous object after replacing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		objStorage := mocks.NewMockObjectStorage(ctrl)
		processor := mocks.NewMockImageProcessor(ctrl)
		svc := avatar.NewService(repo, objStorage, processor)

		ctx := context.Background()
		existing := &entity.User{
			ID:        uuid.New(),
			Name:      "Ada",
			Email:     "ada@x.com",
			AvatarKey: "avatars/old-key.jpg",
		}

		repo.EXPECT().GetByEmail(ctx, "ada@x.com").Return(existing, nil)
		processor.EXPECT().Process(gomock.Any()).Return(bytes.NewReader(nil), int64(0), "image/png", nil)
		objStorage.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), "image/png", gomock.Any()).Return(nil)
		objStorage.EXPECT().GetURL(gomock.Any()).Return("url")
		repo.EXPECT().SetAvatarByEmail(ctx, "ada@x.com", gomock.Any(), gomock.Any()).Return(existing, nil)
		objStorage.EXPECT().Delete(ctx, "avatars/old-key.jpg").Return(nil)

		_, err := svc.Set(ctx, avatar.SetInput{
			Email:       "ada@x.com",
			File:        bytes.NewReader(nil),
			ContentType: "image/png",
		})
		require.NoError(t, err)
	})

	t.Run("cleans up the uploaded object when the row update fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		objStorage := mocks.NewMockObjectStorage(ctrl)
		processor := mocks.NewMockImageProcessor(ctrl)
		svc := avatar.NewService(repo, objStorage, processor)

		ctx := context.Background()
		existing := &entity.User{ID: uuid.New(), Name: "Ada", Email: "ada@x.com"}

		repo.EXPECT().GetByEmail(ctx, "ada@x.com").Return(existing, nil)
		processor.EXPECT().Process(gomock.Any()).Return(bytes.NewReader(nil), int64(0), "image/jpeg", nil)

		var uploadedKey string
		objStorage.EXPECT().Upload(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, key string, _ any, _ string, _ int64) error {
				uploadedKey = key
				return nil
			})
		objStorage.EXPECT().GetURL(gomock.Any()).Return("url")
		repo.EXPECT().SetAvatarByEmail(ctx, "ada@x.com", gomock.Any(), gomock.Any()).Return(nil, assert.AnError)
		objStorage.EXPECT().Delete(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, key string) error {
				assert.Equal(t, uploadedKey, key)
				return nil
			})

		_, err := svc.Set(ctx, avatar.SetInput{
			Email:       "ada@x.com",
			File:        bytes.NewReader(nil),
			ContentType: "image/jpeg",
		})
		assert.Error(t, err)
	})

	t.Run("classifies undecodable image data as a bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		objStorage := mocks.NewMockObjectStorage(ctrl)
		processor := mocks.NewMockImageProcessor(ctrl)
		svc := avatar.NewService(repo, objStorage, processor)

		ctx := context.Background()
		existing := &entity.User{ID: uuid.New(), Name: "Ada", Email: "ada@x.com"}

		repo.EXPECT().GetByEmail(ctx, "ada@x.com").Return(existing, nil)
		processor.EXPECT().Process(gomock.Any()).Return(nil, int64(0), "", assert.AnError)

		_, err := svc.Set(ctx, avatar.SetInput{
			Email:       "ada@x.com",
			File:        bytes.NewReader([]byte("not an image")),
			ContentType: "image/jpeg",
		})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
	})

	t.Run("returns not found for a missing user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		objStorage := mocks.NewMockObjectStorage(ctrl)
		processor := mocks.NewMockImageProcessor(ctrl)
		svc := avatar.NewService(repo, objStorage, processor)

		ctx := context.Background()
		repo.EXPECT().GetByEmail(ctx, "ghost@x.com").Return(nil, domain.ErrUserNotFound)

		_, err := svc.Set(ctx, avatar.SetInput{
			Email:       "ghost@x.com",
			File:        bytes.NewReader(nil),
			ContentType: "image/jpeg",
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("clears the columns and removes the object", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		objStorage := mocks.NewMockObjectStorage(ctrl)
		processor := mocks.NewMockImageProcessor(ctrl)
		svc := avatar.NewService(repo, objStorage, processor)

		ctx := context.Background()
		existing := &entity.User{
			ID:        uuid.New(),
			Email:     "ada@x.com",
			AvatarKey: "avatars/key.jpg",
		}

		repo.EXPECT().GetByEmail(ctx, "ada@x.com").Return(existing, nil)
		repo.EXPECT().SetAvatarByEmail(ctx, "ada@x.com", "", "").Return(existing, nil)
		objStorage.EXPECT().Delete(ctx, "avatars/key.jpg").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "ada@x.com"))
	})

	t.Run("reports a user without an avatar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockUserRepository(ctrl)
		objStorage := mocks.NewMockObjectStorage(ctrl)
		processor := mocks.NewMockImageProcessor(ctrl)
		svc := avatar.NewService(repo, objStorage, processor)

		ctx := context.Background()
		repo.EXPECT().GetByEmail(ctx, "ada@x.com").Return(&entity.User{Email: "ada@x.com"}, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "ada@x.com"), domain.ErrNoAvatar)
	})
}
