package avatar

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/olegk/users-api/internal/adapter/repository"
	"github.com/olegk/users-api/internal/adapter/storage"
	"github.com/olegk/users-api/internal/domain"
	"github.com/olegk/users-api/internal/domain/entity"
	"github.com/olegk/users-api/internal/pkg/apperror"
)

// Service stores one avatar per user. Setting a new avatar replaces the
// previous object; deleting removes both the object and the columns.
type Service struct {
	userRepo  repository.UserRepository
	storage   storage.ObjectStorage
	processor storage.ImageProcessor
}

func NewService(userRepo repository.UserRepository, objStorage storage.ObjectStorage, processor storage.ImageProcessor) *Service {
	return &Service{
		userRepo:  userRepo,
		storage:   objStorage,
		processor: processor,
	}
}

type SetInput struct {
	Email       string
	File        io.Reader
	ContentType string
}

func (s *Service) Set(ctx context.Context, input SetInput) (*entity.User, error) {
	current, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}

	processed, size, contentType, err := s.processor.Process(input.File)
	if err != nil {
		return nil, apperror.BadRequest("invalid image data", err)
	}

	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	key := fmt.Sprintf("avatars/%s/%s%s", current.ID, uuid.New(), ext)

	if err := s.storage.Upload(ctx, key, processed, contentType, size); err != nil {
		return nil, apperror.Internal(fmt.Errorf("uploading avatar: %w", err))
	}

	user, err := s.userRepo.SetAvatarByEmail(ctx, current.Email, key, s.storage.GetURL(key))
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	if current.HasAvatar() {
		// Old object is unreachable once the row points at the new key.
		_ = s.storage.Delete(ctx, current.AvatarKey)
	}

	return user, nil
}

func (s *Service) Delete(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if !user.HasAvatar() {
		return domain.ErrNoAvatar
	}

	if _, err := s.userRepo.SetAvatarByEmail(ctx, user.Email, "", ""); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, user.AvatarKey); err != nil {
		return fmt.Errorf("deleting avatar object: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

