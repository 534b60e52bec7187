package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegk/users-api/internal/adapter/repository"
	"github.com/olegk/users-api/internal/domain"
	"github.com/olegk/users-api/internal/domain/entity"
)

type Service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.userRepo.GetByEmail(ctx, normalizeEmail(email))
}

// Search matches the query against name (case-insensitive substring) or
// email (exact). An empty result set is reported as ErrNoUsersFound; the
// API contract answers it with 404 rather than an empty array.
func (s *Service) Search(ctx context.Context, query string) ([]entity.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidSearch
	}

	users, err := s.userRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrNoUsersFound
	}
	return users, nil
}

type CreateInput struct {
	Name  string
	Email string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.User, error) {
	user := entity.NewUser(input.Name, input.Email)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateInput struct {
	Name  string
	Email string
}

// Update replaces name/email of the user addressed by email. It never
// creates: a missing target surfaces as ErrUserNotFound.
func (s *Service) Update(ctx context.Context, email string, input UpdateInput) (*entity.User, error) {
	user := entity.NewUser(input.Name, input.Email)

	if err := s.userRepo.UpdateByEmail(ctx, normalizeEmail(email), user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, email string) error {
	return s.userRepo.DeleteByEmail(ctx, normalizeEmail(email))
}

// Path parameters go through the same normalization as stored emails, so
// GET /users/Ada@X.com finds the record stored as ada@x.com.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
