package handler

import (
	"context"

	"github.com/olegk/users-api/internal/domain/entity"
	"github.com/olegk/users-api/internal/usecase/avatar"
	"github.com/olegk/users-api/internal/usecase/user"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type UserService interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Search(ctx context.Context, query string) ([]entity.User, error)
	Create(ctx context.Context, input user.CreateInput) (*entity.User, error)
	Update(ctx context.Context, email string, input user.UpdateInput) (*entity.User, error)
	Delete(ctx context.Context, email string) error
}

type AvatarService interface {
	Set(ctx context.Context, input avatar.SetInput) (*entity.User, error)
	Delete(ctx context.Context, email string) error
}
