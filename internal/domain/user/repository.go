package user

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

const (
	CodeEmailTaken         = "email_already_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidRole        = "invalid_role"
)

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}
