package client

import (
	"context"

	"github.com/gymmi-app/gymmi/internal/client/models"
)

// Client is the typed contract of the Gymmi backend auth API.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
	Ping(ctx context.Context) error
}
