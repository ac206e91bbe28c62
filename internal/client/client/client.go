package client

import (
	"context"

	"github.com/dmitrijs2005/pdstore/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (*models.Profile, error)
	SubmitSurvey(ctx context.Context, survey models.Survey) (*models.Profile, error)
	Challenges(ctx context.Context) ([]models.Challenge, error)
	Ping(ctx context.Context) error
	Close() error
}
