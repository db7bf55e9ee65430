package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	UpdateLanguage(ctx context.Context, userID int64, languageCode string) error
	MarkOnboarded(ctx context.Context, userID int64, at time.Time) error
}

type CredentialRepository interface {
	Upsert(ctx context.Context, userID int64, token string, linkedAt time.Time) error
	GetToken(ctx context.Context, userID int64) (string, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
