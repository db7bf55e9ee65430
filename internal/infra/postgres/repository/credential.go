package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/place-onboarding-bot/internal/infra/postgres"
)

var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository stores the backend access token linked to each user.
type CredentialRepository struct {
	db postgres.DBTX
}

func NewCredentialRepository(db postgres.DBTX) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Upsert links token to the user, replacing any previous one.
func (r *CredentialRepository) Upsert(ctx context.Context, userID int64, token string, linkedAt time.Time) error {
	query := `
		INSERT INTO social_credentials (user_id, token, linked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			token = EXCLUDED.token,
			linked_at = EXCLUDED.linked_at
	`

	if _, err := r.db.Exec(ctx, query, userID, token, linkedAt); err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}

	return nil
}

// GetToken returns the token linked to the user.
func (r *CredentialRepository) GetToken(ctx context.Context, userID int64) (string, error) {
	var token string
	err := r.db.QueryRow(ctx,
		`SELECT token FROM social_credentials WHERE user_id = $1`,
		userID,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrCredentialNotFound
		}
		return "", fmt.Errorf("get credential: %w", err)
	}

	return token, nil
}
