package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/infra/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database handle.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a new user or refreshes the chat of an existing one. The stored
// language and completion time of an existing user are kept.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	query := `
		INSERT INTO users (id, chat_id, language_code, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			is_active = EXCLUDED.is_active
		RETURNING (xmax = 0) AS created
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.ChatID,
		user.LanguageCode,
		user.IsActive,
		user.CreatedAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	return created, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, chat_id, language_code, is_active, onboarded_at, created_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.ChatID,
		&user.LanguageCode,
		&user.IsActive,
		&user.OnboardedAt,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// UpdateLanguage stores the user's onboarding language.
func (r *UserRepository) UpdateLanguage(ctx context.Context, userID int64, languageCode string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET language_code = $2 WHERE id = $1`,
		userID, languageCode,
	)
	if err != nil {
		return fmt.Errorf("update language: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// MarkOnboarded records when the user's responses were accepted.
func (r *UserRepository) MarkOnboarded(ctx context.Context, userID int64, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET onboarded_at = $2 WHERE id = $1`,
		userID, at,
	)
	if err != nil {
		return fmt.Errorf("mark onboarded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
