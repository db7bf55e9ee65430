package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/infra/postgres/repository"
)

var ErrEmptyToken = errors.New("empty token")

// txRepositories are the repositories bound to one transaction.
type txRepositories struct {
	users       UserRepository
	credentials CredentialRepository
}

type UserService struct {
	repository UserRepository
	tr         Transactor
	inTx       func(tx pgx.Tx) txRepositories
	now        func() time.Time
}

func NewUserService(users UserRepository, tr Transactor) *UserService {
	return &UserService{
		repository: users,
		tr:         tr,
		inTx: func(tx pgx.Tx) txRepositories {
			return txRepositories{
				users:       repository.NewUserRepository(tx),
				credentials: repository.NewCredentialRepository(tx),
			}
		},
		now: time.Now,
	}
}

// EnsureUser returns the stored user, creating it on first contact. The
// Telegram language code seeds the language of a new user.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, languageCode string) (*entities.User, error) {
	user, err := s.repository.GetByID(ctx, userID)
	switch {
	case err == nil:
		if user.ChatID == chatID {
			return user, nil
		}
		user.ChatID = chatID
		if _, err := s.repository.Save(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, err
	}

	user = entities.NewUser(userID, chatID, entities.ParseLanguage(languageCode))
	if _, err := s.repository.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetLanguage stores the user's onboarding language.
func (s *UserService) SetLanguage(ctx context.Context, userID int64, lang entities.Language) error {
	return s.repository.UpdateLanguage(ctx, userID, lang.String())
}

// MarkOnboarded records the completion of the user's onboarding.
func (s *UserService) MarkOnboarded(ctx context.Context, userID int64) error {
	return s.repository.MarkOnboarded(ctx, userID, s.now().UTC())
}

// LinkToken stores the backend token handed over through the bot deep link.
// The user row and the credential are written in one transaction.
func (s *UserService) LinkToken(ctx context.Context, userID, chatID int64, languageCode, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := s.inTx(tx)

		user := entities.NewUser(userID, chatID, entities.ParseLanguage(languageCode))
		if _, err := repos.users.Save(ctx, user); err != nil {
			return err
		}

		if err := repos.credentials.Upsert(ctx, userID, token, s.now().UTC()); err != nil {
			return fmt.Errorf("link token: %w", err)
		}

		return nil
	})
}
