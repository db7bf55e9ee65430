package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
	"github.com/aliskhannn/place-onboarding-bot/internal/storage"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, languageCode string) (*entities.User, error)
	SetLanguage(ctx context.Context, userID int64, lang entities.Language) error
	MarkOnboarded(ctx context.Context, userID int64) error
	LinkToken(ctx context.Context, userID, chatID int64, languageCode, token string) error
}

type CredentialService interface {
	ForUser(userID int64) onboarding.Credentials
}

type Coordinator interface {
	Load(ctx context.Context, key onboarding.Key, creds onboarding.Credentials, t onboarding.LoadTicket)
	Submit(ctx context.Context, key onboarding.Key, creds onboarding.Credentials, t onboarding.SubmitTicket, s entities.Submission)
	Results() <-chan onboarding.Result
}

type SessionStorage interface {
	Store(chatID int64, session *storage.Session)
	Get(chatID int64) (*storage.Session, bool)
	Delete(chatID int64)
	Len() int
}

type Metrics interface {
	ObserveOutcome(o onboarding.Outcome)
	SetSessions(n int)
}
