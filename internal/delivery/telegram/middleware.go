package telegram

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/i18n"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler and tells the user in lang.
func (h *Handler) withErrorHandling(lang entities.Language, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.reply(chatID, lang, i18n.BotInternalError)
			return nil
		}
		return nil
	}
}
