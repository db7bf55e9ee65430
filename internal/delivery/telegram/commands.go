package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/i18n"
)

// startHandler greets the user. A deep-link payload is the backend token,
// which is linked before the questionnaire starts.
func (h *Handler) startHandler(req request, payload string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if payload == "" {
			h.reply(chatID, req.lang, i18n.BotWelcome)
			return nil
		}

		if err := h.users.LinkToken(ctx, req.from.ID, chatID, req.from.LanguageCode, payload); err != nil {
			return fmt.Errorf("link token: %w", err)
		}
		h.logger.Info("backend token linked", zap.Int64("user_id", req.from.ID))
		h.reply(chatID, req.lang, i18n.BotLinked)

		return h.startOnboarding(ctx, req)
	}
}

func (h *Handler) onboardingHandler(req request) HandlerFunc {
	return func(ctx context.Context, _ int64) error {
		return h.startOnboarding(ctx, req)
	}
}

func (h *Handler) cancelHandler(req request) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		s, ok := h.session(req)
		if !ok {
			return nil
		}

		h.detach(s)
		h.drop(chatID)
		h.reply(chatID, req.lang, i18n.OnboardingCancelled)

		h.logger.Info("onboarding session cancelled",
			zap.Int64("chat_id", chatID),
			zap.Uint64("session", s.ID),
		)
		return nil
	}
}

// languageHandler toggles between the two languages. With a session running
// the questions are fetched again in the new language.
func (h *Handler) languageHandler(req request) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, ok := h.sessions.Get(chatID)
		if !ok {
			lang := req.lang.Toggle()
			if err := h.users.SetLanguage(ctx, req.from.ID, lang); err != nil {
				return err
			}
			h.reply(chatID, lang, i18n.OnboardingLanguageSet)
			return nil
		}

		if !h.switchLanguage(ctx, s) {
			h.reply(chatID, req.lang, i18n.OnboardingBusy)
			return nil
		}

		h.detach(s)
		h.store(s)
		h.show(s)
		return nil
	}
}

// textHandler takes a plain message as the answer to the current question.
func (h *Handler) textHandler(req request) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		s, ok := h.sessions.Get(chatID)
		if !ok {
			h.reply(chatID, req.lang, i18n.BotWelcome)
			return nil
		}

		f := s.Flow
		q, ok := f.Current()
		if !ok {
			h.reply(chatID, req.lang, i18n.OnboardingBusy)
			return nil
		}

		value := req.msg.Text
		if q.Kind == entities.KindScale {
			value = strings.TrimSpace(value)
		}
		if strings.TrimSpace(value) == "" || (q.Kind != entities.KindFreeText && q.Kind != entities.KindScale) {
			h.reply(chatID, req.lang, i18n.OnboardingInvalidAnswer)
			return nil
		}

		if err := f.Record(q.ID, value); err != nil {
			switch {
			case errors.Is(err, entities.ErrTextTooLong):
				h.reply(chatID, req.lang, i18n.OnboardingTextTooLong, entities.MaxFreeTextLength)
				return nil
			case isValidationError(err):
				h.reply(chatID, req.lang, i18n.OnboardingInvalidAnswer)
				return nil
			}
			return err
		}

		if err := f.SetMetadata(q.ID, map[string]any{"source": "telegram", "message_id": req.msg.MessageID}); err != nil {
			return err
		}

		h.detach(s)
		h.store(s)
		h.show(s)
		return nil
	}
}
