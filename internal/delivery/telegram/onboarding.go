package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/i18n"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
	"github.com/aliskhannn/place-onboarding-bot/internal/storage"
)

// startOnboarding opens a session for the chat, or brings the running one
// back to the bottom of the chat.
func (h *Handler) startOnboarding(ctx context.Context, req request) error {
	chatID := req.chatID()

	if req.user.Onboarded() {
		h.reply(chatID, req.lang, i18n.OnboardingAlreadyDone, h.dashboardURL)
		return nil
	}

	if s, ok := h.sessions.Get(chatID); ok {
		h.detach(s)
		h.store(s)
		h.show(s)
		return nil
	}

	h.lastSession++
	s := &storage.Session{
		ID:          h.lastSession,
		UserID:      req.from.ID,
		ChatID:      chatID,
		Flow:        onboarding.New(req.lang),
		Credentials: h.credentials.ForUser(req.from.ID),
	}

	if t, ok := s.Flow.Load(); ok {
		h.coordinator.Load(ctx, s.Key(), s.Credentials, t)
	}

	h.logger.Info("onboarding session started",
		zap.Int64("chat_id", chatID),
		zap.Uint64("session", s.ID),
		zap.String("lang", req.lang.String()),
	)

	h.store(s)
	h.show(s)

	return nil
}

// handleResult applies a finished backend call to its session.
func (h *Handler) handleResult(ctx context.Context, r onboarding.Result) {
	s, ok := h.sessions.Get(r.Key.Owner)
	if !ok || s.ID != r.Key.Flow {
		h.logger.Debug("result for a closed session",
			zap.Int64("chat_id", r.Key.Owner),
			zap.Uint64("session", r.Key.Flow),
		)
		h.observe(onboarding.OutcomeStale)
		return
	}

	outcome := onboarding.Apply(s.Flow, r)
	h.observe(outcome)

	switch outcome {
	case onboarding.OutcomeStale:
		return
	case onboarding.OutcomeCompleted:
		h.complete(ctx, s)
		return
	}

	h.show(s)
}

// complete is the single place a finished onboarding is acted upon.
func (h *Handler) complete(ctx context.Context, s *storage.Session) {
	if err := h.users.MarkOnboarded(ctx, s.UserID); err != nil {
		h.logger.Error("failed to mark user onboarded",
			zap.Int64("user_id", s.UserID),
			zap.Error(err),
		)
	}

	h.show(s)
	h.drop(s.ChatID)

	h.logger.Info("onboarding completed",
		zap.Int64("chat_id", s.ChatID),
		zap.Uint64("session", s.ID),
	)
}

// handleCallback dispatches a keyboard press and acknowledges it.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	var notice string

	cd := decodeCallback(cb.Data)
	switch {
	case cb.Message == nil || cb.Message.Chat == nil:
		h.logger.Debug("callback without message", zap.String("data", cb.Data))
	case cd.Action == actionOnboarding:
		notice = h.handleOnboardingCallback(ctx, cb, cd)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, notice)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

// handleOnboardingCallback applies a press to the chat's session and returns
// the notice to show, if any.
func (h *Handler) handleOnboardingCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) string {
	chatID := cb.Message.Chat.ID

	c, err := parseOnboardingCallback(cd)
	if err != nil {
		h.logger.Warn("invalid onboarding callback", zap.String("data", cb.Data))
		return ""
	}

	s, ok := h.sessions.Get(chatID)
	if !ok || s.ID != c.Session {
		return i18n.T(entities.ParseLanguage(cb.From.LanguageCode), i18n.OnboardingNoSession)
	}

	f := s.Flow
	lang := f.Language()
	var notice string

	switch c.Sub {
	case onboardingOption, onboardingToggle, onboardingScale, onboardingClear:
		notice = h.answer(s, c)

	case onboardingPrevious:
		f.Previous()

	case onboardingNext:
		if !f.Next() && !f.CanProceed() {
			notice = i18n.T(lang, i18n.OnboardingAnswerRequired)
		}

	case onboardingSubmit:
		t, payload, ok := f.BeginSubmit()
		switch {
		case ok:
			h.coordinator.Submit(ctx, s.Key(), s.Credentials, t, payload)
		case f.Submitting():
			notice = i18n.T(lang, i18n.OnboardingBusy)
		case !f.CanProceed():
			notice = i18n.T(lang, i18n.OnboardingAnswerRequired)
		}

	case onboardingRetry:
		if t, ok := f.Retry(); ok {
			h.coordinator.Load(ctx, s.Key(), s.Credentials, t)
		}

	case onboardingLanguage:
		if !h.switchLanguage(ctx, s) {
			notice = i18n.T(lang, i18n.OnboardingBusy)
		}

	default:
		h.logger.Warn("unknown onboarding action", zap.String("data", cb.Data))
		return ""
	}

	h.store(s)
	if s.MessageID == 0 {
		s.MessageID = cb.Message.MessageID
	}
	h.show(s)

	return notice
}

// answer records a keyboard answer to the current question. Presses on a
// keyboard of another question only refresh the card.
func (h *Handler) answer(s *storage.Session, c onboardingCallback) string {
	f := s.Flow
	lang := f.Language()

	q, ok := f.Current()
	if !ok {
		return i18n.T(lang, i18n.OnboardingBusy)
	}
	if q.ID != c.QuestionID {
		return ""
	}

	var err error
	switch c.Sub {
	case onboardingOption, onboardingToggle:
		if c.Value >= len(q.Options) {
			return ""
		}
		if c.Sub == onboardingOption {
			err = f.Record(q.ID, q.Options[c.Value])
		} else {
			err = f.ToggleOption(q.ID, q.Options[c.Value])
		}
	case onboardingScale:
		err = f.Record(q.ID, entities.ScaleValue(c.Value))
	case onboardingClear:
		err = f.Record(q.ID, "")
	}

	if err != nil {
		h.logger.Debug("answer rejected",
			zap.Int64("chat_id", s.ChatID),
			zap.Int64("question_id", q.ID),
			zap.Error(err),
		)
		return i18n.T(lang, i18n.OnboardingInvalidAnswer)
	}

	return ""
}

// switchLanguage toggles the session language, refetching the questions.
func (h *Handler) switchLanguage(ctx context.Context, s *storage.Session) bool {
	t, ok := s.Flow.SetLanguage(s.Flow.Language().Toggle())
	if !ok {
		return false
	}

	h.coordinator.Load(ctx, s.Key(), s.Credentials, t)

	if err := h.users.SetLanguage(ctx, s.UserID, t.Language); err != nil {
		h.logger.Warn("failed to store language",
			zap.Int64("user_id", s.UserID),
			zap.Error(err),
		)
	}

	return true
}

// show renders the session into its card, sending a new card when there is none.
func (h *Handler) show(s *storage.Session) {
	v := renderSession(s, h.dashboardURL)

	if s.MessageID != 0 {
		edit := newEdit(s.ChatID, s.MessageID, v.text)
		edit.ReplyMarkup = v.keyboard
		h.send(edit)
		return
	}

	msg := newMessage(s.ChatID, v.text)
	if v.keyboard != nil {
		msg.ReplyMarkup = *v.keyboard
	}
	if sent, ok := h.send(msg); ok {
		s.MessageID = sent.MessageID
	}
}

// detach strips the keyboard off the session's card so the next show sends a new one.
func (h *Handler) detach(s *storage.Session) {
	if s.MessageID == 0 {
		return
	}
	h.send(tgbotapi.NewEditMessageReplyMarkup(s.ChatID, s.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))
	s.MessageID = 0
}

// store saves the session and restarts its idle timer.
func (h *Handler) store(s *storage.Session) {
	h.sessions.Store(s.ChatID, s)
	if h.metrics != nil {
		h.metrics.SetSessions(h.sessions.Len())
	}
}

func (h *Handler) drop(chatID int64) {
	h.sessions.Delete(chatID)
	if h.metrics != nil {
		h.metrics.SetSessions(h.sessions.Len())
	}
}

// session returns the chat's session, telling the user when there is none.
func (h *Handler) session(req request) (*storage.Session, bool) {
	s, ok := h.sessions.Get(req.chatID())
	if !ok {
		h.reply(req.chatID(), req.lang, i18n.OnboardingNoSession)
	}
	return s, ok
}

func isValidationError(err error) bool {
	return errors.Is(err, entities.ErrOptionNotAllowed) ||
		errors.Is(err, entities.ErrScaleOutOfRange) ||
		errors.Is(err, entities.ErrTextTooLong) ||
		errors.Is(err, entities.ErrUnknownQuestionKind)
}
