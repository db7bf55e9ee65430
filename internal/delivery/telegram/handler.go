package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/i18n"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
)

type Handler struct {
	bot          Bot
	logger       *zap.Logger
	users        UserService
	credentials  CredentialService
	coordinator  Coordinator
	sessions     SessionStorage
	metrics      Metrics
	dashboardURL string

	lastSession uint64 // touched only by the Run goroutine
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	users UserService,
	credentials CredentialService,
	coordinator Coordinator,
	sessions SessionStorage,
	metrics Metrics,
	dashboardURL string,
) *Handler {
	return &Handler{
		bot:          bot,
		logger:       logger,
		users:        users,
		credentials:  credentials,
		coordinator:  coordinator,
		sessions:     sessions,
		metrics:      metrics,
		dashboardURL: dashboardURL,
	}
}

// Run processes Telegram updates and coordinator results on one goroutine
// until ctx is done. Onboarding flows are only ever touched from here.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	results := h.coordinator.Results()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		case r := <-results:
			h.handleResult(ctx, r)
		}
	}
}

// RegisterCommands publishes the command menu in both languages.
func (h *Handler) RegisterCommands() error {
	if _, err := h.bot.Request(tgbotapi.NewSetMyCommands(commandMenu(entities.LanguagePrimary)...)); err != nil {
		return err
	}

	es := tgbotapi.NewSetMyCommandsWithScopeAndLanguage(
		tgbotapi.NewBotCommandScopeDefault(),
		entities.LanguageSecondary.String(),
		commandMenu(entities.LanguageSecondary)...,
	)
	_, err := h.bot.Request(es)
	return err
}

func commandMenu(lang entities.Language) []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "onboarding", Description: i18n.T(lang, i18n.CmdOnboarding)},
		{Command: "cancel", Description: i18n.T(lang, i18n.CmdCancel)},
		{Command: "language", Description: i18n.T(lang, i18n.CmdLanguage)},
		{Command: "name", Description: i18n.T(lang, i18n.CmdName)},
		{Command: "bio", Description: i18n.T(lang, i18n.CmdBio)},
		{Command: "city", Description: i18n.T(lang, i18n.CmdCity)},
		{Command: "distance", Description: i18n.T(lang, i18n.CmdDistance)},
		{Command: "age", Description: i18n.T(lang, i18n.CmdAge)},
		{Command: "help", Description: i18n.T(lang, i18n.CmdHelp)},
	}
}

// request is the context of one incoming message.
type request struct {
	user *entities.User
	lang entities.Language
	from *tgbotapi.User
	msg  *tgbotapi.Message
}

func (r request) chatID() int64 { return r.msg.Chat.ID }

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	msg := update.Message
	from := msg.From
	chatID := msg.Chat.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.Bool("command", msg.IsCommand()),
	)

	user, err := h.users.EnsureUser(ctx, from.ID, chatID, from.LanguageCode)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
		user = entities.NewUser(from.ID, chatID, entities.ParseLanguage(from.LanguageCode))
	}

	req := request{user: user, lang: h.language(chatID, user), from: from, msg: msg}

	switch {
	case msg.IsCommand():
		h.handleCommand(ctx, req)
	case msg.Location != nil:
		_ = h.withErrorHandling(req.lang, h.locationHandler(req))(ctx, chatID)
	default:
		_ = h.withErrorHandling(req.lang, h.textHandler(req))(ctx, chatID)
	}
}

func (h *Handler) handleCommand(ctx context.Context, req request) {
	chatID := req.chatID()
	args := strings.TrimSpace(req.msg.CommandArguments())

	var fn HandlerFunc
	switch req.msg.Command() {
	case "start":
		fn = h.startHandler(req, args)
	case "onboarding":
		fn = h.onboardingHandler(req)
	case "cancel":
		fn = h.cancelHandler(req)
	case "language":
		fn = h.languageHandler(req)
	case "name":
		fn = h.profileTextHandler(req, args, i18n.ProfileUsageName, (*entities.ProfileFragment).SetDisplayName)
	case "bio":
		fn = h.profileTextHandler(req, args, i18n.ProfileUsageBio, (*entities.ProfileFragment).SetBio)
	case "city":
		fn = h.profileTextHandler(req, args, i18n.ProfileUsageCity, (*entities.ProfileFragment).SetCity)
	case "distance":
		fn = h.distanceHandler(req, args)
	case "age":
		fn = h.ageHandler(req, args)
	case "help":
		h.reply(chatID, req.lang, i18n.BotHelp)
		return
	default:
		h.reply(chatID, req.lang, i18n.BotUnknownCommand)
		return
	}

	_ = h.withErrorHandling(req.lang, fn)(ctx, chatID)
}

// language is the active session's language, or the user's stored one.
func (h *Handler) language(chatID int64, user *entities.User) entities.Language {
	if s, ok := h.sessions.Get(chatID); ok {
		return s.Flow.Language()
	}
	return entities.ParseLanguage(user.LanguageCode)
}

func (h *Handler) reply(chatID int64, lang entities.Language, key string, args ...any) {
	h.send(newMessage(chatID, md(i18n.T(lang, key, args...))))
}

func (h *Handler) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	sent, err := h.bot.Send(c)
	if err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return sent, true
		}
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return sent, false
	}
	return sent, true
}

func (h *Handler) observe(o onboarding.Outcome) {
	if h.metrics != nil {
		h.metrics.ObserveOutcome(o)
	}
}
