package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
	"github.com/aliskhannn/place-onboarding-bot/internal/storage"
)

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	lastID   int
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (b *fakeBot) StopReceivingUpdates() {}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	b.lastID++
	return tgbotapi.Message{MessageID: b.lastID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// lastText returns the text of the last message sent or edited.
func (b *fakeBot) lastText(t *testing.T) string {
	t.Helper()
	for i := len(b.sent) - 1; i >= 0; i-- {
		switch c := b.sent[i].(type) {
		case tgbotapi.MessageConfig:
			return c.Text
		case tgbotapi.EditMessageTextConfig:
			return c.Text
		}
	}
	t.Fatal("nothing sent")
	return ""
}

func (b *fakeBot) lastNotice(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, b.requests)
	cb, ok := b.requests[len(b.requests)-1].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	return cb.Text
}

type loadCall struct {
	key    onboarding.Key
	ticket onboarding.LoadTicket
}

type submitCall struct {
	key     onboarding.Key
	ticket  onboarding.SubmitTicket
	payload entities.Submission
}

type fakeCoordinator struct {
	loads   []loadCall
	submits []submitCall
	results chan onboarding.Result
}

func (c *fakeCoordinator) Load(_ context.Context, key onboarding.Key, _ onboarding.Credentials, t onboarding.LoadTicket) {
	c.loads = append(c.loads, loadCall{key: key, ticket: t})
}

func (c *fakeCoordinator) Submit(_ context.Context, key onboarding.Key, _ onboarding.Credentials, t onboarding.SubmitTicket, s entities.Submission) {
	c.submits = append(c.submits, submitCall{key: key, ticket: t, payload: s})
}

func (c *fakeCoordinator) Results() <-chan onboarding.Result {
	return c.results
}

type fakeUsers struct {
	users     map[int64]*entities.User
	tokens    map[int64]string
	onboarded map[int64]bool
}

func (u *fakeUsers) EnsureUser(_ context.Context, userID, chatID int64, languageCode string) (*entities.User, error) {
	if user, ok := u.users[userID]; ok {
		return user, nil
	}
	user := entities.NewUser(userID, chatID, entities.ParseLanguage(languageCode))
	u.users[userID] = user
	return user, nil
}

func (u *fakeUsers) SetLanguage(_ context.Context, userID int64, lang entities.Language) error {
	u.users[userID].LanguageCode = lang.String()
	return nil
}

func (u *fakeUsers) MarkOnboarded(_ context.Context, userID int64) error {
	u.onboarded[userID] = true
	now := time.Now()
	u.users[userID].OnboardedAt = &now
	return nil
}

func (u *fakeUsers) LinkToken(_ context.Context, userID, _ int64, _, token string) error {
	u.tokens[userID] = token
	return nil
}

type staticCredentials string

func (c staticCredentials) Token(context.Context) (string, error) { return string(c), nil }

type fakeCredentialService struct{}

func (fakeCredentialService) ForUser(int64) onboarding.Credentials { return staticCredentials("t") }

type testEnv struct {
	handler     *Handler
	bot         *fakeBot
	coordinator *fakeCoordinator
	users       *fakeUsers
	sessions    *storage.SessionStorage
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bot:         &fakeBot{},
		coordinator: &fakeCoordinator{results: make(chan onboarding.Result)},
		users: &fakeUsers{
			users:     map[int64]*entities.User{},
			tokens:    map[int64]string{},
			onboarded: map[int64]bool{},
		},
		sessions: storage.NewSessionStorage(16, time.Hour, nil),
	}
	env.handler = NewHandler(
		env.bot,
		zap.NewNop(),
		env.users,
		fakeCredentialService{},
		env.coordinator,
		env.sessions,
		nil,
		"https://222.place/dashboard",
	)
	return env
}

const testChatID = int64(100)

func messageUpdate(text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 500,
		From:      &tgbotapi.User{ID: testChatID, LanguageCode: "en"},
		Chat:      &tgbotapi.Chat{ID: testChatID},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		cmd := strings.Fields(text)[0]
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	}
	return tgbotapi.Update{Message: msg}
}

func callbackUpdate(messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: testChatID, LanguageCode: "en"},
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: testChatID}},
		Data:    data,
	}}
}

func (env *testEnv) deliverLoad(t *testing.T, i int, qs []entities.Question, err error) {
	t.Helper()
	require.Greater(t, len(env.coordinator.loads), i)
	call := env.coordinator.loads[i]
	env.handler.handleResult(context.Background(), onboarding.Result{
		Key:  call.key,
		Load: &onboarding.LoadResult{Ticket: call.ticket, Questions: qs, Err: err},
	})
}

func twoQuestions() []entities.Question {
	return []entities.Question{
		{ID: 1, Category: "values", Text: "Pick one", Kind: entities.KindSingleChoice, Options: []string{"A", "B"}, Weight: 1, Required: true},
		{ID: 2, Category: "about", Text: "Tell us", Kind: entities.KindFreeText, Weight: 1},
	}
}

func TestOnboardingEndToEnd(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	h := env.handler

	h.handleUpdate(ctx, messageUpdate("/onboarding"))
	require.Len(t, env.coordinator.loads, 1)
	assert.Equal(t, entities.LanguagePrimary, env.coordinator.loads[0].ticket.Language)
	assert.Contains(t, env.bot.lastText(t), "Loading questions")

	s, ok := env.sessions.Get(testChatID)
	require.True(t, ok)
	card := s.MessageID
	require.NotZero(t, card)

	env.deliverLoad(t, 0, twoQuestions(), nil)
	assert.Contains(t, env.bot.lastText(t), "Question 1 of 2")

	// Required question gates Next.
	h.handleUpdate(ctx, callbackUpdate(card, buildOnboardingCallback(onboardingNext, s.ID)))
	assert.Contains(t, env.bot.lastNotice(t), "Please answer")
	assert.Equal(t, 0, s.Flow.Position())

	h.handleUpdate(ctx, callbackUpdate(card, buildAnswerCallback(onboardingOption, s.ID, 1, 0)))
	assert.Empty(t, env.bot.lastNotice(t))
	assert.Contains(t, env.bot.lastText(t), "Your answer: A")

	h.handleUpdate(ctx, callbackUpdate(card, buildOnboardingCallback(onboardingNext, s.ID)))
	assert.Equal(t, 1, s.Flow.Position())
	assert.Contains(t, env.bot.lastText(t), "Question 2 of 2")

	h.handleUpdate(ctx, messageUpdate("I like hiking"))
	assert.Contains(t, env.bot.lastText(t), "Your answer: I like hiking")
	assert.NotEqual(t, card, s.MessageID, "a typed answer moves the card below it")

	h.handleUpdate(ctx, callbackUpdate(s.MessageID, buildOnboardingCallback(onboardingSubmit, s.ID)))
	require.Len(t, env.coordinator.submits, 1)
	payload := env.coordinator.submits[0].payload
	require.Len(t, payload.Responses, 2)
	assert.Equal(t, "A", payload.Responses[0].Value)
	assert.Equal(t, "I like hiking", payload.Responses[1].Value)
	assert.Equal(t, "telegram", payload.Responses[1].Metadata["source"])
	require.NotNil(t, payload.Profile.PreferredLanguage)
	assert.Equal(t, "en", *payload.Profile.PreferredLanguage)

	// A second press while the first submission is outstanding is a no-op.
	h.handleUpdate(ctx, callbackUpdate(s.MessageID, buildOnboardingCallback(onboardingSubmit, s.ID)))
	assert.Len(t, env.coordinator.submits, 1)

	call := env.coordinator.submits[0]
	h.handleResult(ctx, onboarding.Result{Key: call.key, Submit: &onboarding.SubmitResult{Ticket: call.ticket}})

	assert.True(t, env.users.onboarded[testChatID])
	assert.Contains(t, env.bot.lastText(t), "Thanks")
	assert.Contains(t, env.bot.lastText(t), "222\\.place/dashboard")
	_, ok = env.sessions.Get(testChatID)
	assert.False(t, ok)

	h.handleUpdate(ctx, messageUpdate("/onboarding"))
	assert.Contains(t, env.bot.lastText(t), "already completed")
	assert.Len(t, env.coordinator.loads, 1)
}

func TestSubmitFailureKeepsAnswers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	h := env.handler

	h.handleUpdate(ctx, messageUpdate("/onboarding"))
	env.deliverLoad(t, 0, twoQuestions()[:1], nil)
	s, _ := env.sessions.Get(testChatID)

	h.handleUpdate(ctx, callbackUpdate(s.MessageID, buildAnswerCallback(onboardingOption, s.ID, 1, 1)))
	h.handleUpdate(ctx, callbackUpdate(s.MessageID, buildOnboardingCallback(onboardingSubmit, s.ID)))
	require.Len(t, env.coordinator.submits, 1)

	call := env.coordinator.submits[0]
	h.handleResult(ctx, onboarding.Result{Key: call.key, Submit: &onboarding.SubmitResult{
		Ticket: call.ticket,
		Err:    &onboarding.SubmitError{Message: "rate limited"},
	}})

	assert.Equal(t, onboarding.PhaseSubmitError, s.Flow.Phase())
	assert.Contains(t, env.bot.lastText(t), "Could not submit: rate limited")
	a, ok := s.Flow.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "B", a.Value)
	assert.False(t, env.users.onboarded[testChatID])

	h.handleUpdate(ctx, callbackUpdate(s.MessageID, buildOnboardingCallback(onboardingSubmit, s.ID)))
	assert.Len(t, env.coordinator.submits, 2)
}

func TestLanguageSwitchDiscardsStaleLoad(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	h := env.handler

	h.handleUpdate(ctx, messageUpdate("/onboarding"))
	s, _ := env.sessions.Get(testChatID)

	h.handleUpdate(ctx, callbackUpdate(s.MessageID, buildOnboardingCallback(onboardingLanguage, s.ID)))
	require.Len(t, env.coordinator.loads, 2)
	assert.Equal(t, entities.LanguageSecondary, env.coordinator.loads[1].ticket.Language)
	assert.Equal(t, "es", env.users.users[testChatID].LanguageCode)

	sent := len(env.bot.sent)
	env.deliverLoad(t, 0, twoQuestions(), nil)
	assert.Len(t, env.bot.sent, sent, "stale result renders nothing")
	assert.Equal(t, onboarding.PhaseLoading, s.Flow.Phase())

	env.deliverLoad(t, 1, twoQuestions(), nil)
	assert.Contains(t, env.bot.lastText(t), "Pregunta 1 de 2")
}

func TestResultForCancelledSessionIsIgnored(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	h := env.handler

	h.handleUpdate(ctx, messageUpdate("/onboarding"))
	h.handleUpdate(ctx, messageUpdate("/cancel"))
	assert.Contains(t, env.bot.lastText(t), "cancelled")

	h.handleUpdate(ctx, messageUpdate("/onboarding"))
	require.Len(t, env.coordinator.loads, 2)
	s, _ := env.sessions.Get(testChatID)

	env.deliverLoad(t, 0, twoQuestions(), nil)
	assert.Equal(t, onboarding.PhaseLoading, s.Flow.Phase(), "result of the first session must not reach the second")

	env.deliverLoad(t, 1, twoQuestions(), nil)
	assert.Equal(t, onboarding.PhaseActive, s.Flow.Phase())
}

func TestCallbackFromOldSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.handler.handleUpdate(ctx, callbackUpdate(1, buildOnboardingCallback(onboardingNext, 42)))
	assert.Contains(t, env.bot.lastNotice(t), "no onboarding in progress")
}

func TestStartWithTokenLinksAndStarts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.handler.handleUpdate(ctx, messageUpdate("/start abc123"))

	assert.Equal(t, "abc123", env.users.tokens[testChatID])
	assert.Len(t, env.coordinator.loads, 1)
}

func TestProfileCommands(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	h := env.handler

	h.handleUpdate(ctx, messageUpdate("/city Madrid"))
	assert.Contains(t, env.bot.lastText(t), "no onboarding in progress")

	h.handleUpdate(ctx, messageUpdate("/onboarding"))
	s, _ := env.sessions.Get(testChatID)

	h.handleUpdate(ctx, messageUpdate("/city Madrid"))
	h.handleUpdate(ctx, messageUpdate("/age 25 35"))
	h.handleUpdate(ctx, messageUpdate("/distance 50"))

	p := s.Flow.Profile()
	require.NotNil(t, p.City)
	assert.Equal(t, "Madrid", *p.City)
	assert.Equal(t, 25, *p.AgeRangeMin)
	assert.Equal(t, 35, *p.AgeRangeMax)
	assert.Equal(t, 50, *p.MaxDistanceKM)

	h.handleUpdate(ctx, messageUpdate("/age 40 30"))
	assert.Contains(t, env.bot.lastText(t), "Ages must be between 18 and 120")

	h.handleUpdate(ctx, messageUpdate("/distance far"))
	assert.Contains(t, env.bot.lastText(t), "Usage: /distance")

	update := messageUpdate("")
	update.Message.Location = &tgbotapi.Location{Latitude: 40.4, Longitude: -3.7}
	h.handleUpdate(ctx, update)
	p = s.Flow.Profile()
	require.NotNil(t, p.Lat)
	assert.InDelta(t, 40.4, *p.Lat, 1e-9)
}

func TestLanguageCommandWithoutSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.handler.handleUpdate(ctx, messageUpdate("/language"))

	assert.Equal(t, "es", env.users.users[testChatID].LanguageCode)
	assert.Contains(t, env.bot.lastText(t), "Idioma")
}
