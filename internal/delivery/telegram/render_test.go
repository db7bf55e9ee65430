package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
	"github.com/aliskhannn/place-onboarding-bot/internal/storage"
)

func testQuestions() []entities.Question {
	return []entities.Question{
		{ID: 1, Category: "values", Text: "Pick one", Kind: entities.KindSingleChoice, Options: []string{"A", "B"}, Weight: 1, Required: true},
		{ID: 2, Category: "hobbies", Text: "Pick many", Kind: entities.KindMultiChoice, Options: []string{"X", "Y", "Z"}, Weight: 1},
		{ID: 3, Category: "social", Text: "How social?", Kind: entities.KindScale, Weight: 1},
		{ID: 4, Category: "about", Text: "Tell us", Kind: entities.KindFreeText, Weight: 1},
	}
}

func loadedSession(t *testing.T, lang entities.Language, qs []entities.Question) *storage.Session {
	t.Helper()
	f := onboarding.New(lang)
	ticket, ok := f.Load()
	require.True(t, ok)
	require.True(t, f.CompleteLoad(ticket, qs, nil))
	return &storage.Session{ID: 9, ChatID: 100, UserID: 100, Flow: f}
}

func buttonTexts(kb *tgbotapi.InlineKeyboardMarkup) [][]string {
	var rows [][]string
	for _, row := range kb.InlineKeyboard {
		var texts []string
		for _, b := range row {
			texts = append(texts, b.Text)
		}
		rows = append(rows, texts)
	}
	return rows
}

func TestRenderSingleChoice(t *testing.T) {
	s := loadedSession(t, entities.LanguagePrimary, testQuestions())
	require.NoError(t, s.Flow.Record(1, "B"))

	v := renderSession(s, "")

	assert.Contains(t, v.text, "Question 1 of 4 · 25% complete")
	assert.Contains(t, v.text, "`VALUES`")
	assert.Contains(t, v.text, "_required_")
	assert.Contains(t, v.text, "*Pick one*")
	assert.Contains(t, v.text, "Your answer: B")

	require.NotNil(t, v.keyboard)
	assert.Equal(t, [][]string{
		{"○ A"},
		{"● B"},
		{"✕ Clear answer"},
		{"Next »"},
		{"🌐 Cambiar a Español"},
	}, buttonTexts(v.keyboard))
	assert.Equal(t, "ob:opt:9:1:1", *v.keyboard.InlineKeyboard[1][0].CallbackData)
}

func TestRenderMultiChoiceAndScale(t *testing.T) {
	s := loadedSession(t, entities.LanguagePrimary, testQuestions())
	require.NoError(t, s.Flow.Record(1, "A"))
	require.True(t, s.Flow.Next())
	require.NoError(t, s.Flow.ToggleOption(2, "Z"))
	require.NoError(t, s.Flow.ToggleOption(2, "X"))

	v := renderSession(s, "")
	assert.Contains(t, v.text, "Your answer: Z, X")
	assert.Contains(t, v.text, "Select all that apply")
	assert.Equal(t, []string{"☑ X"}, buttonTexts(v.keyboard)[0])
	assert.Equal(t, []string{"☐ Y"}, buttonTexts(v.keyboard)[1])
	assert.Equal(t, []string{"« Previous", "Next »"}, buttonTexts(v.keyboard)[4])

	require.True(t, s.Flow.Next())
	v = renderSession(s, "")
	assert.Contains(t, v.text, "No answer yet")
	assert.Contains(t, v.text, "The middle is 3")
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, buttonTexts(v.keyboard)[0])

	require.NoError(t, s.Flow.Record(3, "4"))
	v = renderSession(s, "")
	assert.Equal(t, []string{"1", "2", "3", "• 4 •", "5"}, buttonTexts(v.keyboard)[0])
}

func TestRenderLastQuestionShowsComplete(t *testing.T) {
	s := loadedSession(t, entities.LanguageSecondary, testQuestions()[3:])

	v := renderSession(s, "")
	assert.Contains(t, v.text, "Pregunta 1 de 1 · 100% completado")
	assert.Equal(t, [][]string{{"✅ Completar"}, {"🌐 Switch to English"}}, buttonTexts(v.keyboard))

	ticket, _, ok := s.Flow.BeginSubmit()
	require.True(t, ok)
	v = renderSession(s, "")
	assert.Contains(t, v.text, "Enviando")
	assert.Equal(t, []string{"⏳ Enviando..."}, buttonTexts(v.keyboard)[0])

	require.True(t, s.Flow.CompleteSubmit(ticket, &onboarding.SubmitError{Message: "rate limited"}))
	v = renderSession(s, "")
	assert.Contains(t, v.text, "No se pudo enviar: rate limited")
}

func TestRenderPhases(t *testing.T) {
	f := onboarding.New(entities.LanguagePrimary)
	ticket, _ := f.Load()
	s := &storage.Session{ID: 1, Flow: f}

	v := renderSession(s, "")
	assert.Contains(t, v.text, "Loading questions")
	assert.Equal(t, [][]string{{"🌐 Cambiar a Español"}}, buttonTexts(v.keyboard))

	require.True(t, f.CompleteLoad(ticket, nil, errors.New("connection refused")))
	v = renderSession(s, "")
	assert.Contains(t, v.text, "Failed to fetch questions")
	assert.Equal(t, "🔄 Retry", buttonTexts(v.keyboard)[0][0])

	ticket, _ = f.Retry()
	require.True(t, f.CompleteLoad(ticket, nil, onboarding.ErrNoCredentials))
	v = renderSession(s, "")
	assert.Contains(t, v.text, "not linked yet")

	ticket, _ = f.Retry()
	require.True(t, f.CompleteLoad(ticket, nil, nil))
	v = renderSession(s, "")
	assert.Contains(t, v.text, "No onboarding questions are available")
}
