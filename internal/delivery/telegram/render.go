package telegram

import (
	"errors"
	"math"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/i18n"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
	"github.com/aliskhannn/place-onboarding-bot/internal/storage"
)

const progressBarLength = 10

// view is a rendered onboarding message.
type view struct {
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

// renderSession renders the onboarding card for the session's current phase.
func renderSession(s *storage.Session, dashboardURL string) view {
	f := s.Flow
	lang := f.Language()

	switch f.Phase() {
	case onboarding.PhaseLoading:
		return view{
			text:     header(lang) + "\n\n" + italic(i18n.T(lang, i18n.OnboardingLoading)),
			keyboard: keyboard(languageRow(s)),
		}

	case onboarding.PhaseError:
		return view{
			text: bold(i18n.T(lang, i18n.OnboardingError)) + "\n\n" + md(loadErrorText(f)),
			keyboard: keyboard(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("🔄 "+i18n.T(lang, i18n.OnboardingRetry), buildOnboardingCallback(onboardingRetry, s.ID)),
				),
				languageRow(s),
			),
		}

	case onboarding.PhaseEmpty:
		return view{
			text:     bold(i18n.T(lang, i18n.OnboardingNoQuestions)) + "\n\n" + md(i18n.T(lang, i18n.OnboardingContactSupport)),
			keyboard: keyboard(languageRow(s)),
		}

	case onboarding.PhaseComplete:
		return view{text: md(i18n.T(lang, i18n.OnboardingDone, dashboardURL))}
	}

	return renderQuestion(s)
}

func header(lang entities.Language) string {
	return bold(i18n.T(lang, i18n.OnboardingTitle)) + "\n" + md(i18n.T(lang, i18n.OnboardingSubtitle))
}

func loadErrorText(f *onboarding.Flow) string {
	lang := f.Language()
	err := f.Err()

	if errors.Is(err, onboarding.ErrNoCredentials) {
		return i18n.T(lang, i18n.OnboardingNoCredentials)
	}

	var le *onboarding.LoadError
	if errors.As(err, &le) {
		return le.Message
	}
	return onboarding.DefaultLoadMessage
}

func renderQuestion(s *storage.Session) view {
	f := s.Flow
	lang := f.Language()

	q, ok := f.Current()
	if !ok {
		return view{text: italic(i18n.T(lang, i18n.OnboardingLoading))}
	}
	answer, _ := f.Lookup(q.ID)

	var sb strings.Builder

	position := f.Position() + 1
	percent := int(math.Round(f.Progress() * 100))
	sb.WriteString(md(i18n.T(lang, i18n.OnboardingProgress, position, f.Len(), percent)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(position, f.Len(), progressBarLength)))
	sb.WriteString("\n\n")

	sb.WriteString("`" + md(strings.ToUpper(q.Category)) + "`")
	if q.Required {
		sb.WriteString(md(" * "))
		sb.WriteString(italic(i18n.T(lang, i18n.OnboardingRequired)))
	}
	sb.WriteString("\n")
	sb.WriteString(bold(q.Text))
	sb.WriteString("\n\n")

	switch q.Kind {
	case entities.KindMultiChoice:
		sb.WriteString(italic(i18n.T(lang, i18n.OnboardingMultiHint)) + "\n")
	case entities.KindScale:
		sb.WriteString(italic(i18n.T(lang, i18n.OnboardingScaleHint, entities.ScaleMidpoint)) + "\n")
	case entities.KindFreeText:
		sb.WriteString(italic(i18n.T(lang, i18n.OnboardingTypeAnswer)) + "\n")
	}

	if answer.Value != "" {
		sb.WriteString(md(i18n.T(lang, i18n.OnboardingAnswer, formatAnswer(q, answer.Value))))
	} else {
		sb.WriteString(md(i18n.T(lang, i18n.OnboardingNoAnswer)))
	}

	switch f.Phase() {
	case onboarding.PhaseSubmitting:
		sb.WriteString("\n\n" + italic(i18n.T(lang, i18n.OnboardingSubmitting)))
	case onboarding.PhaseSubmitError:
		var se *onboarding.SubmitError
		msg := onboarding.DefaultSubmitMessage
		if errors.As(f.Err(), &se) {
			msg = se.Message
		}
		sb.WriteString("\n\n" + bold(i18n.T(lang, i18n.OnboardingSubmitFailed, msg)))
	}

	rows := answerRows(s.ID, q, answer.Value)
	if answer.Value != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✕ "+i18n.T(lang, i18n.OnboardingClear), buildAnswerCallback(onboardingClear, s.ID, q.ID, 0)),
		))
	}
	rows = append(rows, navigationRow(s), languageRow(s))

	return view{text: sb.String(), keyboard: keyboard(rows...)}
}

func formatAnswer(q entities.Question, value string) string {
	if q.Kind == entities.KindMultiChoice {
		return strings.Join(entities.SplitSelection(value), ", ")
	}
	return value
}

func answerRows(session uint64, q entities.Question, value string) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton

	switch q.Kind {
	case entities.KindSingleChoice:
		for i, option := range q.Options {
			mark := "○ "
			if value == option {
				mark = "● "
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(mark+option, buildAnswerCallback(onboardingOption, session, q.ID, i)),
			))
		}

	case entities.KindMultiChoice:
		for i, option := range q.Options {
			mark := "☐ "
			if entities.IsSelected(value, option) {
				mark = "☑ "
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(mark+option, buildAnswerCallback(onboardingToggle, session, q.ID, i)),
			))
		}

	case entities.KindScale:
		var row []tgbotapi.InlineKeyboardButton
		for n := entities.ScaleMin; n <= entities.ScaleMax; n++ {
			label := strconv.Itoa(n)
			if value == entities.ScaleValue(n) {
				label = "• " + label + " •"
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(onboardingScale, session, q.ID, n)))
		}
		rows = append(rows, row)
	}

	return rows
}

func navigationRow(s *storage.Session) []tgbotapi.InlineKeyboardButton {
	f := s.Flow
	lang := f.Language()

	var row []tgbotapi.InlineKeyboardButton
	if f.Position() > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.OnboardingPrevious), buildOnboardingCallback(onboardingPrevious, s.ID)))
	}

	switch {
	case !f.IsLast():
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.OnboardingNext), buildOnboardingCallback(onboardingNext, s.ID)))
	case f.Submitting():
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⏳ "+i18n.T(lang, i18n.OnboardingSubmitting), buildOnboardingCallback(onboardingSubmit, s.ID)))
	default:
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✅ "+i18n.T(lang, i18n.OnboardingComplete), buildOnboardingCallback(onboardingSubmit, s.ID)))
	}

	return row
}

func languageRow(s *storage.Session) []tgbotapi.InlineKeyboardButton {
	label := i18n.T(s.Flow.Language(), i18n.OnboardingSwitchLanguage)
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🌐 "+label, buildOnboardingCallback(onboardingLanguage, s.ID)),
	)
}

func keyboard(rows ...[]tgbotapi.InlineKeyboardButton) *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
