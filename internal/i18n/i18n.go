// Package i18n holds the bot's own UI strings in both supported languages.
// Question texts come from the backend already localized.
package i18n

import (
	"golang.org/x/text/message"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
)

// Message keys.
const (
	BotWelcome        = "bot.welcome"
	BotHelp           = "bot.help"
	BotLinked         = "bot.linked"
	BotUnknownCommand = "bot.unknown_command"
	BotInternalError  = "bot.internal_error"

	CmdStart      = "cmd.start"
	CmdOnboarding = "cmd.onboarding"
	CmdCancel     = "cmd.cancel"
	CmdLanguage   = "cmd.language"
	CmdName       = "cmd.name"
	CmdBio        = "cmd.bio"
	CmdCity       = "cmd.city"
	CmdDistance   = "cmd.distance"
	CmdAge        = "cmd.age"
	CmdHelp       = "cmd.help"

	OnboardingTitle          = "onboarding.title"
	OnboardingSubtitle       = "onboarding.subtitle"
	OnboardingLoading        = "onboarding.loading"
	OnboardingError          = "onboarding.error"
	OnboardingRetry          = "onboarding.retry"
	OnboardingNoQuestions    = "onboarding.no_questions"
	OnboardingContactSupport = "onboarding.contact_support"
	OnboardingProgress       = "onboarding.progress"
	OnboardingRequired       = "onboarding.required"
	OnboardingPrevious       = "onboarding.previous"
	OnboardingNext           = "onboarding.next"
	OnboardingComplete       = "onboarding.complete"
	OnboardingClear          = "onboarding.clear"
	OnboardingSubmitting     = "onboarding.submitting"
	OnboardingSwitchLanguage = "onboarding.switch_language"
	OnboardingTypeAnswer     = "onboarding.type_answer"
	OnboardingScaleHint      = "onboarding.scale_hint"
	OnboardingMultiHint      = "onboarding.multi_hint"
	OnboardingAnswer         = "onboarding.answer"
	OnboardingNoAnswer       = "onboarding.no_answer"
	OnboardingAnswerRequired = "onboarding.answer_required"
	OnboardingInvalidAnswer  = "onboarding.invalid_answer"
	OnboardingTextTooLong    = "onboarding.text_too_long"
	OnboardingSubmitFailed   = "onboarding.submit_failed"
	OnboardingDone           = "onboarding.done"
	OnboardingAlreadyDone    = "onboarding.already_done"
	OnboardingCancelled      = "onboarding.cancelled"
	OnboardingNoSession      = "onboarding.no_session"
	OnboardingBusy           = "onboarding.busy"
	OnboardingNoCredentials  = "onboarding.no_credentials"
	OnboardingLanguageSet    = "onboarding.language_set"

	ProfileSaved           = "profile.saved"
	ProfileLocationSaved   = "profile.location_saved"
	ProfileUsageName       = "profile.usage_name"
	ProfileUsageBio        = "profile.usage_bio"
	ProfileUsageCity       = "profile.usage_city"
	ProfileUsageDistance   = "profile.usage_distance"
	ProfileUsageAge        = "profile.usage_age"
	ProfileInvalidDistance = "profile.invalid_distance"
	ProfileInvalidAge      = "profile.invalid_age"
	ProfileInvalidLocation = "profile.invalid_location"
)

// Printer returns a message printer for lang.
func Printer(lang entities.Language) *message.Printer {
	return message.NewPrinter(lang.Tag())
}

// T formats the message key in lang.
func T(lang entities.Language, key string, args ...any) string {
	return Printer(lang).Sprintf(key, args...)
}
