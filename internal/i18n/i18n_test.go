package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Question 2 of 4 · 50% complete", T(entities.LanguagePrimary, OnboardingProgress, 2, 4, 50))
	assert.Equal(t, "Pregunta 2 de 4 · 50% completado", T(entities.LanguageSecondary, OnboardingProgress, 2, 4, 50))
}

func TestToggleLabelNamesTheOtherLanguage(t *testing.T) {
	assert.Equal(t, "Cambiar a Español", T(entities.LanguagePrimary, OnboardingSwitchLanguage))
	assert.Equal(t, "Switch to English", T(entities.LanguageSecondary, OnboardingSwitchLanguage))
}

func TestEveryKeyTranslated(t *testing.T) {
	keys := []string{
		BotWelcome, BotHelp, BotLinked, BotUnknownCommand, BotInternalError,
		CmdStart, CmdOnboarding, CmdCancel, CmdLanguage, CmdName, CmdBio, CmdCity, CmdDistance, CmdAge, CmdHelp,
		OnboardingTitle, OnboardingSubtitle, OnboardingLoading, OnboardingError, OnboardingRetry,
		OnboardingNoQuestions, OnboardingContactSupport, OnboardingRequired, OnboardingPrevious,
		OnboardingNext, OnboardingComplete, OnboardingClear, OnboardingSubmitting, OnboardingTypeAnswer,
		OnboardingMultiHint, OnboardingNoAnswer, OnboardingAnswerRequired, OnboardingInvalidAnswer,
		OnboardingCancelled, OnboardingNoSession, OnboardingBusy, OnboardingNoCredentials,
		OnboardingLanguageSet, ProfileSaved, ProfileLocationSaved, ProfileUsageName, ProfileUsageBio,
		ProfileUsageCity, ProfileUsageDistance, ProfileUsageAge, ProfileInvalidDistance,
		ProfileInvalidAge, ProfileInvalidLocation,
	}

	for _, key := range keys {
		for _, lang := range []entities.Language{entities.LanguagePrimary, entities.LanguageSecondary} {
			assert.NotEqual(t, key, T(lang, key), "%s missing in %s", key, lang)
		}
	}
}
