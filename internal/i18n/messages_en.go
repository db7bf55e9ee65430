package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, BotWelcome, "Hi! I'll help you set up your 222.place profile.\nSend /onboarding to begin.")
	message.SetString(lang, BotHelp, "/onboarding - start or resume the questionnaire\n/cancel - abandon it\n/language - switch between English and Spanish\n/name, /bio, /city - your profile\n/distance <km> - how far to look for matches\n/age <min> <max> - preferred age range\nShare a location to set your coordinates.")
	message.SetString(lang, BotLinked, "Your 222.place account is linked.")
	message.SetString(lang, BotUnknownCommand, "Unknown command. Send /help to see what I can do.")
	message.SetString(lang, BotInternalError, "Something went wrong. Please try again later.")

	message.SetString(lang, CmdStart, "Start the bot")
	message.SetString(lang, CmdOnboarding, "Start the questionnaire")
	message.SetString(lang, CmdCancel, "Abandon the questionnaire")
	message.SetString(lang, CmdLanguage, "Switch language")
	message.SetString(lang, CmdName, "Set display name")
	message.SetString(lang, CmdBio, "Set bio")
	message.SetString(lang, CmdCity, "Set city")
	message.SetString(lang, CmdDistance, "Set max match distance (km)")
	message.SetString(lang, CmdAge, "Set preferred age range")
	message.SetString(lang, CmdHelp, "Help")

	message.SetString(lang, OnboardingTitle, "Welcome to 222.place")
	message.SetString(lang, OnboardingSubtitle, "Help us get to know you so we can find your people.")
	message.SetString(lang, OnboardingLoading, "Loading questions...")
	message.SetString(lang, OnboardingError, "Error")
	message.SetString(lang, OnboardingRetry, "Retry")
	message.SetString(lang, OnboardingNoQuestions, "No onboarding questions are available right now.")
	message.SetString(lang, OnboardingContactSupport, "Please contact support.")
	message.SetString(lang, OnboardingProgress, "Question %d of %d · %d%% complete")
	message.SetString(lang, OnboardingRequired, "required")
	message.SetString(lang, OnboardingPrevious, "« Previous")
	message.SetString(lang, OnboardingNext, "Next »")
	message.SetString(lang, OnboardingComplete, "Complete")
	message.SetString(lang, OnboardingClear, "Clear answer")
	message.SetString(lang, OnboardingSubmitting, "Submitting...")
	message.SetString(lang, OnboardingSwitchLanguage, "Cambiar a Español")
	message.SetString(lang, OnboardingTypeAnswer, "Type your answer and send it as a message.")
	message.SetString(lang, OnboardingScaleHint, "Pick a value from 1 to 5. The middle is %d.")
	message.SetString(lang, OnboardingMultiHint, "Select all that apply.")
	message.SetString(lang, OnboardingAnswer, "Your answer: %s")
	message.SetString(lang, OnboardingNoAnswer, "No answer yet.")
	message.SetString(lang, OnboardingAnswerRequired, "Please answer this question to continue.")
	message.SetString(lang, OnboardingInvalidAnswer, "That answer is not valid for this question.")
	message.SetString(lang, OnboardingTextTooLong, "Your answer is too long (max %d characters).")
	message.SetString(lang, OnboardingSubmitFailed, "Could not submit: %s")
	message.SetString(lang, OnboardingDone, "Thanks! Your profile is ready.\n%s")
	message.SetString(lang, OnboardingAlreadyDone, "You have already completed onboarding.\n%s")
	message.SetString(lang, OnboardingCancelled, "Onboarding cancelled. Send /onboarding to start again.")
	message.SetString(lang, OnboardingNoSession, "There is no onboarding in progress. Send /onboarding to start.")
	message.SetString(lang, OnboardingBusy, "Please wait a moment.")
	message.SetString(lang, OnboardingNoCredentials, "Your 222.place account is not linked yet. Open this bot from the 222.place app to link it.")
	message.SetString(lang, OnboardingLanguageSet, "Language: English")

	message.SetString(lang, ProfileSaved, "Saved.")
	message.SetString(lang, ProfileLocationSaved, "Location saved.")
	message.SetString(lang, ProfileUsageName, "Usage: /name <display name>")
	message.SetString(lang, ProfileUsageBio, "Usage: /bio <a few words about you>")
	message.SetString(lang, ProfileUsageCity, "Usage: /city <city>")
	message.SetString(lang, ProfileUsageDistance, "Usage: /distance <km>")
	message.SetString(lang, ProfileUsageAge, "Usage: /age <min> <max>")
	message.SetString(lang, ProfileInvalidDistance, "Distance must be a positive number of kilometres.")
	message.SetString(lang, ProfileInvalidAge, "Ages must be between 18 and 120, minimum first.")
	message.SetString(lang, ProfileInvalidLocation, "That location could not be used.")
}
