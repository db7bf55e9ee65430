package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionOnboarding = "ob"
)

// Onboarding sub-actions.
const (
	onboardingOption   = "opt" // select a single-choice option
	onboardingToggle   = "tog" // toggle a multi-choice option
	onboardingScale    = "scl" // pick a scale value
	onboardingClear    = "clr" // clear the current answer
	onboardingPrevious = "prev"
	onboardingNext     = "next"
	onboardingSubmit   = "sub"
	onboardingRetry    = "retry"
	onboardingLanguage = "lang"
)

var ErrInvalidCallback = errors.New("invalid callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// onboardingCallback is a decoded press on an onboarding keyboard.
// Answer callbacks carry the question and the option index or scale value,
// so presses on an outdated keyboard can be recognised.
type onboardingCallback struct {
	Sub        string
	Session    uint64
	QuestionID int64
	Value      int
}

func (c onboardingCallback) isAnswer() bool {
	switch c.Sub {
	case onboardingOption, onboardingToggle, onboardingScale, onboardingClear:
		return true
	}
	return false
}

func (c onboardingCallback) encode() string {
	params := []string{c.Sub, strconv.FormatUint(c.Session, 10)}
	if c.isAnswer() {
		params = append(params,
			strconv.FormatInt(c.QuestionID, 10),
			strconv.Itoa(c.Value),
		)
	}
	return callbackData{Action: actionOnboarding, Params: params}.encode()
}

func parseOnboardingCallback(cd callbackData) (onboardingCallback, error) {
	if cd.Action != actionOnboarding || len(cd.Params) < 2 {
		return onboardingCallback{}, ErrInvalidCallback
	}

	session, err := strconv.ParseUint(cd.Params[1], 10, 64)
	if err != nil {
		return onboardingCallback{}, ErrInvalidCallback
	}
	c := onboardingCallback{Sub: cd.Params[0], Session: session}

	if !c.isAnswer() {
		if len(cd.Params) != 2 {
			return onboardingCallback{}, ErrInvalidCallback
		}
		return c, nil
	}

	if len(cd.Params) != 4 {
		return onboardingCallback{}, ErrInvalidCallback
	}
	if c.QuestionID, err = strconv.ParseInt(cd.Params[2], 10, 64); err != nil {
		return onboardingCallback{}, ErrInvalidCallback
	}
	if c.Value, err = strconv.Atoi(cd.Params[3]); err != nil || c.Value < 0 {
		return onboardingCallback{}, ErrInvalidCallback
	}

	return c, nil
}

func buildAnswerCallback(sub string, session uint64, questionID int64, value int) string {
	return onboardingCallback{Sub: sub, Session: session, QuestionID: questionID, Value: value}.encode()
}

func buildOnboardingCallback(sub string, session uint64) string {
	return onboardingCallback{Sub: sub, Session: session}.encode()
}
