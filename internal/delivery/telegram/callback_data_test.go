package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingCallbackRoundTrip(t *testing.T) {
	data := buildAnswerCallback(onboardingToggle, 7, 42, 3)
	assert.Equal(t, "ob:tog:7:42:3", data)

	c, err := parseOnboardingCallback(decodeCallback(data))
	require.NoError(t, err)
	assert.Equal(t, onboardingCallback{Sub: onboardingToggle, Session: 7, QuestionID: 42, Value: 3}, c)

	data = buildOnboardingCallback(onboardingSubmit, 7)
	assert.Equal(t, "ob:sub:7", data)

	c, err = parseOnboardingCallback(decodeCallback(data))
	require.NoError(t, err)
	assert.Equal(t, onboardingCallback{Sub: onboardingSubmit, Session: 7}, c)
}

func TestParseOnboardingCallbackInvalid(t *testing.T) {
	for _, data := range []string{
		"ob",
		"ob:next",
		"ob:next:x",
		"ob:next:1:2",
		"ob:opt:1",
		"ob:opt:1:2",
		"ob:opt:1:x:0",
		"ob:opt:1:2:-1",
		"name:1",
	} {
		_, err := parseOnboardingCallback(decodeCallback(data))
		assert.ErrorIs(t, err, ErrInvalidCallback, data)
	}
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	data := buildAnswerCallback(onboardingToggle, ^uint64(0), 1<<62, 99)
	assert.LessOrEqual(t, len(data), 64)
}
