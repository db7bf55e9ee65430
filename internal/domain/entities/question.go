package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// QuestionKind is the input kind of an onboarding question.
type QuestionKind string

const (
	KindSingleChoice QuestionKind = "multiple_choice" // one option out of Options
	KindMultiChoice  QuestionKind = "multi_select"    // any subset of Options
	KindFreeText     QuestionKind = "text"            // free-form text
	KindScale        QuestionKind = "scale"           // integer between ScaleMin and ScaleMax
)

const (
	ScaleMin      = 1
	ScaleMax      = 5
	ScaleMidpoint = 3

	// MaxFreeTextLength is the longest free-text answer accepted, in runes.
	MaxFreeTextLength = 2000
)

var (
	ErrUnknownQuestionKind = errors.New("unknown question kind")
	ErrOptionNotAllowed    = errors.New("option is not one of the question options")
	ErrScaleOutOfRange     = errors.New("scale value out of range")
	ErrTextTooLong         = errors.New("text answer is too long")
)

// Valid reports whether k is one of the supported kinds.
func (k QuestionKind) Valid() bool {
	switch k {
	case KindSingleChoice, KindMultiChoice, KindFreeText, KindScale:
		return true
	}
	return false
}

// HasOptions reports whether questions of this kind carry an option list.
func (k QuestionKind) HasOptions() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

// Question is a single localized onboarding question.
type Question struct {
	ID       int64        // stable across a session
	Category string       // category label shown as a badge
	Text     string       // localized prompt
	Kind     QuestionKind // input kind
	Options  []string     // present only for choice kinds
	Weight   float64      // forwarded unchanged, opaque to the flow
	Required bool         // whether an answer is needed to move on
}

// HasOption reports whether option is one of the question options.
func (q *Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Validate checks that value is a well-formed answer for the question.
// The empty string is always accepted: it means the answer was cleared.
func (q *Question) Validate(value string) error {
	if value == "" {
		return nil
	}

	switch q.Kind {
	case KindSingleChoice:
		if !q.HasOption(value) {
			return fmt.Errorf("question %d: %q: %w", q.ID, value, ErrOptionNotAllowed)
		}

	case KindMultiChoice:
		for _, v := range SplitSelection(value) {
			if !q.HasOption(v) {
				return fmt.Errorf("question %d: %q: %w", q.ID, v, ErrOptionNotAllowed)
			}
		}

	case KindScale:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < ScaleMin || n > ScaleMax {
			return fmt.Errorf("question %d: %q: %w", q.ID, value, ErrScaleOutOfRange)
		}

	case KindFreeText:
		if utf8.RuneCountInString(value) > MaxFreeTextLength {
			return fmt.Errorf("question %d: %w", q.ID, ErrTextTooLong)
		}

	default:
		return fmt.Errorf("question %d: %q: %w", q.ID, q.Kind, ErrUnknownQuestionKind)
	}

	return nil
}

// Normalize returns the stored form of a valid value.
// Scale answers are kept in their decimal representation, so "04" and "+4" become "4".
func (q *Question) Normalize(value string) string {
	if q.Kind != KindScale || value == "" {
		return value
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return ScaleValue(n)
}

// ScaleValue serializes a numeric-scale answer.
func ScaleValue(n int) string {
	return strconv.Itoa(n)
}
