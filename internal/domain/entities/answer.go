package entities

import "strings"

// SelectionDelimiter joins the selected labels of a multi-choice answer.
const SelectionDelimiter = ","

// Answer is the user's current value for one question.
// Values are strings regardless of the question kind.
type Answer struct {
	QuestionID int64
	Value      string
	Metadata   map[string]any // optional, opaque to the flow
}

// SplitSelection recovers the selected option labels of a multi-choice answer.
func SplitSelection(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, SelectionDelimiter)
}

// JoinSelection serializes selected option labels of a multi-choice answer.
func JoinSelection(selected []string) string {
	return strings.Join(selected, SelectionDelimiter)
}

// IsSelected reports whether option is part of a multi-choice answer.
func IsSelected(value, option string) bool {
	for _, v := range SplitSelection(value) {
		if v == option {
			return true
		}
	}
	return false
}

// ToggleOption adds option to a multi-choice answer or removes it when already selected,
// returning the re-serialized set.
//
// The result keeps toggle order, not option-list order: toggling "b" then "a" yields "b,a".
func ToggleOption(value, option string) string {
	selected := SplitSelection(value)

	next := make([]string, 0, len(selected)+1)
	found := false
	for _, v := range selected {
		if v == option {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, option)
	}

	return JoinSelection(next)
}
