package onboarding

import (
	"sort"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
)

// Responses holds at most one answer per question.
type Responses struct {
	answers map[int64]entities.Answer
}

// NewResponses creates an empty collector.
func NewResponses() *Responses {
	return &Responses{answers: make(map[int64]entities.Answer)}
}

// Record upserts the answer for questionID. Metadata describes one value,
// so replacing the value drops it.
func (r *Responses) Record(questionID int64, value string) {
	r.answers[questionID] = entities.Answer{QuestionID: questionID, Value: value}
}

// Lookup returns the current answer for questionID, if any.
func (r *Responses) Lookup(questionID int64) (entities.Answer, bool) {
	a, ok := r.answers[questionID]
	return a, ok
}

// SetMetadata attaches opaque metadata to an existing answer.
func (r *Responses) SetMetadata(questionID int64, metadata map[string]any) bool {
	a, ok := r.answers[questionID]
	if !ok {
		return false
	}
	a.Metadata = metadata
	r.answers[questionID] = a
	return true
}

// Len returns the number of recorded answers, empty values included.
func (r *Responses) Len() int {
	return len(r.answers)
}

// Retain drops answers for questions not accepted by keep.
func (r *Responses) Retain(keep func(questionID int64) bool) {
	for id := range r.answers {
		if !keep(id) {
			delete(r.answers, id)
		}
	}
}

// NonEmpty returns answers with a non-empty value, ordered by question id.
func (r *Responses) NonEmpty() []entities.Answer {
	out := make([]entities.Answer, 0, len(r.answers))
	for _, a := range r.answers {
		if a.Value == "" {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}
