// Package onboarding implements the onboarding questionnaire state machine.
//
// A Flow is owned by a single goroutine. Network work is described by tickets
// (LoadTicket, SubmitTicket) that the caller runs elsewhere, usually through a
// Coordinator, and feeds back with CompleteLoad and CompleteSubmit. Results whose
// ticket generation is no longer current are discarded.
package onboarding

import (
	"errors"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
)

// LoadTicket identifies one question fetch.
type LoadTicket struct {
	Generation uint64
	Language   entities.Language
}

// SubmitTicket identifies one submission attempt.
type SubmitTicket struct {
	Generation uint64
}

// Flow is the state of one onboarding attempt.
type Flow struct {
	lang      entities.Language
	questions []entities.Question
	position  int
	responses *Responses
	profile   entities.ProfileFragment

	phase      Phase
	loading    bool
	submitting bool
	err        error

	loadGen   uint64
	submitGen uint64
}

// New creates a flow in the loading phase. Call Load to obtain the first ticket.
func New(lang entities.Language) *Flow {
	if lang == "" {
		lang = entities.DefaultLanguage
	}
	return &Flow{
		lang:      lang,
		responses: NewResponses(),
		phase:     PhaseLoading,
	}
}

// Language returns the active language.
func (f *Flow) Language() entities.Language { return f.lang }

// Phase returns the current phase.
func (f *Flow) Phase() Phase { return f.phase }

// Err returns the last load or submit error, if the flow is in an error phase.
func (f *Flow) Err() error { return f.err }

// Loading reports whether a question fetch is outstanding.
func (f *Flow) Loading() bool { return f.loading }

// Submitting reports whether a submission is outstanding.
func (f *Flow) Submitting() bool { return f.submitting }

// Position returns the index of the current question.
func (f *Flow) Position() int { return f.position }

// Len returns the number of loaded questions.
func (f *Flow) Len() int { return len(f.questions) }

// IsLast reports whether the current question is the last one.
func (f *Flow) IsLast() bool {
	return len(f.questions) > 0 && f.position == len(f.questions)-1
}

// Progress returns (position+1)/length, or 0 when nothing is loaded.
func (f *Flow) Progress() float64 {
	if len(f.questions) == 0 {
		return 0
	}
	return float64(f.position+1) / float64(len(f.questions))
}

// Current returns the question at the current position.
func (f *Flow) Current() (entities.Question, bool) {
	if !f.phase.navigable() || len(f.questions) == 0 {
		return entities.Question{}, false
	}
	return f.questions[f.position], true
}

// Lookup returns the answer recorded for questionID.
func (f *Flow) Lookup(questionID int64) (entities.Answer, bool) {
	return f.responses.Lookup(questionID)
}

// Profile returns a copy of the profile fragment.
func (f *Flow) Profile() entities.ProfileFragment { return f.profile }

// Load starts a question fetch for the active language.
// It returns false while another fetch is outstanding, or once the flow is complete.
func (f *Flow) Load() (LoadTicket, bool) {
	if f.loading || f.submitting || f.phase == PhaseComplete {
		return LoadTicket{}, false
	}
	f.loadGen++
	f.loading = true
	f.phase = PhaseLoading
	f.err = nil
	return LoadTicket{Generation: f.loadGen, Language: f.lang}, true
}

// Retry re-runs the fetch after a load error, with the same language.
func (f *Flow) Retry() (LoadTicket, bool) {
	if f.phase != PhaseError {
		return LoadTicket{}, false
	}
	return f.Load()
}

// SetLanguage switches the active language and starts a fetch for it.
// A fetch still outstanding for the previous language becomes stale.
// Changes are refused while a submission is outstanding.
func (f *Flow) SetLanguage(lang entities.Language) (LoadTicket, bool) {
	if lang == f.lang || f.submitting || f.phase == PhaseComplete {
		return LoadTicket{}, false
	}
	f.lang = lang
	f.loading = false
	return f.Load()
}

// CompleteLoad applies the result of the fetch identified by t.
// It returns false if t is stale.
func (f *Flow) CompleteLoad(t LoadTicket, questions []entities.Question, err error) bool {
	if !f.loading || t.Generation != f.loadGen {
		return false
	}
	f.loading = false

	if err != nil {
		var le *LoadError
		if !errors.As(err, &le) {
			le = &LoadError{Message: userMessage(err, DefaultLoadMessage), Err: err}
		}
		f.phase = PhaseError
		f.err = le
		return true
	}

	if len(questions) == 0 {
		f.questions = nil
		f.position = 0
		f.phase = PhaseEmpty
		return true
	}

	f.questions = questions
	f.position = 0
	f.phase = PhaseActive
	f.err = nil

	ids := make(map[int64]struct{}, len(questions))
	for _, q := range questions {
		ids[q.ID] = struct{}{}
	}
	f.responses.Retain(func(id int64) bool {
		_, ok := ids[id]
		return ok
	})

	return true
}

// CanProceed reports whether forward navigation and submission are allowed
// for the current question.
func (f *Flow) CanProceed() bool {
	q, ok := f.Current()
	if !ok {
		return false
	}
	if !q.Required {
		return true
	}
	a, ok := f.responses.Lookup(q.ID)
	return ok && a.Value != ""
}

// Next moves forward one question. It is a no-op unless the gate passes.
func (f *Flow) Next() bool {
	if f.phase != PhaseActive && f.phase != PhaseSubmitError {
		return false
	}
	f.resume()
	if f.position+1 >= len(f.questions) || !f.CanProceed() {
		return false
	}
	f.position++
	return true
}

// Previous moves back one question. It is never gated and stays available
// while a submission is outstanding.
func (f *Flow) Previous() bool {
	if !f.phase.navigable() {
		return false
	}
	f.resume()
	if f.position == 0 {
		return false
	}
	f.position--
	return true
}

// Record stores value as the answer to questionID after validating it against the question kind.
func (f *Flow) Record(questionID int64, value string) error {
	q, err := f.editable(questionID)
	if err != nil {
		return err
	}
	if err := q.Validate(value); err != nil {
		return err
	}
	f.resume()
	f.responses.Record(questionID, q.Normalize(value))
	return nil
}

// ToggleOption flips option in the multi-choice answer to questionID.
func (f *Flow) ToggleOption(questionID int64, option string) error {
	q, err := f.editable(questionID)
	if err != nil {
		return err
	}
	if q.Kind != entities.KindMultiChoice {
		return ErrNotMultiChoice
	}

	var current string
	if a, ok := f.responses.Lookup(questionID); ok {
		current = a.Value
	}
	return f.Record(questionID, entities.ToggleOption(current, option))
}

// SetMetadata attaches opaque metadata to an already recorded answer.
func (f *Flow) SetMetadata(questionID int64, metadata map[string]any) error {
	if _, err := f.editable(questionID); err != nil {
		return err
	}
	if !f.responses.SetMetadata(questionID, metadata) {
		return ErrNoAnswer
	}
	return nil
}

// UpdateProfile applies fn to the profile fragment.
func (f *Flow) UpdateProfile(fn func(p *entities.ProfileFragment) error) error {
	if f.phase == PhaseComplete {
		return ErrNotActive
	}
	p := f.profile
	if err := fn(&p); err != nil {
		return err
	}
	f.profile = p
	f.resume()
	return nil
}

// BeginSubmit starts a submission from the last question.
// It returns false when the gate fails, when not on the last question,
// or while another submission is outstanding.
func (f *Flow) BeginSubmit() (SubmitTicket, entities.Submission, bool) {
	if f.submitting || (f.phase != PhaseActive && f.phase != PhaseSubmitError) {
		return SubmitTicket{}, entities.Submission{}, false
	}
	if !f.IsLast() || !f.CanProceed() {
		return SubmitTicket{}, entities.Submission{}, false
	}

	f.submitGen++
	f.submitting = true
	f.phase = PhaseSubmitting
	f.err = nil

	return SubmitTicket{Generation: f.submitGen}, f.Payload(), true
}

// Payload builds the submission from the current state. Only answers with a
// non-empty value are included; the profile language is always the active one.
func (f *Flow) Payload() entities.Submission {
	return entities.Submission{
		Responses: f.responses.NonEmpty(),
		Profile:   f.profile.WithLanguage(f.lang),
	}
}

// CompleteSubmit applies the result of the submission identified by t.
// It returns false if t is stale.
func (f *Flow) CompleteSubmit(t SubmitTicket, err error) bool {
	if !f.submitting || t.Generation != f.submitGen {
		return false
	}
	f.submitting = false

	if err != nil {
		var se *SubmitError
		if !errors.As(err, &se) {
			se = &SubmitError{Message: userMessage(err, DefaultSubmitMessage), Err: err}
		}
		f.phase = PhaseSubmitError
		f.err = se
		return true
	}

	f.phase = PhaseComplete
	f.err = nil
	return true
}

func (f *Flow) editable(questionID int64) (*entities.Question, error) {
	if !f.phase.navigable() {
		return nil, ErrNotActive
	}
	for i := range f.questions {
		if f.questions[i].ID == questionID {
			return &f.questions[i], nil
		}
	}
	return nil, ErrUnknownQuestion
}

// resume leaves the submit error phase on any further navigation or edit.
func (f *Flow) resume() {
	if f.phase == PhaseSubmitError {
		f.phase = PhaseActive
		f.err = nil
	}
}
