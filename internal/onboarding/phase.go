package onboarding

// Phase is the state of an onboarding flow.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseEmpty
	PhaseActive
	PhaseSubmitting
	PhaseComplete
	PhaseSubmitError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhaseActive:
		return "active"
	case PhaseSubmitting:
		return "submitting"
	case PhaseComplete:
		return "complete"
	case PhaseSubmitError:
		return "submit_error"
	}
	return "unknown"
}

// navigable reports whether questions are shown in this phase.
func (p Phase) navigable() bool {
	return p == PhaseActive || p == PhaseSubmitting || p == PhaseSubmitError
}
