package entities

// Submission is the payload sent to the backend at the end of onboarding.
type Submission struct {
	Responses []Answer
	Profile   ProfileFragment
}
