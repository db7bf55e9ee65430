package entities

import "time"

// User represents bot user.
type User struct {
	ID           int64 // Telegram user ID
	ChatID       int64
	LanguageCode string // last active onboarding language
	IsActive     bool
	OnboardedAt  *time.Time // set once a submission was accepted
	CreatedAt    time.Time
}

func NewUser(id, chatID int64, lang Language) *User {
	return &User{
		ID:           id,
		ChatID:       chatID,
		LanguageCode: lang.String(),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

// Onboarded reports whether the user already completed onboarding.
func (u *User) Onboarded() bool {
	return u.OnboardedAt != nil
}
