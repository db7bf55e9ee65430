package entities

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidDistance    = errors.New("invalid max distance")
	ErrInvalidAgeRange    = errors.New("invalid age range")
)

// ProfileFragment is the partial profile collected alongside the answers.
// Nil fields are left untouched by the backend.
type ProfileFragment struct {
	DisplayName       *string
	Bio               *string
	City              *string
	Lat               *float64
	Lng               *float64
	MaxDistanceKM     *int
	AgeRangeMin       *int
	AgeRangeMax       *int
	PreferredLanguage *string // overwritten with the active language on submit
}

// SetDisplayName sets the display name; blank input clears it.
func (p *ProfileFragment) SetDisplayName(name string) {
	p.DisplayName = optionalString(name)
}

// SetBio sets the bio; blank input clears it.
func (p *ProfileFragment) SetBio(bio string) {
	p.Bio = optionalString(bio)
}

// SetCity sets the city; blank input clears it.
func (p *ProfileFragment) SetCity(city string) {
	p.City = optionalString(city)
}

// SetLocation sets the coordinates.
func (p *ProfileFragment) SetLocation(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	p.Lat = &lat
	p.Lng = &lng
	return nil
}

// SetMaxDistance sets the search radius in kilometers.
func (p *ProfileFragment) SetMaxDistance(km int) error {
	if km <= 0 {
		return ErrInvalidDistance
	}
	p.MaxDistanceKM = &km
	return nil
}

// SetAgeRange sets the preferred age range of matches.
func (p *ProfileFragment) SetAgeRange(minAge, maxAge int) error {
	if minAge < 18 || maxAge < minAge || maxAge > 120 {
		return ErrInvalidAgeRange
	}
	p.AgeRangeMin = &minAge
	p.AgeRangeMax = &maxAge
	return nil
}

// WithLanguage returns a copy of the profile with PreferredLanguage set to lang.
func (p ProfileFragment) WithLanguage(lang Language) ProfileFragment {
	l := lang.String()
	p.PreferredLanguage = &l
	return p
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
