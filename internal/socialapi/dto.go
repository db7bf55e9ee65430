package socialapi

import "github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"

type questionDTO struct {
	ID           int64    `json:"id"`
	Category     string   `json:"category"`
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options,omitempty"`
	Weight       float64  `json:"weight"`
	IsRequired   bool     `json:"is_required"`
}

type questionsResponse struct {
	Questions  []questionDTO `json:"questions"`
	TotalCount int           `json:"total_count"`
	Language   string        `json:"language"`
}

func (d questionDTO) toEntity() entities.Question {
	q := entities.Question{
		ID:       d.ID,
		Category: d.Category,
		Text:     d.QuestionText,
		Kind:     entities.QuestionKind(d.QuestionType),
		Weight:   d.Weight,
		Required: d.IsRequired,
	}
	if q.Kind.HasOptions() {
		q.Options = append([]string(nil), d.Options...)
	}
	return q
}

type responseDTO struct {
	QuestionID    int64          `json:"question_id"`
	ResponseValue string         `json:"response_value"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type profileDTO struct {
	DisplayName       *string  `json:"display_name,omitempty"`
	Bio               *string  `json:"bio,omitempty"`
	LocationCity      *string  `json:"location_city,omitempty"`
	LocationLat       *float64 `json:"location_lat,omitempty"`
	LocationLng       *float64 `json:"location_lng,omitempty"`
	MaxDistanceKM     *int     `json:"max_distance_km,omitempty"`
	AgeRangeMin       *int     `json:"age_range_min,omitempty"`
	AgeRangeMax       *int     `json:"age_range_max,omitempty"`
	PreferredLanguage string   `json:"preferred_language"`
}

type submitRequest struct {
	Responses []responseDTO `json:"responses"`
	Profile   profileDTO    `json:"profile"`
}

func newSubmitRequest(s entities.Submission) submitRequest {
	responses := make([]responseDTO, 0, len(s.Responses))
	for _, a := range s.Responses {
		responses = append(responses, responseDTO{
			QuestionID:    a.QuestionID,
			ResponseValue: a.Value,
			Metadata:      a.Metadata,
		})
	}

	p := s.Profile
	profile := profileDTO{
		DisplayName:   p.DisplayName,
		Bio:           p.Bio,
		LocationCity:  p.City,
		LocationLat:   p.Lat,
		LocationLng:   p.Lng,
		MaxDistanceKM: p.MaxDistanceKM,
		AgeRangeMin:   p.AgeRangeMin,
		AgeRangeMax:   p.AgeRangeMax,
	}
	if p.PreferredLanguage != nil {
		profile.PreferredLanguage = *p.PreferredLanguage
	}

	return submitRequest{Responses: responses, Profile: profile}
}
