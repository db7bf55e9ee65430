package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/i18n"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
)

// profileTextHandler sets a free-form profile field from the command arguments.
func (h *Handler) profileTextHandler(req request, args, usage string, set func(*entities.ProfileFragment, string)) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		if args == "" {
			h.reply(chatID, req.lang, usage)
			return nil
		}

		return h.updateProfile(req, func(p *entities.ProfileFragment) error {
			set(p, args)
			return nil
		}, "")
	}
}

func (h *Handler) distanceHandler(req request, args string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		km, err := strconv.Atoi(args)
		if err != nil {
			h.reply(chatID, req.lang, i18n.ProfileUsageDistance)
			return nil
		}

		return h.updateProfile(req, func(p *entities.ProfileFragment) error {
			return p.SetMaxDistance(km)
		}, i18n.ProfileInvalidDistance)
	}
}

func (h *Handler) ageHandler(req request, args string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		fields := strings.Fields(args)
		if len(fields) != 2 {
			h.reply(chatID, req.lang, i18n.ProfileUsageAge)
			return nil
		}

		minAge, err1 := strconv.Atoi(fields[0])
		maxAge, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			h.reply(chatID, req.lang, i18n.ProfileUsageAge)
			return nil
		}

		return h.updateProfile(req, func(p *entities.ProfileFragment) error {
			return p.SetAgeRange(minAge, maxAge)
		}, i18n.ProfileInvalidAge)
	}
}

// locationHandler stores a shared Telegram location as the profile coordinates.
func (h *Handler) locationHandler(req request) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		loc := req.msg.Location
		return h.updateProfile(req, func(p *entities.ProfileFragment) error {
			return p.SetLocation(loc.Latitude, loc.Longitude)
		}, i18n.ProfileInvalidLocation)
	}
}

// updateProfile applies fn to the session profile. A rejected value is
// reported with invalidKey; the card is refreshed on success.
func (h *Handler) updateProfile(req request, fn func(p *entities.ProfileFragment) error, invalidKey string) error {
	chatID := req.chatID()

	s, ok := h.session(req)
	if !ok {
		return nil
	}

	if err := s.Flow.UpdateProfile(fn); err != nil {
		switch {
		case errors.Is(err, onboarding.ErrNotActive):
			h.reply(chatID, req.lang, i18n.OnboardingNoSession)
			return nil
		case invalidKey == "":
			return err
		}
		h.reply(chatID, req.lang, invalidKey)
		return nil
	}

	saved := i18n.ProfileSaved
	if req.msg.Location != nil {
		saved = i18n.ProfileLocationSaved
	}
	h.reply(chatID, req.lang, saved)

	h.store(s)
	h.show(s)
	return nil
}
