package service

import (
	"context"
	"errors"

	"github.com/aliskhannn/place-onboarding-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
)

var ErrNoLinkedToken = errors.New("no backend token linked to this user")

// CredentialService hands out per-user backend credentials.
type CredentialService struct {
	repository  CredentialRepository
	staticToken string // used for users without a linked token, development only
}

func NewCredentialService(credentials CredentialRepository, staticToken string) *CredentialService {
	return &CredentialService{repository: credentials, staticToken: staticToken}
}

// ForUser returns the credentials of userID. The token is looked up on every
// call so a re-linked token takes effect without restarting the session.
func (s *CredentialService) ForUser(userID int64) onboarding.Credentials {
	return userCredentials{service: s, userID: userID}
}

func (s *CredentialService) token(ctx context.Context, userID int64) (string, error) {
	token, err := s.repository.GetToken(ctx, userID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, repository.ErrCredentialNotFound) {
		return "", err
	}
	if s.staticToken != "" {
		return s.staticToken, nil
	}
	return "", ErrNoLinkedToken
}

type userCredentials struct {
	service *CredentialService
	userID  int64
}

func (c userCredentials) Token(ctx context.Context) (string, error) {
	return c.service.token(ctx, c.userID)
}
