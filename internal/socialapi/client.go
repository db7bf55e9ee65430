// Package socialapi is the HTTP client of the matchmaking backend's onboarding endpoints.
package socialapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
)

const (
	questionsPath = "/v1/social/onboarding/questions"
	responsesPath = "/v1/social/onboarding/responses"

	requestIDHeader = "X-Request-ID"

	defaultMaxBodyBytes = 1 << 20
)

var ErrMalformedResponse = errors.New("malformed response body")

// Config holds client settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Client calls the onboarding endpoints with a caller-supplied bearer token.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewClient creates a new Client. A nil httpClient gets one with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   httpClient,
		maxBodyBytes: maxBody,
		logger:       logger,
	}
}

// FetchQuestions returns the ordered question sequence for lang.
func (c *Client) FetchQuestions(ctx context.Context, token string, lang entities.Language) ([]entities.Question, error) {
	q := url.Values{}
	q.Set("lang", lang.String())

	body, err := c.do(ctx, http.MethodGet, questionsPath+"?"+q.Encode(), token, nil)
	if err != nil {
		return nil, err
	}

	var resp questionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	questions := make([]entities.Question, 0, len(resp.Questions))
	for _, dto := range resp.Questions {
		question := dto.toEntity()
		if !question.Kind.Valid() {
			c.logger.Warn("skipping question of unsupported kind",
				zap.Int64("question_id", dto.ID),
				zap.String("kind", dto.QuestionType),
			)
			continue
		}
		if question.Kind == entities.KindMultiChoice {
			question.Options = c.selectableOptions(question)
		}
		questions = append(questions, question)
	}

	if resp.Language != "" && resp.Language != lang.String() {
		c.logger.Debug("backend answered in another language",
			zap.String("requested", lang.String()),
			zap.String("served", resp.Language),
		)
	}

	return questions, nil
}

// selectableOptions drops multi-choice labels containing the selection
// delimiter; they could never be stored in a serialized answer.
func (c *Client) selectableOptions(q entities.Question) []string {
	options := q.Options[:0]
	for _, o := range q.Options {
		if strings.Contains(o, entities.SelectionDelimiter) {
			c.logger.Warn("skipping option containing the selection delimiter",
				zap.Int64("question_id", q.ID),
				zap.String("option", o),
			)
			continue
		}
		options = append(options, o)
	}
	return options
}

// SubmitResponses posts the answers and the profile fragment.
func (c *Client) SubmitResponses(ctx context.Context, token string, s entities.Submission) error {
	_, err := c.do(ctx, http.MethodPost, responsesPath, token, newSubmitRequest(s))
	return err
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := readAllWithLimit(resp.Body, c.maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("social api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

func readAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: limit + 1}
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeded limit of %d bytes", limit)
	}
	return data, nil
}
