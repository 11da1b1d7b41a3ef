package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/learner"
)

// DefaultTimeout bounds a single backend call when no option overrides it.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client talks to the learning platform REST API. Every call is a single
// attempt; callers decide how to surface failures.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API rooted at baseURL (e.g.
// "http://localhost:5001/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateAccount issues POST /users.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*learner.Account, error) {
	var acct learner.Account
	if err := c.do(ctx, "create account", http.MethodPost, "/users", req, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// CreateLearner issues POST /learners.
func (c *Client) CreateLearner(ctx context.Context, req CreateLearnerRequest) (*learner.Profile, error) {
	var p learner.Profile
	if err := c.do(ctx, "create learner", http.MethodPost, "/learners", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListSessions issues GET /learners/{id}/sessions. The backend returns
// the most recent session first.
func (c *Client) ListSessions(ctx context.Context, learnerID int64) ([]learner.SessionRecord, error) {
	var sessions []learner.SessionRecord
	path := fmt.Sprintf("/learners/%d/sessions", learnerID)
	if err := c.do(ctx, "list sessions", http.MethodGet, path, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// StartSession issues POST /learners/{id}/sessions.
func (c *Client) StartSession(ctx context.Context, learnerID int64) (*learner.SessionRecord, error) {
	var s learner.SessionRecord
	path := fmt.Sprintf("/learners/%d/sessions", learnerID)
	if err := c.do(ctx, "start session", http.MethodPost, path, struct{}{}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// EndSession issues POST /learners/{id}/sessions/{sessionID}/end.
func (c *Client) EndSession(ctx context.Context, learnerID, sessionID int64, completionRate float64) error {
	path := fmt.Sprintf("/learners/%d/sessions/%d/end", learnerID, sessionID)
	return c.do(ctx, "end session", http.MethodPost, path, endSessionRequest{CompletionRate: completionRate}, nil)
}

// GenerateContent issues POST /learners/{id}/generate-content.
func (c *Client) GenerateContent(ctx context.Context, learnerID int64, req GenerateRequest) (*GeneratedContent, error) {
	var gc GeneratedContent
	path := fmt.Sprintf("/learners/%d/generate-content", learnerID)
	if err := c.do(ctx, "generate "+string(req.ContentType), http.MethodPost, path, req, &gc); err != nil {
		return nil, err
	}
	if gc.ContentType == "" {
		gc.ContentType = req.ContentType
	}
	return &gc, nil
}

// KnowledgeGaps issues GET /learners/{id}/knowledge-gaps.
func (c *Client) KnowledgeGaps(ctx context.Context, learnerID int64) ([]string, error) {
	var resp knowledgeGapsResponse
	path := fmt.Sprintf("/learners/%d/knowledge-gaps", learnerID)
	if err := c.do(ctx, "knowledge gaps", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.KnowledgeGaps, nil
}

// Feedback issues POST /learners/{id}/feedback and returns the feedback text.
func (c *Client) Feedback(ctx context.Context, learnerID int64, req FeedbackRequest) (string, error) {
	var resp feedbackResponse
	path := fmt.Sprintf("/learners/%d/feedback", learnerID)
	if err := c.do(ctx, "feedback", http.MethodPost, path, req, &resp); err != nil {
		return "", err
	}
	return resp.Feedback, nil
}

// do performs one JSON round trip. body may be nil for GET; out may be nil
// when the response body is irrelevant.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("backend request failed", zap.Duration("latency", time.Since(start)), zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("read response body", zap.Int("status", resp.StatusCode), zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}

	log.Debug("backend request",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.Unmarshal(data, &er)
		return &RejectedError{Op: op, StatusCode: resp.StatusCode, Message: er.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RejectedError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
