// Package feed fetches recent submissions from the Codeforces status API.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/duelboard/internal/domain/model"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://codeforces.com/api"
	defaultCount   = 10
	defaultTimeout = 10 * time.Second

	statusOK = "OK"
)

// Client pulls a participant's most recent submissions via the user.status
// method. Safe for sequential use from the polling loop.
type Client struct {
	baseURL string
	count   int
	timeout time.Duration
	http    *http.Client
}

// New creates a Codeforces feed client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		count:   defaultCount,
		timeout: defaultTimeout,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope mirrors the Codeforces API response wrapper.
type envelope struct {
	Status  string       `json:"status"`
	Comment string       `json:"comment"`
	Result  []submission `json:"result"`
}

type submission struct {
	ID                  int64  `json:"id"`
	CreationTimeSeconds int64  `json:"creationTimeSeconds"`
	Verdict             string `json:"verdict"`
	Problem             struct {
		ContestID int    `json:"contestId"`
		Index     string `json:"index"`
	} `json:"problem"`
}

// Recent returns the handle's latest submissions as reported by the judge,
// most recent first. The window overlaps across cycles by design; callers
// must tolerate duplicate delivery. Each call is bounded by the configured
// timeout.
func (c *Client) Recent(ctx context.Context, handle string) ([]model.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("handle", handle)
	q.Set("from", "1")
	q.Set("count", strconv.Itoa(c.count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user.status?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build user.status request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %d", ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode user.status response: %w", err)
	}
	if env.Status != statusOK {
		return nil, fmt.Errorf("%w: %s", ErrRejected, env.Comment)
	}

	subs := make([]model.Submission, 0, len(env.Result))
	for _, s := range env.Result {
		subs = append(subs, model.Submission{
			ID:          s.ID,
			Handle:      handle,
			ContestID:   s.Problem.ContestID,
			Index:       s.Problem.Index,
			Verdict:     s.Verdict,
			SubmittedAt: s.CreationTimeSeconds,
		})
	}
	return subs, nil
}
