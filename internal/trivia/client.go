// Package trivia is a client for the Open Trivia DB HTTP API.
package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/quizbot/core/logger"
	"github.com/m3rciful/quizbot/core/telegram/netutil"
	"github.com/m3rciful/quizbot/internal/quiz"
)

const (
	categoriesPath = "/api_category.php"
	questionsPath  = "/api.php"

	// maxBodyBytes caps provider responses; a full batch is a few KB.
	maxBodyBytes = 1 << 20
)

// Client fetches categories and question batches.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL. A nil httpClient gets a fail-fast
// client with the given timeout and no retries.
func New(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = netutil.NewHTTPClient(netutil.ClientOptions{
			Timeout:         timeout,
			ResponseTimeout: timeout,
		})
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type categoriesResponse struct {
	TriviaCategories []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"trivia_categories"`
}

type questionsResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Type             string   `json:"type"`
		Difficulty       string   `json:"difficulty"`
		Category         string   `json:"category"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// Categories returns the provider's category list in provider order.
func (c *Client) Categories(ctx context.Context) ([]quiz.Category, error) {
	var resp categoriesResponse
	if err := c.getJSON(ctx, "categories", categoriesPath, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.TriviaCategories) == 0 {
		return nil, c.fail(ctx, "categories", errors.New("no categories"))
	}
	out := make([]quiz.Category, 0, len(resp.TriviaCategories))
	for _, tc := range resp.TriviaCategories {
		out = append(out, quiz.Category{ID: tc.ID, Name: tc.Name})
	}
	return out, nil
}

// Questions returns up to count questions matching sel. Questions whose
// answer count does not fit sel.Format are dropped. An empty result is an
// error: the provider answers an impossible combination with no results.
func (c *Client) Questions(ctx context.Context, sel quiz.Selections, count int) ([]quiz.Question, error) {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(count))
	q.Set("category", strconv.Itoa(sel.Category.ID))
	q.Set("difficulty", sel.Difficulty.String())
	q.Set("type", sel.Format.String())

	var resp questionsResponse
	if err := c.getJSON(ctx, "questions", questionsPath, q, &resp); err != nil {
		return nil, err
	}
	if resp.ResponseCode != 0 {
		return nil, c.fail(ctx, "questions", responseCodeError(resp.ResponseCode))
	}
	if len(resp.Results) == 0 {
		return nil, c.fail(ctx, "questions", errors.New("no questions"))
	}

	want := sel.Format.OptionCount()
	out := make([]quiz.Question, 0, len(resp.Results))
	for i, r := range resp.Results {
		if n := len(r.IncorrectAnswers) + 1; n != want {
			logger.Warn(ctx, "trivia", "trivia.question.skip",
				slog.Int("index", i),
				slog.String("format", sel.Format.String()),
				slog.Int("count", n),
			)
			continue
		}
		out = append(out, quiz.Question{
			Text:             r.Question,
			CorrectAnswer:    r.CorrectAnswer,
			IncorrectAnswers: append([]string(nil), r.IncorrectAnswers...),
		})
	}
	if len(out) == 0 {
		return nil, c.fail(ctx, "questions", fmt.Errorf("no question has %d options", want))
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fail(ctx, op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, op, err)
	}
	defer resp.Body.Close()

	logger.Debug(ctx, "trivia", "trivia.fetch",
		slog.String("op", op),
		slog.Int("http_code", resp.StatusCode),
		slog.Duration("duration", logger.Took(start)),
	)
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return c.fail(ctx, op, fmt.Errorf("unexpected status %s", resp.Status))
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return c.fail(ctx, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) fail(ctx context.Context, op string, err error) error {
	ferr := quiz.NewFetchError(op, err)
	logger.Warn(ctx, "trivia", "trivia.fetch",
		slog.String("status", "fail"),
		slog.String("op", op),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		slog.String("err_code", ferr.Code()),
	)
	return ferr
}

func responseCodeError(code int) error {
	switch code {
	case 1:
		return errors.New("provider has no results for this combination")
	case 2:
		return errors.New("provider rejected the parameters")
	case 5:
		return errors.New("provider rate limit exceeded")
	default:
		return fmt.Errorf("provider response code %d", code)
	}
}
