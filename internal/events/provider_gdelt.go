package events

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

	"github.com/araddon/dateparse"
	"golang.org/x/time/rate"

	"github.com/trendarc/trendarc/internal/core/domain"
	coreerrors "github.com/trendarc/trendarc/internal/core/errors"
)

const (
	gdeltBaseURL        = "https://api.gdeltproject.org/api/v2/doc/doc"
	gdeltDefaultTimeout = 30 * time.Second
	gdeltDefaultRPM     = 60
	gdeltSeenDateLayout = "20060102T150405Z"

	secondsPerMinute = 60

	// Candidate scoring: a keyword hit in the title dominates, proximity to
	// the window center fills the rest of the [0,1] range.
	titleMatchScore    = 0.6
	titleMissScore     = 0.3
	proximityScoreSpan = 0.4
)

var (
	errGDELTUnexpectedStatus = errors.New("gdelt unexpected status")
	errGDELTAPIError         = errors.New("gdelt api error")
)

// GDELTProvider searches the GDELT document API for news articles around a
// peak date.
type GDELTProvider struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	enabled     bool
}

// GDELTConfig configures the GDELT provider.
type GDELTConfig struct {
	Enabled        bool
	RequestsPerMin int
	Timeout        time.Duration
}

// NewGDELTProvider creates a GDELT provider.
func NewGDELTProvider(cfg GDELTConfig) *GDELTProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = gdeltDefaultTimeout
	}

	rpm := cfg.RequestsPerMin
	if rpm <= 0 {
		rpm = gdeltDefaultRPM
	}

	rps := float64(rpm) / secondsPerMinute

	return &GDELTProvider{
		baseURL: gdeltBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 1),
		enabled:     cfg.Enabled,
	}
}

func (p *GDELTProvider) Name() ProviderName {
	return ProviderGDELT
}

func (p *GDELTProvider) IsAvailable() bool {
	return p.enabled
}

// SearchEvents queries GDELT and maps articles inside [from, to] to
// candidate events.
func (p *GDELTProvider) SearchEvents(ctx context.Context, keyword string, from, to time.Time, maxResults int) ([]domain.CandidateEvent, error) {
	if !p.enabled {
		return nil, coreerrors.ErrProviderUnavailable
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("gdelt rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.buildURL(keyword, from, to, maxResults), nil)
	if err != nil {
		return nil, fmt.Errorf("create gdelt request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gdelt request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", errGDELTUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gdelt response: %w", err)
	}

	return parseGDELTResponse(body, keyword, from, to, maxResults)
}

func (p *GDELTProvider) buildURL(keyword string, from, to time.Time, maxResults int) string {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("mode", "ArtList")
	params.Set("maxrecords", fmt.Sprintf("%d", maxResults))
	params.Set("format", "json")
	params.Set("sort", "DateDesc")
	params.Set("startdatetime", from.UTC().Format("20060102150405"))
	params.Set("enddatetime", to.UTC().Format("20060102150405"))

	return p.baseURL + "?" + params.Encode()
}

type gdeltResponse struct {
	Articles []gdeltArticle `json:"articles"`
}

type gdeltArticle struct {
	URL         string `json:"url"`
	URLMobile   string `json:"url_mobile"`
	Title       string `json:"title"`
	SeenDate    string `json:"seendate"`
	Domain      string `json:"domain"`
	SourceCntry string `json:"sourcecountry"`
}

func parseGDELTResponse(body []byte, keyword string, from, to time.Time, maxResults int) ([]domain.CandidateEvent, error) {
	if err := checkGDELTError(body); err != nil {
		return nil, err
	}

	var resp gdeltResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse gdelt json: %w", err)
	}

	events := make([]domain.CandidateEvent, 0, len(resp.Articles))

	for _, article := range resp.Articles {
		event := mapGDELTArticle(article, keyword, from, to)
		if event == nil {
			continue
		}

		events = append(events, *event)
		if len(events) >= maxResults {
			break
		}
	}

	return events, nil
}

func checkGDELTError(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '[' {
		// Not JSON, likely an error message from GDELT
		errMsg := string(trimmed)
		if len(errMsg) > 200 {
			errMsg = errMsg[:200] + "..."
		}

		return fmt.Errorf("%w: %s", errGDELTAPIError, errMsg)
	}

	return nil
}

func mapGDELTArticle(article gdeltArticle, keyword string, from, to time.Time) *domain.CandidateEvent {
	articleURL := article.URL
	if articleURL == "" {
		articleURL = article.URLMobile
	}

	if articleURL == "" {
		return nil
	}

	date, ok := parseGDELTDate(article.SeenDate)
	if !ok || date.Before(from) || date.After(to) {
		return nil
	}

	return &domain.CandidateEvent{
		Title:  article.Title,
		Date:   date,
		Source: article.Domain,
		URL:    articleURL,
		Score:  candidateScore(article.Title, keyword, date, from, to),
	}
}

// parseGDELTDate tries the documented seendate layout, then falls back to
// loose parsing; GDELT has been seen returning variants.
func parseGDELTDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(gdeltSeenDateLayout, raw); err == nil {
		return t, true
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// candidateScore ranks an article on [0,1]: keyword presence in the title
// plus closeness to the window center.
func candidateScore(title, keyword string, date, from, to time.Time) float64 {
	score := titleMissScore
	if strings.Contains(strings.ToLower(title), strings.ToLower(keyword)) {
		score = titleMatchScore
	}

	window := to.Sub(from)
	if window <= 0 {
		return score
	}

	center := from.Add(window / 2)

	distance := date.Sub(center)
	if distance < 0 {
		distance = -distance
	}

	proximity := 1 - float64(distance)/float64(window/2)
	if proximity < 0 {
		proximity = 0
	}

	return score + proximityScoreSpan*proximity
}

var _ Provider = (*GDELTProvider)(nil)
