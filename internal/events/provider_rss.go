package events

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/core/domain"
)

const rssDefaultTimeout = 20 * time.Second

// RSSProvider searches configured news feeds for items mentioning a keyword
// inside a date window. It is the zero-key fallback behind the GDELT provider.
type RSSProvider struct {
	feedURLs []string
	parser   *gofeed.Parser
	timeout  time.Duration
	logger   *zerolog.Logger
}

// NewRSSProvider creates an RSS provider over the given feed URLs.
func NewRSSProvider(feedURLs []string, timeout time.Duration, logger *zerolog.Logger) *RSSProvider {
	if timeout <= 0 {
		timeout = rssDefaultTimeout
	}

	return &RSSProvider{
		feedURLs: feedURLs,
		parser:   gofeed.NewParser(),
		timeout:  timeout,
		logger:   logger,
	}
}

func (p *RSSProvider) Name() ProviderName {
	return ProviderRSS
}

func (p *RSSProvider) IsAvailable() bool {
	return len(p.feedURLs) > 0
}

// SearchEvents fetches every configured feed and keeps items that mention
// the keyword and fall inside [from, to]. A feed that fails to fetch is
// skipped, not fatal.
func (p *RSSProvider) SearchEvents(ctx context.Context, keyword string, from, to time.Time, maxResults int) ([]domain.CandidateEvent, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var events []domain.CandidateEvent

	for _, feedURL := range p.feedURLs {
		feed, err := p.parser.ParseURLWithContext(feedURL, fetchCtx)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn().Err(err).Str("feed", feedURL).Msg("skipping unreachable feed")
			}

			continue
		}

		events = append(events, matchFeedItems(feed, keyword, from, to)...)
		if len(events) >= maxResults {
			return events[:maxResults], nil
		}
	}

	return events, nil
}

// matchFeedItems filters one parsed feed down to candidate events.
func matchFeedItems(feed *gofeed.Feed, keyword string, from, to time.Time) []domain.CandidateEvent {
	var events []domain.CandidateEvent

	needle := strings.ToLower(keyword)

	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		if !strings.Contains(strings.ToLower(item.Title), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}

		date, ok := feedItemDate(item)
		if !ok || date.Before(from) || date.After(to) {
			continue
		}

		events = append(events, domain.CandidateEvent{
			Title:       item.Title,
			Description: item.Description,
			Date:        date,
			Source:      feed.Title,
			URL:         item.Link,
			Score:       candidateScore(item.Title, keyword, date, from, to),
		})
	}

	return events
}

// feedItemDate prefers the parsed publish date; feeds with nonstandard date
// strings go through loose parsing.
func feedItemDate(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed, true
	}

	if item.Published == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseAny(item.Published)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

var _ Provider = (*RSSProvider)(nil)
