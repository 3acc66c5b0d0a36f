package peaks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
	"github.com/trendarc/trendarc/internal/platform/observability"
)

// Confidence tiers for peak-event attribution.
const (
	ConfidenceVerified  = 90
	ConfidenceHighScore = 75
	ConfidenceLowScore  = 50
	ConfidenceNoEvent   = 30
	highCandidateScore  = 0.7
)

const (
	// DefaultWindowDays is the half-width of the event lookup window around
	// a peak date.
	DefaultWindowDays = 7

	// DefaultFanout bounds concurrent event lookups to respect upstream
	// rate limits.
	DefaultFanout = 3

	DefaultLookupTimeout = 10 * time.Second
	DefaultMaxResults    = 5
)

// Options configure the correlator.
type Options struct {
	MinProminence float64
	WindowDays    int
	LookupTimeout time.Duration
	Fanout        int
	MaxResults    int
}

func (o *Options) applyDefaults() {
	if o.MinProminence <= 0 {
		o.MinProminence = DefaultMinProminence
	}

	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}

	if o.LookupTimeout <= 0 {
		o.LookupTimeout = DefaultLookupTimeout
	}

	if o.Fanout <= 0 {
		o.Fanout = DefaultFanout
	}

	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
}

// Correlator detects peaks across terms and attaches candidate events.
type Correlator struct {
	searcher ports.EventSearcher
	opts     Options
	logger   *zerolog.Logger
}

// NewCorrelator creates a correlator. A nil searcher disables event lookups;
// every peak then gets the no-event confidence.
func NewCorrelator(searcher ports.EventSearcher, opts Options, logger *zerolog.Logger) *Correlator {
	opts.applyDefaults()

	return &Correlator{searcher: searcher, opts: opts, logger: logger}
}

// DetectPeaksWithEvents finds every term's peaks, looks up candidate events
// around each peak date with bounded concurrency, and returns the combined
// list sorted by peak value descending. Lookup failures and timeouts degrade
// to the no-event outcome; this never returns an error for a detected peak.
func (c *Correlator) DetectPeaksWithEvents(ctx context.Context, series domain.TrendSeries, terms []string) []domain.PeakEvent {
	var detected []domain.PeakEvent

	for _, term := range terms {
		detected = append(detected, DetectPeaks(series, term, c.opts.MinProminence)...)
	}

	observability.PeaksDetected.Add(float64(len(detected)))

	sem := make(chan struct{}, c.opts.Fanout)

	var wg sync.WaitGroup

	for i := range detected {
		wg.Add(1)

		go func(peak *domain.PeakEvent) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			c.correlate(ctx, peak)
		}(&detected[i])
	}

	wg.Wait()

	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Value > detected[j].Value
	})

	return detected
}

// correlate attaches the top candidate event for one peak, in place.
func (c *Correlator) correlate(ctx context.Context, peak *domain.PeakEvent) {
	peak.Confidence = ConfidenceNoEvent

	if c.searcher == nil {
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.opts.LookupTimeout)
	defer cancel()

	from := peak.Date.AddDate(0, 0, -c.opts.WindowDays)
	to := peak.Date.AddDate(0, 0, c.opts.WindowDays)

	start := time.Now()

	events, err := c.searcher.SearchEvents(lookupCtx, peak.Term, from, to, c.opts.MaxResults)

	observability.EventLookupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		observability.EventLookups.WithLabelValues("error").Inc()

		if c.logger != nil {
			c.logger.Warn().Err(err).
				Str("term", peak.Term).
				Time("peak_date", peak.Date).
				Msg("event lookup failed, degrading to no event")
		}

		return
	}

	if len(events) == 0 {
		observability.EventLookups.WithLabelValues("empty").Inc()

		return
	}

	observability.EventLookups.WithLabelValues("ok").Inc()

	top := topCandidate(events)
	peak.Event = &top
	peak.Confidence = eventConfidence(top)
	peak.Citations = []domain.Citation{{Title: top.Title, URL: top.URL, Source: top.Source}}
}

// topCandidate picks the highest-scored candidate, keeping provider order on
// ties.
func topCandidate(events []domain.CandidateEvent) domain.CandidateEvent {
	top := events[0]

	for _, event := range events[1:] {
		if event.Score > top.Score {
			top = event
		}
	}

	return top
}

// eventConfidence maps a candidate event to the attribution confidence tier.
// Candidate scores are normalized to [0,1] by providers.
func eventConfidence(event domain.CandidateEvent) int {
	switch {
	case event.Verified:
		return ConfidenceVerified
	case event.Score >= highCandidateScore:
		return ConfidenceHighScore
	}

	return ConfidenceLowScore
}
