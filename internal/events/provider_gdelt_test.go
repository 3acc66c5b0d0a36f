package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gdeltFixture = `{
	"articles": [
		{
			"url": "https://news.example.com/iphone-launch",
			"title": "iPhone 18 launch event announced",
			"seendate": "20260303T120000Z",
			"domain": "news.example.com",
			"sourcecountry": "US"
		},
		{
			"url": "https://news.example.com/markets",
			"title": "Markets steady ahead of earnings",
			"seendate": "20260304T090000Z",
			"domain": "news.example.com",
			"sourcecountry": "US"
		},
		{
			"url": "",
			"url_mobile": "",
			"title": "No link article",
			"seendate": "20260303T120000Z",
			"domain": "news.example.com"
		},
		{
			"url": "https://news.example.com/old",
			"title": "iPhone retrospective",
			"seendate": "20260101T120000Z",
			"domain": "news.example.com"
		}
	]
}`

func gdeltWindow() (time.Time, time.Time) {
	return time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestParseGDELTResponse(t *testing.T) {
	from, to := gdeltWindow()

	events, err := parseGDELTResponse([]byte(gdeltFixture), "iPhone", from, to, 5)
	require.NoError(t, err)

	// Linkless and out-of-window articles are dropped.
	require.Len(t, events, 2)

	assert.Equal(t, "iPhone 18 launch event announced", events[0].Title)
	assert.Equal(t, "news.example.com", events[0].Source)
	assert.Equal(t, "https://news.example.com/iphone-launch", events[0].URL)

	// The keyword hit in the title outranks the non-matching article.
	assert.Greater(t, events[0].Score, events[1].Score)
}

func TestParseGDELTResponseRespectsMaxResults(t *testing.T) {
	from, to := gdeltWindow()

	events, err := parseGDELTResponse([]byte(gdeltFixture), "iPhone", from, to, 1)
	require.NoError(t, err)

	assert.Len(t, events, 1)
}

func TestParseGDELTResponseNonJSONError(t *testing.T) {
	from, to := gdeltWindow()

	_, err := parseGDELTResponse([]byte("rate limit exceeded"), "iPhone", from, to, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, errGDELTAPIError)
}

func TestCandidateScoreBounds(t *testing.T) {
	from, to := gdeltWindow()
	center := from.Add(to.Sub(from) / 2)

	atCenter := candidateScore("iPhone launch", "iphone", center, from, to)
	atEdge := candidateScore("iPhone launch", "iphone", to, from, to)
	noMatch := candidateScore("Markets steady", "iphone", center, from, to)

	assert.InDelta(t, 1.0, atCenter, 1e-9)
	assert.InDelta(t, titleMatchScore, atEdge, 1e-9)
	assert.Greater(t, atCenter, noMatch)
	assert.LessOrEqual(t, noMatch, 1.0)
}
