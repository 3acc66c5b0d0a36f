package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendarc/trendarc/internal/core/domain"
)

func scoreWith(overall, confidence int, breakdown domain.Breakdown, sources ...string) domain.TrendArcScore {
	return domain.TrendArcScore{
		Overall:    overall,
		Confidence: confidence,
		Breakdown:  breakdown,
		Sources:    sources,
	}
}

func TestGenerate_TieFavorsFirstArgument(t *testing.T) {
	scoreA := scoreWith(60, 70, domain.Breakdown{SearchInterest: 60, SocialBuzz: 60, Authority: 60, Momentum: 60})
	scoreB := scoreWith(60, 70, domain.Breakdown{SearchInterest: 60, SocialBuzz: 60, Authority: 60, Momentum: 60})

	v := Generate("iPhone", "Android", scoreA, scoreB, domain.CategoryTech)

	assert.Equal(t, "iPhone", v.Winner)
	assert.Equal(t, "Android", v.Loser)
	assert.Equal(t, 0, v.Margin)
	assert.Contains(t, v.Headline, "virtually tied")
}

func TestGenerate_HeadlineTiers(t *testing.T) {
	tests := []struct {
		name     string
		overallA int
		overallB int
		expected string
	}{
		{name: "clear lead", overallA: 85, overallB: 60, expected: "A clearly leads B"},
		{name: "edge", overallA: 72, overallB: 60, expected: "A has the edge over B"},
		{name: "slightly ahead", overallA: 66, overallB: 60, expected: "A is slightly ahead of B"},
		{name: "tied", overallA: 62, overallB: 60, expected: "A and B are virtually tied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Generate("A", "B",
				scoreWith(tt.overallA, 70, domain.Breakdown{}),
				scoreWith(tt.overallB, 70, domain.Breakdown{}),
				domain.CategoryGeneral)

			assert.Equal(t, tt.expected, v.Headline)
		})
	}
}

func TestGenerate_WinnerIsHigherScore(t *testing.T) {
	scoreA := scoreWith(40, 55, domain.Breakdown{SearchInterest: 40, SocialBuzz: 40, Authority: 40, Momentum: 40})
	scoreB := scoreWith(75, 85, domain.Breakdown{SearchInterest: 80, SocialBuzz: 70, Authority: 72, Momentum: 65})

	v := Generate("Oranges", "Apples", scoreA, scoreB, domain.CategoryGeneral)

	assert.Equal(t, "Apples", v.Winner)
	assert.Equal(t, "Oranges", v.Loser)
	assert.Equal(t, 75, v.WinnerScore)
	assert.Equal(t, 40, v.LoserScore)
	assert.Equal(t, 35, v.Margin)
	assert.Equal(t, 70, v.Confidence)
}

func TestGenerate_EvidenceListsWinningDimensionsAndSources(t *testing.T) {
	scoreA := scoreWith(70, 70, domain.Breakdown{SearchInterest: 80, SocialBuzz: 50, Authority: 66, Momentum: 55},
		domain.SourceSearchInterest, domain.SourceRatings)
	scoreB := scoreWith(55, 55, domain.Breakdown{SearchInterest: 52, SocialBuzz: 60, Authority: 50, Momentum: 55},
		domain.SourceSearchInterest, domain.SourceSocial)

	v := Generate("A", "B", scoreA, scoreB, domain.CategoryProducts)

	assert.Equal(t, []string{
		"Search interest favors A (80 vs 52)",
		"Authority signals favor A (66 vs 50)",
		"Based on sources: ratings, search_interest, social",
	}, v.Evidence)
}

func TestGenerate_RecommendationMentionsBothTermsAndScores(t *testing.T) {
	scoreA := scoreWith(70, 70, domain.Breakdown{})
	scoreB := scoreWith(55, 60, domain.Breakdown{})

	for _, category := range []domain.Category{
		domain.CategoryMovies, domain.CategoryProducts, domain.CategoryTech,
		domain.CategoryPeople, domain.CategoryGames, domain.CategoryMusic,
		domain.CategoryBrands, domain.CategoryPlaces, domain.CategoryGeneral,
		domain.Category("unknown"),
	} {
		v := Generate("Alpha", "Beta", scoreA, scoreB, category)

		assert.Contains(t, v.Recommendation, "Alpha")
		assert.Contains(t, v.Recommendation, "Beta")
		assert.Contains(t, v.Recommendation, "70")
		assert.Contains(t, v.Recommendation, "55")
	}
}
