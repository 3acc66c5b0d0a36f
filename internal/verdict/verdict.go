// Package verdict derives a human-readable comparison verdict from two
// composite term scores.
package verdict

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/trendarc/trendarc/internal/core/domain"
)

// Margin tiers for headline wording.
const (
	marginClearLead = 20
	marginEdge      = 10
	marginSlight    = 5
)

// Headline templates by margin tier. Wording is user-visible and tested.
const (
	headlineClearLead = "%s clearly leads %s"
	headlineEdge      = "%s has the edge over %s"
	headlineSlight    = "%s is slightly ahead of %s"
	headlineTied      = "%s and %s are virtually tied"
)

var recommendationTemplates = map[domain.Category]string{
	domain.CategoryMovies:   "%s (%d) is the stronger pick for movie fans right now, ahead of %s (%d).",
	domain.CategoryProducts: "Shoppers comparing the two should look at %s (%d) first; %s (%d) trails on combined signals.",
	domain.CategoryTech:     "%s (%d) shows stronger adoption signals than %s (%d) across search and community sources.",
	domain.CategoryPeople:   "%s (%d) currently draws more attention than %s (%d).",
	domain.CategoryGames:    "%s (%d) has the more active player buzz, with %s (%d) behind.",
	domain.CategoryMusic:    "%s (%d) is resonating with listeners more than %s (%d) at the moment.",
	domain.CategoryBrands:   "%s (%d) carries more brand momentum than %s (%d) in this window.",
	domain.CategoryPlaces:   "%s (%d) is attracting more interest than %s (%d) among travelers and locals.",
	domain.CategoryGeneral:  "%s (%d) comes out ahead of %s (%d) on combined popularity signals.",
}

// Evidence line templates, one per breakdown dimension.
const (
	evidenceSearch    = "Search interest favors %s (%d vs %d)"
	evidenceSocial    = "Social buzz favors %s (%d vs %d)"
	evidenceAuthority = "Authority signals favor %s (%d vs %d)"
	evidenceMomentum  = "Momentum favors %s (%d vs %d)"
	evidenceSources   = "Based on sources: %s"
)

// Generate produces the verdict for two scored terms. Ties favor the first
// argument.
func Generate(termA, termB string, scoreA, scoreB domain.TrendArcScore, category domain.Category) domain.ComparisonVerdict {
	winner, loser := termA, termB
	winnerScore, loserScore := scoreA, scoreB

	if scoreB.Overall > scoreA.Overall {
		winner, loser = termB, termA
		winnerScore, loserScore = scoreB, scoreA
	}

	margin := scoreA.Overall - scoreB.Overall
	if margin < 0 {
		margin = -margin
	}

	confidence := int(math.Round(float64(scoreA.Confidence+scoreB.Confidence) / 2))

	return domain.ComparisonVerdict{
		Winner:         winner,
		Loser:          loser,
		WinnerScore:    winnerScore.Overall,
		LoserScore:     loserScore.Overall,
		Margin:         margin,
		Confidence:     confidence,
		Headline:       buildHeadline(winner, loser, margin),
		Recommendation: buildRecommendation(winner, winnerScore.Overall, loser, loserScore.Overall, category),
		Evidence:       buildEvidence(winner, winnerScore, loserScore),
	}
}

func buildHeadline(winner, loser string, margin int) string {
	switch {
	case margin >= marginClearLead:
		return fmt.Sprintf(headlineClearLead, winner, loser)
	case margin >= marginEdge:
		return fmt.Sprintf(headlineEdge, winner, loser)
	case margin >= marginSlight:
		return fmt.Sprintf(headlineSlight, winner, loser)
	default:
		return fmt.Sprintf(headlineTied, winner, loser)
	}
}

func buildRecommendation(winner string, winnerScore int, loser string, loserScore int, category domain.Category) string {
	template, ok := recommendationTemplates[category]
	if !ok {
		template = recommendationTemplates[domain.CategoryGeneral]
	}

	return fmt.Sprintf(template, winner, winnerScore, loser, loserScore)
}

// buildEvidence lists a fixed-wording fact for each breakdown dimension where
// the winner scores higher, plus a trailing line naming the union of both
// terms' contributing sources.
func buildEvidence(winner string, winnerScore, loserScore domain.TrendArcScore) []string {
	var evidence []string

	wb, lb := winnerScore.Breakdown, loserScore.Breakdown

	if wb.SearchInterest > lb.SearchInterest {
		evidence = append(evidence, fmt.Sprintf(evidenceSearch, winner, wb.SearchInterest, lb.SearchInterest))
	}

	if wb.SocialBuzz > lb.SocialBuzz {
		evidence = append(evidence, fmt.Sprintf(evidenceSocial, winner, wb.SocialBuzz, lb.SocialBuzz))
	}

	if wb.Authority > lb.Authority {
		evidence = append(evidence, fmt.Sprintf(evidenceAuthority, winner, wb.Authority, lb.Authority))
	}

	if wb.Momentum > lb.Momentum {
		evidence = append(evidence, fmt.Sprintf(evidenceMomentum, winner, wb.Momentum, lb.Momentum))
	}

	if union := sourceUnion(winnerScore.Sources, loserScore.Sources); len(union) > 0 {
		evidence = append(evidence, fmt.Sprintf(evidenceSources, strings.Join(union, ", ")))
	}

	return evidence
}

func sourceUnion(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))

	for _, s := range a {
		seen[s] = true
	}

	for _, s := range b {
		seen[s] = true
	}

	union := make([]string, 0, len(seen))
	for s := range seen {
		union = append(union, s)
	}

	sort.Strings(union)

	return union
}
