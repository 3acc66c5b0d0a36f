package compare

import (
	"sort"

	"github.com/trendarc/trendarc/internal/core/domain"
)

// DefaultTopDrivers is the number of drivers reported by the engine.
const DefaultTopDrivers = 3

// Human labels for the breakdown dimensions, in breakdown order.
const (
	LabelSearchInterest = "Search Interest"
	LabelSocialBuzz     = "Social Buzz"
	LabelAuthority      = "Authority"
	LabelMomentum       = "Momentum"
)

// TopDrivers ranks the breakdown dimensions by how strongly they separate
// the two terms, descending, and returns the top n.
func TopDrivers(a, b domain.Breakdown, n int) []domain.Driver {
	drivers := []domain.Driver{
		{Name: LabelSearchInterest, Impact: absInt(a.SearchInterest - b.SearchInterest)},
		{Name: LabelSocialBuzz, Impact: absInt(a.SocialBuzz - b.SocialBuzz)},
		{Name: LabelAuthority, Impact: absInt(a.Authority - b.Authority)},
		{Name: LabelMomentum, Impact: absInt(a.Momentum - b.Momentum)},
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Impact > drivers[j].Impact
	})

	if n > len(drivers) {
		n = len(drivers)
	}

	return drivers[:n]
}

func absInt(v int) float64 {
	if v < 0 {
		v = -v
	}

	return float64(v)
}
