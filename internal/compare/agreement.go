package compare

import "github.com/trendarc/trendarc/internal/core/domain"

// defaultAgreement is returned when breakdowns are missing.
const defaultAgreement = 50.0

// AgreementIndex measures how many breakdown dimensions concur with the
// overall winner direction, as a percentage.
//
// In compatibility mode (corrected=false) a dimension agrees when its
// directional comparison matches winnerDir or the two values are flatly
// equal; all four dimensions stay in the denominator. This preserves the
// as-built numeric behavior of the original engine, where both per-dimension
// directions were derived from the same aggregate value pair.
//
// In corrected mode flat-equal dimensions are excluded from the denominator
// and only strict directional matches count, which is closer to "does this
// dimension independently agree with the verdict".
func AgreementIndex(a, b *domain.Breakdown, winnerDir int, corrected bool) float64 {
	if a == nil || b == nil {
		return defaultAgreement
	}

	pairs := [][2]int{
		{a.SearchInterest, b.SearchInterest},
		{a.SocialBuzz, b.SocialBuzz},
		{a.Authority, b.Authority},
		{a.Momentum, b.Momentum},
	}

	if corrected {
		return correctedAgreement(pairs, winnerDir)
	}

	agreements := 0

	for _, pair := range pairs {
		dir := sign(pair[0] - pair[1])
		if dir == 0 || dir == winnerDir {
			agreements++
		}
	}

	return float64(agreements) / float64(len(pairs)) * 100
}

func correctedAgreement(pairs [][2]int, winnerDir int) float64 {
	agreements, counted := 0, 0

	for _, pair := range pairs {
		dir := sign(pair[0] - pair[1])
		if dir == 0 {
			continue
		}

		counted++

		if dir == winnerDir {
			agreements++
		}
	}

	if counted == 0 {
		return defaultAgreement
	}

	return float64(agreements) / float64(counted) * 100
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
