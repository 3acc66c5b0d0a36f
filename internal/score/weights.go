package score

import "github.com/trendarc/trendarc/internal/core/domain"

// Weights is the per-category weight vector applied to the four breakdown
// dimensions. Each vector must sum to 1.0.
type Weights struct {
	SearchInterest float64
	SocialBuzz     float64
	Authority      float64
	Momentum       float64
}

// DefaultWeights returns the built-in weight table. Categories lean on the
// signals that matter most for them: authority dominates movies and products,
// social buzz dominates people and music.
func DefaultWeights() map[domain.Category]Weights {
	return map[domain.Category]Weights{
		domain.CategoryMovies:   {SearchInterest: 0.30, SocialBuzz: 0.25, Authority: 0.35, Momentum: 0.10},
		domain.CategoryProducts: {SearchInterest: 0.35, SocialBuzz: 0.20, Authority: 0.30, Momentum: 0.15},
		domain.CategoryTech:     {SearchInterest: 0.40, SocialBuzz: 0.25, Authority: 0.15, Momentum: 0.20},
		domain.CategoryPeople:   {SearchInterest: 0.35, SocialBuzz: 0.40, Authority: 0.10, Momentum: 0.15},
		domain.CategoryGames:    {SearchInterest: 0.30, SocialBuzz: 0.35, Authority: 0.20, Momentum: 0.15},
		domain.CategoryMusic:    {SearchInterest: 0.30, SocialBuzz: 0.40, Authority: 0.15, Momentum: 0.15},
		domain.CategoryBrands:   {SearchInterest: 0.40, SocialBuzz: 0.25, Authority: 0.20, Momentum: 0.15},
		domain.CategoryPlaces:   {SearchInterest: 0.45, SocialBuzz: 0.25, Authority: 0.15, Momentum: 0.15},
		domain.CategoryGeneral:  {SearchInterest: 0.40, SocialBuzz: 0.25, Authority: 0.20, Momentum: 0.15},
	}
}
