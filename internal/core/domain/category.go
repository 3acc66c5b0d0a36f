package domain

// Category is the closed comparison category enum. Each category maps to a
// fixed weight vector in the score calculator.
type Category string

// Known categories.
const (
	CategoryMovies   Category = "movies"
	CategoryProducts Category = "products"
	CategoryTech     Category = "tech"
	CategoryPeople   Category = "people"
	CategoryGames    Category = "games"
	CategoryMusic    Category = "music"
	CategoryBrands   Category = "brands"
	CategoryPlaces   Category = "places"
	CategoryGeneral  Category = "general"
)

var knownCategories = map[Category]bool{
	CategoryMovies:   true,
	CategoryProducts: true,
	CategoryTech:     true,
	CategoryPeople:   true,
	CategoryGames:    true,
	CategoryMusic:    true,
	CategoryBrands:   true,
	CategoryPlaces:   true,
	CategoryGeneral:  true,
}

// ParseCategory maps a raw string onto a known category, falling back to
// general for anything unrecognized.
func ParseCategory(raw string) Category {
	c := Category(raw)
	if knownCategories[c] {
		return c
	}

	return CategoryGeneral
}

// IsKnown reports whether c is a member of the closed category enum.
func (c Category) IsKnown() bool {
	return knownCategories[c]
}
