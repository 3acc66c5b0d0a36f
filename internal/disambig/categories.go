package disambig

import "strings"

// categoryRule pairs a context category with the term patterns that imply it.
type categoryRule struct {
	category string
	patterns []string
}

// categoryRules is evaluated strictly in order; the first rule whose pattern
// matches either term wins. Technology comes before food on purpose: terms
// like "apple" or "java" appear in both tables and must resolve to
// technology when paired with a tech term.
var categoryRules = []categoryRule{
	{
		category: "technology",
		patterns: []string{"iphone", "android", "phone", "laptop", "computer", "software", "app", "apple", "google", "microsoft", "tesla", "amazon", "java", "python", "ai", "cloud", "chip", "crypto"},
	},
	{
		category: "food",
		patterns: []string{"pizza", "burger", "recipe", "restaurant", "coffee", "fruit", "orange", "banana", "sushi", "pasta", "chocolate", "tea", "juice"},
	},
	{
		category: "entertainment",
		patterns: []string{"movie", "film", "netflix", "music", "album", "concert", "series", "show", "actor", "singer", "disney"},
	},
	{
		category: "sports",
		patterns: []string{"football", "soccer", "basketball", "nba", "nfl", "tennis", "olympics", "cricket", "golf", "fifa"},
	},
	{
		category: "automotive",
		patterns: []string{"car", "suv", "sedan", "truck", "motorcycle", "bmw", "toyota", "ford", "jaguar"},
	},
	{
		category: "travel",
		patterns: []string{"hotel", "flight", "airline", "vacation", "resort", "cruise", "tourism"},
	},
	{
		category: "animals",
		patterns: []string{"dog", "cat", "snake", "bird", "wildlife", "zoo", "pet"},
	},
}

// SuggestCategory infers a comparison context category from the two compared
// terms. Rules are checked in fixed order against both terms; the first match
// wins. Returns false when no rule matches.
func SuggestCategory(termA, termB string) (string, bool) {
	a := strings.ToLower(termA)
	b := strings.ToLower(termB)

	for _, rule := range categoryRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(a, pattern) || strings.Contains(b, pattern) {
				return rule.category, true
			}
		}
	}

	return "", false
}
