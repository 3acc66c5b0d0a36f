// Package disambig decides which real-world sense of an ambiguous keyword a
// candidate event refers to, and how well that sense matches the comparison
// context. It offers a rule-based verifier, a generative-model verifier
// speaking a fixed five-line wire format, a persistent result cache, and a
// fallback composite.
package disambig

import "strings"

// ambiguousKeywords is the fixed set of known polysemous terms. Membership is
// case-insensitive and exact; no fuzzy matching.
var ambiguousKeywords = map[string]struct{}{
	"apple":  {},
	"java":   {},
	"python": {},
	"tesla":  {},
	"jaguar": {},
	"amazon": {},
}

// IsAmbiguousKeyword reports whether keyword has multiple known real-world
// senses. Anything outside the fixed set is not ambiguous.
func IsAmbiguousKeyword(keyword string) bool {
	_, ok := ambiguousKeywords[strings.ToLower(strings.TrimSpace(keyword))]

	return ok
}

// sense is one real-world meaning of an ambiguous keyword.
type sense struct {
	// label names the sense in interpretations ("fruit", "technology company").
	label string

	// cues are lowercase substrings in event text that indicate this sense.
	cues []string

	// categories are the lowercase context categories this sense serves.
	categories []string
}

// keywordSenses maps each ambiguous keyword to its senses, most common sense
// first. Order breaks ties when event text matches several senses equally.
var keywordSenses = map[string][]sense{
	"apple": {
		{
			label:      "technology company",
			cues:       []string{"iphone", "ipad", "mac", "ios", "app store", "cupertino", "tim cook", "silicon", "chip", "wwdc", "earnings", "stock"},
			categories: []string{"technology", "products", "brands"},
		},
		{
			label:      "fruit",
			cues:       []string{"harvest", "orchard", "fruit", "crop", "juice", "cider", "grower", "farm", "pie", "washington"},
			categories: []string{"food", "agriculture"},
		},
	},
	"java": {
		{
			label:      "programming language",
			cues:       []string{"jdk", "oracle", "developer", "programming", "code", "release", "framework", "jvm"},
			categories: []string{"technology"},
		},
		{
			label:      "coffee",
			cues:       []string{"coffee", "brew", "roast", "cafe", "espresso", "bean"},
			categories: []string{"food"},
		},
		{
			label:      "Indonesian island",
			cues:       []string{"indonesia", "island", "volcano", "jakarta", "earthquake"},
			categories: []string{"places", "travel"},
		},
	},
	"python": {
		{
			label:      "programming language",
			cues:       []string{"programming", "developer", "code", "release", "library", "pip", "script"},
			categories: []string{"technology"},
		},
		{
			label:      "snake",
			cues:       []string{"snake", "reptile", "zoo", "wildlife", "species", "bite"},
			categories: []string{"animals", "nature"},
		},
	},
	"tesla": {
		{
			label:      "car company",
			cues:       []string{"car", "vehicle", "electric", "musk", "model", "factory", "autopilot", "charging", "stock"},
			categories: []string{"technology", "automotive", "brands", "products"},
		},
		{
			label:      "inventor Nikola Tesla",
			cues:       []string{"nikola", "inventor", "physics", "coil", "history", "museum"},
			categories: []string{"people", "science"},
		},
	},
	"jaguar": {
		{
			label:      "car brand",
			cues:       []string{"car", "vehicle", "luxury", "sedan", "suv", "motor", "dealership"},
			categories: []string{"automotive", "brands", "products"},
		},
		{
			label:      "animal",
			cues:       []string{"animal", "wildlife", "jungle", "rainforest", "zoo", "species", "predator"},
			categories: []string{"animals", "nature"},
		},
	},
	"amazon": {
		{
			label:      "technology company",
			cues:       []string{"prime", "aws", "delivery", "retailer", "warehouse", "bezos", "e-commerce", "stock", "cloud"},
			categories: []string{"technology", "brands", "products"},
		},
		{
			label:      "rainforest",
			cues:       []string{"rainforest", "river", "brazil", "deforestation", "jungle", "basin", "tribe"},
			categories: []string{"places", "nature"},
		},
	},
}

// sensesFor returns the sense table for keyword, or nil for non-ambiguous
// keywords.
func sensesFor(keyword string) []sense {
	return keywordSenses[strings.ToLower(strings.TrimSpace(keyword))]
}
