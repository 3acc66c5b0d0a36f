package disambig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCategory(t *testing.T) {
	tests := []struct {
		name  string
		termA string
		termB string
		want  string
		found bool
	}{
		{name: "phones", termA: "iPhone", termB: "Android", want: "technology", found: true},
		{name: "food terms", termA: "Pizza", termB: "Sushi", want: "food", found: true},
		{name: "streaming", termA: "Netflix", termB: "Disney", want: "entertainment", found: true},
		{name: "sports", termA: "NBA", termB: "NFL", want: "sports", found: true},
		{name: "cars", termA: "BMW", termB: "Toyota", want: "automotive", found: true},
		{name: "no match", termA: "Xylophone", termB: "Zither", found: false},
		{name: "only one term needs to match", termA: "Quinoa", termB: "Burger", want: "food", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := SuggestCategory(tt.termA, tt.termB)

			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestCategoryOrderIsLoadBearing(t *testing.T) {
	// "apple" appears in both technology and food patterns; technology is
	// checked first and must win.
	got, found := SuggestCategory("Apple", "Orange")

	assert.True(t, found)
	assert.Equal(t, "technology", got)
}
