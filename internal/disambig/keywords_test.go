package disambig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAmbiguousKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		want    bool
	}{
		{keyword: "apple", want: true},
		{keyword: "Apple", want: true},
		{keyword: "APPLE", want: true},
		{keyword: " apple ", want: true},
		{keyword: "java", want: true},
		{keyword: "python", want: true},
		{keyword: "tesla", want: true},
		{keyword: "jaguar", want: true},
		{keyword: "amazon", want: true},
		{keyword: "iPhone", want: false},
		{keyword: "apples", want: false},
		{keyword: "app", want: false},
		{keyword: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAmbiguousKeyword(tt.keyword))
		})
	}
}

func TestEveryAmbiguousKeywordHasSenses(t *testing.T) {
	for keyword := range ambiguousKeywords {
		senses := sensesFor(keyword)

		assert.NotEmpty(t, senses, keyword)

		for _, s := range senses {
			assert.NotEmpty(t, s.label, keyword)
			assert.NotEmpty(t, s.cues, keyword)
			assert.NotEmpty(t, s.categories, keyword)
		}
	}
}
