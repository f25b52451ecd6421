package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewStars(t *testing.T) {
	cases := []struct {
		rating float64
		stars  string
	}{
		{0.5, "⭐"},
		{1, "⭐"},
		{2.5, "⭐⭐⭐"},
		{4, "⭐⭐⭐⭐"},
		{5, "⭐⭐⭐⭐⭐"},
	}

	for _, tc := range cases {
		review := &Review{Rating: tc.rating}
		assert.Equal(t, tc.stars, review.Stars(), "rating %.1f", tc.rating)
	}
}
