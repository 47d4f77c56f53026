package salon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func reviewsWithRatings(ratings ...int) []models.Review {
	out := make([]models.Review, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, models.Review{Rating: r})
	}
	return out
}

func TestMeanRating(t *testing.T) {
	assert.Equal(t, 4.0, MeanRating(reviewsWithRatings(5, 3, 4)))
	assert.Equal(t, 5.0, MeanRating(reviewsWithRatings(5)))
	assert.InDelta(t, 4.333333, MeanRating(reviewsWithRatings(5, 4, 4)), 0.000001)
}

func TestMeanRating_EmptyResetsToZero(t *testing.T) {
	assert.Equal(t, 0.0, MeanRating(nil))
	assert.Equal(t, 0.0, MeanRating([]models.Review{}))
}
