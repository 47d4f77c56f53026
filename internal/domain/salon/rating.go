package salon

import "github.com/BruksfildServices01/salon-booking/internal/models"

// MeanRating returns the arithmetic mean of the given reviews' ratings,
// or 0 when there are none. The persisted salon rating must always
// equal this value for the persisted review set.
func MeanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var total int
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
