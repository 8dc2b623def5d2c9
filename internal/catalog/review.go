package catalog

import "github.com/ariefcatur/go-storefront/internal/apperr"

const (
	MinRating = 1
	MaxRating = 5
)

// AddReview appends r and recomputes NumReviews and Rating over every review.
// A user reviews a product at most once.
func (p *Product) AddReview(r Review) error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return apperr.Validation("Rating must be between 1 and 5")
	}
	if p.ReviewedBy(r.User) {
		return apperr.Conflict("Product already reviewed")
	}
	p.Reviews = append(p.Reviews, r)
	p.NumReviews = len(p.Reviews)
	p.Rating = meanRating(p.Reviews)
	return nil
}

func (p *Product) ReviewedBy(userID string) bool {
	for _, r := range p.Reviews {
		if r.User == userID {
			return true
		}
	}
	return false
}

func meanRating(rs []Review) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Rating
	}
	return float64(sum) / float64(len(rs))
}
