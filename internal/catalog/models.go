package catalog

import "time"

type Product struct {
	ID           string    `json:"_id"`
	User         string    `json:"user"`
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CountInStock int       `json:"countInStock"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"numReviews"`
	Reviews      []Review  `json:"reviews"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Review struct {
	User      string    `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Fields are the mutable product fields; an update overwrites all of them.
type Fields struct {
	Name         string
	Price        float64
	Description  string
	Image        string
	Brand        string
	Category     string
	CountInStock int
}

// Author identifies whoever submits a review.
type Author struct {
	ID   string
	Name string
}

const (
	MsgProductDeleted = "Product deleted"
	MsgReviewAdded    = "Review added"
)

// Placeholder is the record an admin create always starts from.
func Placeholder(id, adminID string, now time.Time) Product {
	return Product{
		ID:           id,
		User:         adminID,
		Name:         "Sample product",
		Price:        0,
		Image:        "/images/sample.jpg",
		Brand:        "Sample brand",
		Category:     "Sample category",
		CountInStock: 0,
		NumReviews:   0,
		Description:  "Sample description",
		Reviews:      []Review{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (p *Product) Apply(f Fields) {
	p.Name = f.Name
	p.Price = f.Price
	p.Description = f.Description
	p.Image = f.Image
	p.Brand = f.Brand
	p.Category = f.Category
	p.CountInStock = f.CountInStock
}
