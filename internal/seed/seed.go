// Package seed loads the sample catalog and accounts used in development.
package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/ariefcatur/go-storefront/internal/accounts"
	"github.com/ariefcatur/go-storefront/internal/auth"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Truncater is implemented by every Repo and MemoryStore.
type Truncater interface {
	DeleteAll(ctx context.Context) error
}

// Destroy empties the given stores in order. Orders go first so no order
// outlives its owner.
func Destroy(ctx context.Context, stores ...Truncater) error {
	for _, s := range stores {
		if err := s.DeleteAll(ctx); err != nil {
			return err
		}
	}
	return nil
}

type sampleUser struct {
	name, email, password string
	admin                 bool
}

var sampleUsers = []sampleUser{
	{"Admin User", "admin@example.com", "123456", true},
	{"John Doe", "john@example.com", "123456", false},
	{"Jane Doe", "jane@example.com", "123456", false},
}

var sampleProducts = []catalog.Fields{
	{
		Name:         "Airpods Wireless Bluetooth Headphones",
		Image:        "/images/airpods.jpg",
		Description:  "Bluetooth technology lets you connect it with compatible devices wirelessly. High-quality AAC audio offers immersive listening experience. Built-in microphone allows you to take calls while working",
		Brand:        "Apple",
		Category:     "Electronics",
		Price:        89.99,
		CountInStock: 10,
	},
	{
		Name:         "iPhone 11 Pro 256GB Memory",
		Image:        "/images/phone.jpg",
		Description:  "Introducing the iPhone 11 Pro. A transformative triple-camera system that adds tons of capability without complexity. An unprecedented leap in battery life",
		Brand:        "Apple",
		Category:     "Electronics",
		Price:        599.99,
		CountInStock: 7,
	},
	{
		Name:         "Cannon EOS 80D DSLR Camera",
		Image:        "/images/camera.jpg",
		Description:  "Characterized by versatile imaging specs, the Canon EOS 80D further clarifies itself using a pair of robust focusing systems and an intuitive design",
		Brand:        "Cannon",
		Category:     "Electronics",
		Price:        929.99,
		CountInStock: 5,
	},
	{
		Name:         "Sony Playstation 4 Pro White Version",
		Image:        "/images/playstation.jpg",
		Description:  "The ultimate home entertainment center starts with PlayStation. Whether you are into gaming, HD movies, television, music",
		Brand:        "Sony",
		Category:     "Electronics",
		Price:        399.99,
		CountInStock: 11,
	},
	{
		Name:         "Logitech G-Series Gaming Mouse",
		Image:        "/images/mouse.jpg",
		Description:  "Get a better handle on your games with this Logitech LIGHTSYNC gaming mouse. The six programmable buttons allow customization for a smooth playing experience",
		Brand:        "Logitech",
		Category:     "Electronics",
		Price:        49.99,
		CountInStock: 7,
	},
	{
		Name:         "Amazon Echo Dot 3rd Generation",
		Image:        "/images/alexa.jpg",
		Description:  "Meet Echo Dot - Our most popular smart speaker with a fabric design. It is our most compact smart speaker that fits perfectly into small space",
		Brand:        "Amazon",
		Category:     "Electronics",
		Price:        29.99,
		CountInStock: 0,
	},
}

// Import inserts the sample users and products. Products are owned by the
// admin user. It returns the admin's id.
func Import(ctx context.Context, users accounts.Store, products catalog.Store, now time.Time) (string, error) {
	now = now.UTC()
	var adminID string
	for _, su := range sampleUsers {
		hash, err := auth.HashPassword(su.password)
		if err != nil {
			return "", err
		}
		u := accounts.User{
			ID:           uuid.NewString(),
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hash,
			IsAdmin:      su.admin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Insert(ctx, u); err != nil {
			return "", errors.Wrapf(err, "seed user %s", su.email)
		}
		if su.admin && adminID == "" {
			adminID = u.ID
		}
		slog.InfoContext(ctx, "user seeded", "email", u.Email, "id", u.ID)
	}

	for i, f := range sampleProducts {
		// distinct timestamps keep the listing in seed order
		p := catalog.Placeholder(uuid.NewString(), adminID, now.Add(time.Duration(i)*time.Millisecond))
		p.Apply(f)
		if err := products.Insert(ctx, p); err != nil {
			return "", errors.Wrapf(err, "seed product %s", f.Name)
		}
	}
	slog.InfoContext(ctx, "products seeded", "count", len(sampleProducts))
	return adminID, nil
}
