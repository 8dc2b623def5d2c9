package redisx

import "time"

const (
	// Catalog read cache: catalog:products -> JSON array of products
	KeyProductList = "catalog:products"

	// Catalog read cache: catalog:product:{product_id} -> JSON product
	KeyProduct = "catalog:product:%s"

	// Catalog cache generation, bumped on every invalidation; never expires
	KeyCatalogGeneration = "catalog:generation"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Per-user notification feed: notify:user:{user_id} -> list of JSON notifications
	KeyUserNotifications = "notify:user:%s"
)

var (
	TTLCatalog       = 5 * time.Minute
	TTLDedup         = 48 * time.Hour
	TTLNotifications = 30 * 24 * time.Hour

	// MaxNotifications caps each user's feed.
	MaxNotifications int64 = 50
)
