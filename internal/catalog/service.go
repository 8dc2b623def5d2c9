package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Store Store
	Cache Cache // optional
	Now   func() time.Time
}

func NewService(store Store, cache Cache) *Service {
	return &Service{Store: store, Cache: cache, Now: time.Now}
}

// generation returns the cache generation to fill with, or ok=false when the
// cache is absent or unreachable.
func (s *Service) generation(ctx context.Context) (int64, bool) {
	if s.Cache == nil {
		return 0, false
	}
	gen, err := s.Cache.Generation(ctx)
	if err != nil {
		slog.WarnContext(ctx, "catalog cache generation", "err", err)
		return 0, false
	}
	return gen, true
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	if s.Cache != nil {
		ps, ok, err := s.Cache.List(ctx)
		if err != nil {
			slog.WarnContext(ctx, "catalog cache read", "key", "list", "err", err)
		} else if ok {
			return ps, nil
		}
	}
	gen, fill := s.generation(ctx)
	ps, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if fill {
		if err := s.Cache.SetList(ctx, gen, ps); err != nil {
			slog.WarnContext(ctx, "catalog cache write", "key", "list", "err", err)
		}
	}
	return ps, nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if s.Cache != nil {
		p, ok, err := s.Cache.Product(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "catalog cache read", "product_id", id, "err", err)
		} else if ok {
			return p, nil
		}
	}
	gen, fill := s.generation(ctx)
	p, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if fill {
		if err := s.Cache.SetProduct(ctx, gen, p); err != nil {
			slog.WarnContext(ctx, "catalog cache write", "product_id", id, "err", err)
		}
	}
	return p, nil
}

// Create always stores the placeholder product; callers follow up with Update.
func (s *Service) Create(ctx context.Context, adminID string) (Product, error) {
	p := Placeholder(uuid.NewString(), adminID, s.Now().UTC())
	if err := s.Store.Insert(ctx, p); err != nil {
		return Product{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, f Fields) (Product, error) {
	p, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	p.Apply(f)
	p.UpdatedAt = s.Now().UTC()
	if err := s.Store.Save(ctx, p); err != nil {
		return Product{}, err
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	if err := s.Store.Delete(ctx, id); err != nil {
		return "", err
	}
	s.invalidate(ctx, id)
	return MsgProductDeleted, nil
}

// AddReview records one review per author and refreshes the aggregate rating.
func (s *Service) AddReview(ctx context.Context, id string, author Author, rating int, comment string) (string, error) {
	p, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	now := s.Now().UTC()
	r := Review{User: author.ID, Name: author.Name, Rating: rating, Comment: comment, CreatedAt: now}
	if err := p.AddReview(r); err != nil {
		return "", err
	}
	p.UpdatedAt = now
	if err := s.Store.Save(ctx, p); err != nil {
		return "", err
	}
	s.invalidate(ctx, id)
	return MsgReviewAdded, nil
}

func (s *Service) invalidate(ctx context.Context, ids ...string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, ids...); err != nil {
		slog.WarnContext(ctx, "catalog cache invalidate", "ids", ids, "err", err)
	}
}
