package cache

import (
	"context"
	"time"

	"simpleshop/models"
	"simpleshop/repository"
)

const ProductsKey = "products:all"

var _ repository.ProductRepository = (*CachedProductRepository)(nil)

// CachedProductRepository serves List from the read-through cache and
// invalidates it after every successful write.
type CachedProductRepository struct {
	realRepo repository.ProductRepository
	list     *ReadThrough[[]models.Product]
}

func NewCachedProductRepository(realRepo repository.ProductRepository, store Store[[]models.Product], ttl time.Duration, now Clock) *CachedProductRepository {
	return &CachedProductRepository{
		realRepo: realRepo,
		list:     NewReadThrough(store, ttl, now),
	}
}

func (c *CachedProductRepository) List(ctx context.Context) ([]models.Product, error) {
	return c.list.GetOrFetch(ctx, c.realRepo.List)
}

func (c *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := c.realRepo.Create(ctx, product); err != nil {
		return err
	}
	c.list.Invalidate(ctx)
	return nil
}

func (c *CachedProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	product, err := c.realRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	c.list.Invalidate(ctx)
	return product, nil
}

func (c *CachedProductRepository) Delete(ctx context.Context, id string) error {
	if err := c.realRepo.Delete(ctx, id); err != nil {
		return err
	}
	c.list.Invalidate(ctx)
	return nil
}
