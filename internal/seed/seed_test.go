package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
)

// Recording stubs capture what the seeder writes without a database.

type recordingStore struct {
	users      []*models.User
	locations  []*models.Location
	categories []*models.Category
	shops      []*models.Shop
	products   []*models.Product
}

type stubUserRepo struct{ store *recordingStore }

func (r stubUserRepo) Create(_ context.Context, u *models.User) error {
	r.store.users = append(r.store.users, u)
	return nil
}
func (stubUserRepo) FindByID(context.Context, uuid.UUID) (*models.User, error) { return nil, nil }
func (stubUserRepo) FindByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (stubUserRepo) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, nil
}

type stubLocationRepo struct{ store *recordingStore }

func (r stubLocationRepo) Create(_ context.Context, l *models.Location) error {
	r.store.locations = append(r.store.locations, l)
	return nil
}
func (stubLocationRepo) GetByID(context.Context, uuid.UUID) (*models.Location, error) {
	return nil, nil
}

type stubCategoryRepo struct{ store *recordingStore }

func (r stubCategoryRepo) Create(_ context.Context, c *models.Category) error {
	r.store.categories = append(r.store.categories, c)
	return nil
}
func (stubCategoryRepo) GetByID(context.Context, uuid.UUID) (*models.Category, error) {
	return nil, nil
}
func (stubCategoryRepo) GetBySlug(context.Context, string) (*models.Category, error) {
	return nil, nil
}
func (stubCategoryRepo) ListActive(context.Context) ([]*models.Category, error) { return nil, nil }

type stubShopRepo struct{ store *recordingStore }

func (r stubShopRepo) Create(_ context.Context, s *models.Shop) error {
	r.store.shops = append(r.store.shops, s)
	return nil
}
func (stubShopRepo) GetBySlug(context.Context, string) (*models.Shop, error) { return nil, nil }
func (stubShopRepo) List(context.Context, int, int) ([]*models.Shop, int, error) {
	return nil, 0, nil
}

type stubProductRepo struct{ store *recordingStore }

func (r stubProductRepo) Create(_ context.Context, p *models.Product) error {
	r.store.products = append(r.store.products, p)
	return nil
}
func (stubProductRepo) GetByID(context.Context, uuid.UUID) (*models.Product, error) {
	return nil, nil
}
func (stubProductRepo) List(context.Context, models.ProductFilters) ([]*models.Product, int, error) {
	return nil, 0, nil
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (stubHasher) Compare(hash, password string) error  { return nil }

func TestSeederWritesDemoDataset(t *testing.T) {
	store := &recordingStore{}
	seeder := NewSeeder(
		stubUserRepo{store},
		stubLocationRepo{store},
		stubCategoryRepo{store},
		stubShopRepo{store},
		stubProductRepo{store},
		stubHasher{},
		zap.NewNop(),
	)

	require.NoError(t, seeder.Run(context.Background()))

	assert.Len(t, store.categories, 3)
	assert.Len(t, store.locations, 2)
	assert.Len(t, store.users, 3)
	assert.Len(t, store.shops, 2)
	assert.Len(t, store.products, 3)

	// Every demo account shares the demo password, hashed exactly once.
	for _, u := range store.users {
		assert.Equal(t, "hashed:password123", u.PasswordHash)
	}

	// Shops belong to the seeded sellers and carry a full storefront.
	sellers := map[uuid.UUID]bool{}
	for _, u := range store.users {
		if u.Role == models.UserRoleSeller {
			sellers[u.ID] = true
		}
	}
	require.Len(t, sellers, 2)
	for _, shop := range store.shops {
		assert.True(t, sellers[shop.OwnerID])
		require.NotNil(t, shop.Theme)
		assert.NotEmpty(t, shop.Theme.Colors)
		require.NotNil(t, shop.Customization)
		assert.NotEmpty(t, shop.Customization.Specialties)
	}

	// Products reference seeded sellers, shops and categories.
	categoryIDs := map[uuid.UUID]bool{}
	for _, c := range store.categories {
		categoryIDs[c.ID] = true
	}
	shopIDs := map[uuid.UUID]bool{}
	for _, s := range store.shops {
		shopIDs[s.ID] = true
	}
	for _, p := range store.products {
		assert.True(t, sellers[p.SellerID])
		assert.True(t, categoryIDs[p.CategoryID])
		require.NotNil(t, p.ShopID)
		assert.True(t, shopIDs[*p.ShopID])
		assert.Equal(t, models.ProductStatusActive, p.Status)
		assert.Positive(t, p.Price)
	}
}
