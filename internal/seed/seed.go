// Package seed fills an empty database with demo marketplace data:
// categories, locations, two sellers with themed shops, one buyer and a
// handful of listings.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/domain/repository"
	"github.com/ruchelocale/marketplace-api/internal/infrastructure/security"
)

// Seeder writes the demo dataset through the regular repositories.
type Seeder struct {
	users      repository.UserRepository
	locations  repository.LocationRepository
	categories repository.CategoryRepository
	shops      repository.ShopRepository
	products   repository.ProductRepository
	hasher     security.PasswordHasher
	logger     *zap.Logger
}

// NewSeeder wires a Seeder.
func NewSeeder(
	users repository.UserRepository,
	locations repository.LocationRepository,
	categories repository.CategoryRepository,
	shops repository.ShopRepository,
	products repository.ProductRepository,
	hasher security.PasswordHasher,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		users:      users,
		locations:  locations,
		categories: categories,
		shops:      shops,
		products:   products,
		hasher:     hasher,
		logger:     logger,
	}
}

// Run inserts the full demo dataset. All demo accounts share the
// password "password123".
func (s *Seeder) Run(ctx context.Context) error {
	categories, err := s.seedCategories(ctx)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	locations, err := s.seedLocations(ctx)
	if err != nil {
		return fmt.Errorf("locations: %w", err)
	}
	users, err := s.seedUsers(ctx, locations)
	if err != nil {
		return fmt.Errorf("users: %w", err)
	}
	shops, err := s.seedShops(ctx, users, locations)
	if err != nil {
		return fmt.Errorf("shops: %w", err)
	}
	if err := s.seedProducts(ctx, users, shops, categories, locations); err != nil {
		return fmt.Errorf("products: %w", err)
	}

	s.logger.Info("seeding completed",
		zap.Int("categories", len(categories)),
		zap.Int("locations", len(locations)),
		zap.Int("users", len(users)),
		zap.Int("shops", len(shops)),
	)
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context) ([]*models.Category, error) {
	categories := []*models.Category{
		{
			ID:          uuid.New(),
			Name:        "Fruits & Légumes",
			Slug:        "fruits-legumes",
			Description: "Produits frais du jardin et des vergers",
			Icon:        "🥕",
			Color:       "#10B981",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			ID:          uuid.New(),
			Name:        "Produits Laitiers",
			Slug:        "produits-laitiers",
			Description: "Fromages, lait, yaourts et œufs locaux",
			Icon:        "🧀",
			Color:       "#F59E0B",
			SortOrder:   2,
			IsActive:    true,
		},
		{
			ID:          uuid.New(),
			Name:        "Plantes & Jardinage",
			Slug:        "plantes-jardinage",
			Description: "Plants, graines et matériel de jardinage",
			Icon:        "🌱",
			Color:       "#059669",
			SortOrder:   3,
			IsActive:    true,
		},
	}
	for _, c := range categories {
		if err := s.categories.Create(ctx, c); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

func (s *Seeder) seedLocations(ctx context.Context) ([]*models.Location, error) {
	locations := []*models.Location{
		{
			ID:         uuid.New(),
			Address:    "123 Rue des Jardins",
			City:       "Lyon",
			PostalCode: "69000",
			Region:     "Auvergne-Rhône-Alpes",
			Country:    "France",
			Latitude:   45.7640,
			Longitude:  4.8357,
		},
		{
			ID:         uuid.New(),
			Address:    "456 Avenue de la Nature",
			City:       "Bordeaux",
			PostalCode: "33000",
			Region:     "Nouvelle-Aquitaine",
			Country:    "France",
			Latitude:   44.8378,
			Longitude:  -0.5792,
		},
	}
	for _, l := range locations {
		if err := s.locations.Create(ctx, l); err != nil {
			return nil, err
		}
	}
	return locations, nil
}

func (s *Seeder) seedUsers(ctx context.Context, locations []*models.Location) ([]*models.User, error) {
	hash, err := s.hasher.Hash("password123")
	if err != nil {
		return nil, err
	}

	users := []*models.User{
		{
			ID:           uuid.New(),
			Email:        "marie.jardinier@example.com",
			Username:     "marie_jardinier",
			PasswordHash: hash,
			Name:         "Marie Jardinier",
			FirstName:    "Marie",
			LastName:     "Jardinier",
			Role:         models.UserRoleSeller,
			IsVerified:   true,
			Rating:       4.8,
			ReviewCount:  25,
			LocationID:   &locations[0].ID,
		},
		{
			ID:           uuid.New(),
			Email:        "pierre.producteur@example.com",
			Username:     "pierre_producteur",
			PasswordHash: hash,
			Name:         "Pierre Producteur",
			FirstName:    "Pierre",
			LastName:     "Producteur",
			Role:         models.UserRoleSeller,
			IsVerified:   true,
			Rating:       4.9,
			ReviewCount:  42,
			LocationID:   &locations[1].ID,
		},
		{
			ID:           uuid.New(),
			Email:        "sophie.acheteur@example.com",
			Username:     "sophie_acheteur",
			PasswordHash: hash,
			Name:         "Sophie Martin",
			FirstName:    "Sophie",
			LastName:     "Martin",
			Role:         models.UserRoleUser,
			IsVerified:   true,
			Rating:       4.7,
			ReviewCount:  8,
			LocationID:   &locations[0].ID,
		},
	}
	for _, u := range users {
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *Seeder) seedShops(ctx context.Context, users []*models.User, locations []*models.Location) ([]*models.Shop, error) {
	shops := []*models.Shop{
		{
			ID:          uuid.New(),
			Name:        "Le Potager de Marie",
			Slug:        "potager-marie",
			Description: "Légumes bio et de saison cultivés avec amour dans la région lyonnaise.",
			OwnerID:     users[0].ID,
			LocationID:  &locations[0].ID,
			IsActive:    true,
			Theme: &models.ShopTheme{
				Name:     "Nature Pure",
				Category: models.ThemeCategoryNature,
				Colors:   mustJSON(map[string]string{"primary": "#059669", "secondary": "#92400E", "accent": "#F59E0B"}),
				Fonts:    mustJSON(map[string]string{"heading": "Inter", "body": "Inter"}),
				Layout:   mustJSON(map[string]string{"headerStyle": "CLASSIC", "productCardStyle": "CLASSIC"}),
			},
			Customization: &models.ShopCustomization{
				WelcomeMessage: "Bienvenue dans mon petit coin de verdure !",
				Story:          "Depuis 2008, je cultive mes légumes en respectant la nature et les saisons. Chaque produit est cueilli à maturité pour vous offrir le meilleur de mon jardin.",
				Specialties:    []string{"Légumes bio", "Aromates", "Légumes anciens"},
				OpeningHours: mustJSON(map[string]interface{}{
					"tuesday":   day("14:00", "18:00"),
					"wednesday": day("9:00", "12:00", "14:00", "18:00"),
					"friday":    day("14:00", "19:00"),
					"saturday":  day("8:00", "13:00"),
				}),
				DeliveryInfo: mustJSON(map[string]interface{}{
					"methods": []string{"PICKUP", "HOME_DELIVERY"},
					"zones": []map[string]interface{}{
						{"name": "Lyon Centre", "radius": 5, "price": 3, "estimatedTime": "2-4h"},
						{"name": "Grand Lyon", "radius": 15, "price": 5, "estimatedTime": "1 jour"},
					},
					"freeDeliveryThreshold": 25,
				}),
				SocialMedia: mustJSON(map[string]string{
					"instagram": "@potager_marie",
					"facebook":  "potager.marie.lyon",
				}),
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Ferme Pierre & Fils",
			Slug:        "ferme-pierre-fils",
			Description: "Exploitation familiale bio depuis 3 générations près de Bordeaux.",
			OwnerID:     users[1].ID,
			LocationID:  &locations[1].ID,
			IsActive:    true,
			Theme: &models.ShopTheme{
				Name:     "Campagne Authentique",
				Category: models.ThemeCategoryRustic,
				Colors:   mustJSON(map[string]string{"primary": "#7C2D12", "secondary": "#166534", "accent": "#DC2626"}),
				Fonts:    mustJSON(map[string]string{"heading": "Inter", "body": "Inter"}),
				Layout:   mustJSON(map[string]string{"headerStyle": "CLASSIC", "productCardStyle": "MAGAZINE"}),
			},
			Customization: &models.ShopCustomization{
				WelcomeMessage: "Producteurs passionnés depuis 3 générations",
				Story:          "Notre ferme familiale existe depuis 1952. Nous avons fait le choix du bio en 1998 pour préserver notre terre et votre santé.",
				Specialties:    []string{"Fruits de saison", "Légumes bio", "Produits transformés"},
				OpeningHours: mustJSON(map[string]interface{}{
					"monday":    day("14:00", "18:00"),
					"wednesday": day("9:00", "18:00"),
					"friday":    day("9:00", "18:00"),
					"saturday":  day("8:00", "15:00"),
				}),
				DeliveryInfo: mustJSON(map[string]interface{}{
					"methods": []string{"PICKUP", "PICKUP_POINT"},
					"zones": []map[string]interface{}{
						{"name": "Bordeaux et environs", "radius": 20, "price": 4, "estimatedTime": "1-2 jours"},
					},
					"minimumOrder": 15,
				}),
				SocialMedia: mustJSON(map[string]string{
					"website":   "ferme-pierre-fils.com",
					"instagram": "@fermepierre33",
				}),
			},
		},
	}
	for _, shop := range shops {
		if err := s.shops.Create(ctx, shop); err != nil {
			return nil, err
		}
	}
	return shops, nil
}

func (s *Seeder) seedProducts(
	ctx context.Context,
	users []*models.User,
	shops []*models.Shop,
	categories []*models.Category,
	locations []*models.Location,
) error {
	originalPrice := 6.00
	products := []*models.Product{
		{
			ID:            uuid.New(),
			Title:         "Tomates cerises bio",
			Description:   `Tomates cerises cultivées en pleine terre, variété ancienne "Rose de Berne". Goût authentique et sucré.`,
			Price:         4.50,
			OriginalPrice: &originalPrice,
			Currency:      "EUR",
			Image:         "https://images.unsplash.com/photo-1592841200221-a6898f307baa?w=400&h=300&fit=crop",
			Status:        models.ProductStatusActive,
			Quantity:      20,
			Unit:          models.ProductUnitBasket,
			Tags:          []string{"bio", "tomate", "cerise", "local", "lyon"},
			IsOrganic:     true,
			IsFresh:       true,
			SellerID:      users[0].ID,
			ShopID:        &shops[0].ID,
			CategoryID:    categories[0].ID,
			LocationID:    &locations[0].ID,
		},
		{
			ID:          uuid.New(),
			Title:       "Courgettes du jardin",
			Description: "Courgettes fraîches récoltées le matin même. Parfaites pour ratatouilles et gratins.",
			Price:       2.80,
			Currency:    "EUR",
			Image:       "https://images.unsplash.com/photo-1566281796817-93bc94d7dbd2?w=400&h=300&fit=crop",
			Status:      models.ProductStatusActive,
			Quantity:    15,
			Unit:        models.ProductUnitKg,
			Tags:        []string{"bio", "courgette", "local", "frais"},
			IsOrganic:   true,
			IsFresh:     true,
			SellerID:    users[0].ID,
			ShopID:      &shops[0].ID,
			CategoryID:  categories[0].ID,
			LocationID:  &locations[0].ID,
		},
		{
			ID:          uuid.New(),
			Title:       "Pêches de Bordeaux",
			Description: "Pêches juteuses et parfumées, récoltées à parfaite maturité dans nos vergers bordelais.",
			Price:       5.20,
			Currency:    "EUR",
			Image:       "https://images.unsplash.com/photo-1629828874514-e4faa9886eef?w=400&h=300&fit=crop",
			Status:      models.ProductStatusActive,
			Quantity:    10,
			Unit:        models.ProductUnitKg,
			Tags:        []string{"bio", "pêche", "fruit", "bordeaux", "sucré"},
			IsOrganic:   true,
			IsFresh:     true,
			SellerID:    users[1].ID,
			ShopID:      &shops[1].ID,
			CategoryID:  categories[0].ID,
			LocationID:  &locations[1].ID,
		},
	}
	for _, p := range products {
		if err := s.products.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// day builds an opening-hours entry from start/end pairs.
func day(slots ...string) map[string]interface{} {
	entries := make([]map[string]string, 0, len(slots)/2)
	for i := 0; i+1 < len(slots); i += 2 {
		entries = append(entries, map[string]string{"start": slots[i], "end": slots[i+1]})
	}
	return map[string]interface{}{"isOpen": true, "slots": entries}
}
