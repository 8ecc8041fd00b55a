// File: database/repository/shop/interface.go
package shopRepo

import (
	"context"

	"sparklewash/database"
	"sparklewash/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, shopID string) (*models.Shop, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]models.Shop, error)
	AddService(ctx context.Context, shopID string, svc models.ShopService) error
}

type mongoShopRepo struct {
	coll *mongo.Collection
}

// NewMongoShopRepo constructs a new MongoDB ShopRepository.
func NewMongoShopRepo() ShopRepository {
	db := database.DB()
	return &mongoShopRepo{
		coll: db.Collection("shops"),
	}
}
