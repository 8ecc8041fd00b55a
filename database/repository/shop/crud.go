// File: database/repository/shop/crud.go
package shopRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sparklewash/models"
)

func (r *mongoShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}
	shop.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, shop)
	return err
}

func (r *mongoShopRepo) GetByID(ctx context.Context, shopID string) (*models.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shop models.Shop
	if err := r.coll.FindOne(ctx, bson.M{"id": shopID}).Decode(&shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *mongoShopRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]models.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *mongoShopRepo) AddService(ctx context.Context, shopID string, svc models.ShopService) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": shopID},
		bson.M{"$push": bson.M{"services": svc}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
