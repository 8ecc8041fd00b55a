package shop

import (
	"context"
	"fmt"

	"sparklewash/models"
)

func (s *DefaultShopService) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	shop, err := s.Shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop %s: %w", shopID, err)
	}
	return shop, nil
}

// GetShopServices returns the services the shop offers for the given
// vehicle category; an empty vehicle returns the full catalog.
func (s *DefaultShopService) GetShopServices(ctx context.Context, shopID, vehicle string) ([]models.ShopService, error) {
	shop, err := s.Shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop %s: %w", shopID, err)
	}
	if vehicle == "" {
		return shop.Services, nil
	}
	return shop.ServicesFor(vehicle), nil
}
