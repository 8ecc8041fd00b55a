package shop

import (
	"context"

	scheduleRepo "sparklewash/database/repository/schedule"
	shopRepo "sparklewash/database/repository/shop"
	"sparklewash/models"
)

// ShopService exposes the shop catalog and the owner-side schedule
// management the booking flow reads from.
type ShopService interface {
	GetShop(ctx context.Context, shopID string) (*models.Shop, error)
	GetShopServices(ctx context.Context, shopID, vehicle string) ([]models.ShopService, error)
	PublishSchedule(ctx context.Context, ownerID string, schedule *models.Schedule) error
	GetSchedule(ctx context.Context, shopID, date string) (*models.Schedule, error)
	DeleteRange(ctx context.Context, ownerID, shopID, date, rangeID string) error
}

// DefaultShopService implements ShopService.
type DefaultShopService struct {
	Shops     shopRepo.ShopRepository
	Schedules scheduleRepo.ScheduleRepository
}
