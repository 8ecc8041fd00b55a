package shop

import (
	"context"
	"fmt"

	"sparklewash/models"
	"sparklewash/services/booking"
)

// PublishSchedule validates and stores the owner's free ranges for a
// date. Capacity must be between 1 and 99 when set, and each range must
// be a well-formed, forward-running HH:MM interval.
func (s *DefaultShopService) PublishSchedule(ctx context.Context, ownerID string, schedule *models.Schedule) error {
	if err := s.authorizeOwner(ctx, ownerID, schedule.ShopID); err != nil {
		return err
	}
	for _, fr := range schedule.FreeRanges {
		from, err := booking.ParseClock(fr.From)
		if err != nil {
			return fmt.Errorf("invalid range start: %w", err)
		}
		to, err := booking.ParseClock(fr.To)
		if err != nil {
			return fmt.Errorf("invalid range end: %w", err)
		}
		if to <= from {
			return fmt.Errorf("range %s-%s does not run forward", fr.From, fr.To)
		}
		if fr.Capacity != nil && (*fr.Capacity < 1 || *fr.Capacity > 99) {
			return fmt.Errorf("capacity %d out of range (1-99)", *fr.Capacity)
		}
	}
	return s.Schedules.Upsert(ctx, schedule)
}

func (s *DefaultShopService) GetSchedule(ctx context.Context, shopID, date string) (*models.Schedule, error) {
	return s.Schedules.GetByShopIDAndDate(ctx, shopID, date)
}

func (s *DefaultShopService) DeleteRange(ctx context.Context, ownerID, shopID, date, rangeID string) error {
	if err := s.authorizeOwner(ctx, ownerID, shopID); err != nil {
		return err
	}
	return s.Schedules.DeleteRange(ctx, shopID, date, rangeID)
}

func (s *DefaultShopService) authorizeOwner(ctx context.Context, ownerID, shopID string) error {
	shop, err := s.Shops.GetByID(ctx, shopID)
	if err != nil {
		return fmt.Errorf("failed to fetch shop %s: %w", shopID, err)
	}
	if shop.OwnerID != ownerID {
		return fmt.Errorf("user %s does not own shop %s", ownerID, shopID)
	}
	return nil
}
