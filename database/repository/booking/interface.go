// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"sparklewash/database"
	"sparklewash/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	// CountActiveForSlot counts non-cancelled bookings holding the given
	// shop/date/start slot; the capacity check at booking time uses it.
	CountActiveForSlot(ctx context.Context, shopID, date, startTime string) (int64, error)
	CountActiveByShopAndDate(ctx context.Context, shopID, date string) (map[string]int64, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
