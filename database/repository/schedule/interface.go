// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"sparklewash/database"
	"sparklewash/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository stores the free-time ranges shops publish per date.
type ScheduleRepository interface {
	Upsert(ctx context.Context, schedule *models.Schedule) error
	GetByShopIDAndDate(ctx context.Context, shopID, date string) (*models.Schedule, error)
	DeleteRange(ctx context.Context, shopID, date, rangeID string) error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.DB()
	return &mongoScheduleRepo{
		coll: db.Collection("schedules"),
	}
}
