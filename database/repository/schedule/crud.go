// File: database/repository/schedule/crud.go
package scheduleRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sparklewash/models"
)

func (r *mongoScheduleRepo) Upsert(ctx context.Context, schedule *models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for i := range schedule.FreeRanges {
		if schedule.FreeRanges[i].ID == "" {
			schedule.FreeRanges[i].ID = uuid.New().String()
		}
	}

	filter := bson.M{"shopId": schedule.ShopID, "date": schedule.Date}
	update := bson.M{"$set": bson.M{"freeRanges": schedule.FreeRanges}}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *mongoScheduleRepo) GetByShopIDAndDate(ctx context.Context, shopID, date string) (*models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "date": date}
	var schedule models.Schedule
	err := r.coll.FindOne(ctx, filter).Decode(&schedule)
	if err == mongo.ErrNoDocuments {
		// Absence of a published schedule is not an error for callers;
		// they fall back to the default slot grid.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *mongoScheduleRepo) DeleteRange(ctx context.Context, shopID, date, rangeID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "date": date}
	update := bson.M{"$pull": bson.M{"freeRanges": bson.M{"id": rangeID}}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
