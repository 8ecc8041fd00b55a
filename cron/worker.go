package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"sparklewash/config"
	bookingRepo "sparklewash/database/repository/booking"
	"sparklewash/models"
	"sparklewash/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReconcileWorker runs the reconciliation worker in the background.
// It resolves charges that were captured without a confirmed booking:
// if the booking turned up in the meantime the task is dropped,
// otherwise the booking is written from the payment snapshot and left
// pending for support review.
func InitReconcileWorker(bookings bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReconcilePayment, handleReconcileTask(bookings))

	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				time.Sleep(time.Duration(attempts) * 5 * time.Second)
				continue
			}
			return
		}
		log.Println("[ReconcileWorker] giving up after repeated start failures")
	}()
}

func handleReconcileTask(bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload models.ReconcilePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.Printf("[ReconcileWorker] dropping malformed task: %v", err)
			return nil
		}

		existing, err := bookings.GetByOrderID(ctx, payload.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			log.Printf("[ReconcileWorker] order %s already has booking %s, nothing to do",
				payload.OrderID, existing.ID)
			return nil
		}

		payStatus := models.PayStatusPaid
		if payload.RemainingAmount > 0 {
			payStatus = models.PayStatusPartial
		}
		if payload.Reason == "verification_failed" {
			// The charge itself is in doubt; record it unpaid so support
			// checks the gateway before honouring the booking.
			payStatus = models.PayStatusUnpaid
		}

		booking := &models.Booking{
			UserID:          payload.UserID,
			ShopID:          payload.ShopID,
			OrderID:         payload.OrderID,
			PaymentID:       payload.PaymentID,
			ServiceIDs:      payload.ServiceIDs,
			Date:            payload.Date,
			StartTime:       payload.StartTime,
			EndTime:         payload.EndTime,
			FulfillmentMode: payload.FulfillmentMode,
			AmountPaid:      payload.AmountCharged,
			RemainingAmount: payload.RemainingAmount,
			PaymentStatus:   payStatus,
			BookingStatus:   models.BookingPending,
		}
		if err := bookings.Create(ctx, booking); err != nil {
			return err
		}

		log.Printf("[ReconcileWorker] recorded pending booking %s for order %s payment %s (%s)",
			booking.ID, payload.OrderID, payload.PaymentID, payload.Reason)
		return nil
	}
}
