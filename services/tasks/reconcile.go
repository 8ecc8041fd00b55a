package tasks

import (
	"context"
	"encoding/json"
	"time"

	"sparklewash/models"

	"github.com/hibiken/asynq"
)

const TypeReconcilePayment = "payment:reconcile"

// NewReconcileTask builds the queue task for a charge that was captured
// without a confirmed booking.
func NewReconcileTask(payload models.ReconcilePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReconcilePayment, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.ProcessIn(30 * time.Second),
	}
	return task, opts, nil
}

// AsynqReconciler enqueues reconciliation tasks on the shared queue.
type AsynqReconciler struct {
	Client *asynq.Client
}

func (r *AsynqReconciler) Enqueue(ctx context.Context, payload models.ReconcilePayload) error {
	task, opts, err := NewReconcileTask(payload)
	if err != nil {
		return err
	}
	_, err = r.Client.EnqueueContext(ctx, task, opts...)
	return err
}
