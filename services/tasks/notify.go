package tasks

import (
	"context"
	"encoding/json"

	"courtbook/config"
	"courtbook/models"

	"github.com/hibiken/asynq"
)

const TypeReservationNotice = "notice:reservation"

// NewReservationNoticeTask builds the queued task for one outbound notice.
func NewReservationNoticeTask(payload models.NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReservationNotice, b), nil
}

// AsynqDispatcher enqueues notices onto the notify queue. The reservation
// that triggered a notice is committed before enqueueing ever happens, so
// an enqueue failure is logged by the caller and nothing else.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher connects a dispatcher to the notify queue Redis DB.
func NewAsynqDispatcher() *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyDB,
	})
	return &AsynqDispatcher{client: client}
}

func (d *AsynqDispatcher) DispatchReservationNotice(ctx context.Context, payload models.NotificationPayload) error {
	task, err := NewReservationNoticeTask(payload)
	if err != nil {
		return err
	}
	_, err = d.client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	return err
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
