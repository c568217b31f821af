package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"courtbook/config"
	"courtbook/models"
	"courtbook/services/notification"
	"courtbook/services/tasks"

	"github.com/hibiken/asynq"
)

// InitNotifyWorker runs the async notice worker in background.
func InitNotifyWorker(sender notification.Sender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReservationNotice, handleNoticeTask(sender))

	// Start async worker with retry logic
	go func() {
		log.Println("[NotifyWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotifyWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotifyWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleNoticeTask(sender notification.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NoticeHandler] invalid payload: %v", err)
			return err
		}

		if err := sender.Send(ctx, p.Recipient, p.Text); err != nil {
			// Returning the error lets asynq retry; the reservation itself
			// was committed long before this point.
			log.Printf("[NoticeHandler] failed to send notice for reservation %s: %v", p.ReservationID, err)
			return err
		}
		return nil
	}
}
