// Package alerts queues booking notifications off the request path. Actual
// delivery (email, push) is handled elsewhere; handlers here record the
// event and log, so a slow or dead notifier can never fail a booking.
package alerts

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/hibiken/asynq"
)

const TaskBookingRequested = "booking:requested"

type BookingRequestedPayload struct {
	BookingID     string    `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	UserID        string    `json:"user_id"`
	ServiceTitle  string    `json:"service_title"`
	TotalAmount   int64     `json:"total_amount"`
	RequestedAt   time.Time `json:"requested_at"`
}

var (
	client *asynq.Client
	server *asynq.Server
)

// Init starts the Asynq server and initializes a shared client.
func Init() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	opts := asynq.RedisClientOpt{Addr: redisAddr}
	client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskBookingRequested, handleBookingRequested)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"alerts": 5,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Printf("Asynq server stopped: %v", err)
		}
	}()

	log.Printf("Alerts initialized (addr=%s)", redisAddr)
}

// Close releases the client and stops the server.
func Close() {
	if client != nil {
		_ = client.Close()
	}
	if server != nil {
		server.Shutdown()
	}
}

// EnqueueBookingRequested schedules a notification for a new booking.
func EnqueueBookingRequested(bookingID, bookingNumber, userID, serviceTitle string, totalAmount int64) error {
	if client == nil {
		return nil
	}
	payload := BookingRequestedPayload{
		BookingID:     bookingID,
		BookingNumber: bookingNumber,
		UserID:        userID,
		ServiceTitle:  serviceTitle,
		TotalAmount:   totalAmount,
		RequestedAt:   time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskBookingRequested, b)
	if _, err := client.Enqueue(task, asynq.Queue("alerts")); err != nil {
		log.Printf("[alerts] failed to enqueue booking notification for %s: %v", bookingID, err)
		return err
	}
	return nil
}

func handleBookingRequested(_ context.Context, t *asynq.Task) error {
	var p BookingRequestedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	log.Printf("[alerts] booking requested -> number=%s service=%q amount=%d user=%s",
		p.BookingNumber, p.ServiceTitle, p.TotalAmount, p.UserID)
	return nil
}
