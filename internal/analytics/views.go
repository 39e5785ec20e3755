// Package analytics carries non-critical counters off the request path.
// Delivery is best effort: lost increments are acceptable, a failed
// increment must never fail the request that triggered it.
package analytics

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/hibiken/asynq"

	"github.com/axelignis/adventure/internal/db"
)

const TaskServiceView = "service:view"

type ServiceViewPayload struct {
	ServiceID string `json:"service_id"`
}

var (
	client *asynq.Client
	server *asynq.Server
)

// Init starts the Asynq server and initializes a shared client.
func Init() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		if host := os.Getenv("REDIS_HOST"); host != "" {
			port := os.Getenv("REDIS_PORT")
			if port == "" {
				port = "6379"
			}
			redisAddr = host + ":" + port
		} else {
			redisAddr = "127.0.0.1:6379"
		}
	}

	opts := asynq.RedisClientOpt{Addr: redisAddr}
	client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskServiceView, handleServiceView)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"analytics": 5,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Printf("Asynq server stopped: %v", err)
		}
	}()

	log.Printf("Analytics initialized (addr=%s)", redisAddr)
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

// CountView enqueues a view-count increment. Failures are logged and
// swallowed; callers never wait on or see them.
func CountView(serviceID string) {
	if client == nil {
		return
	}
	payload, _ := json.Marshal(ServiceViewPayload{ServiceID: serviceID})
	task := asynq.NewTask(TaskServiceView, payload)
	if _, err := client.Enqueue(task, asynq.Queue("analytics")); err != nil {
		log.Printf("[analytics] failed to enqueue view count for %s: %v", serviceID, err)
	}
}

// handleServiceView applies the increment. No atomicity beyond the single
// UPDATE is needed; a lost update under race is tolerated.
func handleServiceView(ctx context.Context, t *asynq.Task) error {
	var p ServiceViewPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if _, err := db.Conn.Exec(ctx,
		`UPDATE services SET view_count = view_count + 1 WHERE id = $1`, p.ServiceID,
	); err != nil {
		log.Printf("[analytics] view count update failed for %s: %v", p.ServiceID, err)
	}
	return nil
}
