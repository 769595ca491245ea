package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/config"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/tasks"
)

// InitEscalationWorker runs the async worker that delivers supervisor
// notifications in the background.
func InitEscalationWorker() {
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
	mux.HandleFunc(tasks.TypeEscalationNotify, handleEscalationTask)

	go func() {
		log.Println("[EscalationWorker] Starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[EscalationWorker] Worker stopped: %v", err)
		}
	}()
}

// handleEscalationTask POSTs the help request to the supervisor webhook.
// Delivery is best-effort by contract: a missing webhook URL drops the task,
// a failed delivery returns an error so asynq retries it.
func handleEscalationTask(ctx context.Context, task *asynq.Task) error {
	var p models.EscalationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[EscalationWorker] Invalid payload: %v", err)
		return err
	}

	webhookURL := config.AppConfig.SupervisorWebhookURL
	if webhookURL == "" {
		log.Printf("[EscalationWorker] No supervisor webhook configured, dropping notification for %s", p.RequestID)
		return nil
	}

	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("[EscalationWorker] Failed to deliver notification for %s: %v", p.RequestID, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("[EscalationWorker] Supervisor webhook returned %d for %s", resp.StatusCode, p.RequestID)
		return fmt.Errorf("supervisor webhook returned status %d", resp.StatusCode)
	}

	log.Printf("[EscalationWorker] Notified supervisor for help request %s", p.RequestID)
	return nil
}
