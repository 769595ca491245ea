package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

const TypeEscalationNotify = "escalation:notify"

// NewEscalationTask builds the asynq task that delivers a help-request
// notification to the supervisor webhook.
func NewEscalationTask(payload models.EscalationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEscalationNotify, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
