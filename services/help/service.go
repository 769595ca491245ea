// File: services/help/service.go
package help

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	helpRepo "github.com/CaptainRedCodes/Saloon-AI-Agent/database/repository/helprequest"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/knowledge"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/services/tasks"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// HelpRequestService manages supervisor escalations: creating pending
// requests, notifying the supervisor and recording resolutions.
type HelpRequestService interface {
	Create(ctx context.Context, payload models.HelpRequestCreate) (string, error)
	GetByID(ctx context.Context, id string) (*models.HelpRequest, error)
	ListPending(ctx context.Context) ([]models.HelpRequest, error)
	Resolve(ctx context.Context, id string, response models.SupervisorResponse) (*models.HelpRequest, error)
}

// DefaultHelpRequestService implements HelpRequestService.
type DefaultHelpRequestService struct {
	Repo        helpRepo.HelpRequestRepository
	Knowledge   knowledge.KnowledgeService
	AsynqClient *asynq.Client
}

// NewHelpRequestService constructs the default service. The asynq client may
// be nil, in which case escalation notifications are skipped.
func NewHelpRequestService(repo helpRepo.HelpRequestRepository, kb knowledge.KnowledgeService, client *asynq.Client) *DefaultHelpRequestService {
	return &DefaultHelpRequestService{Repo: repo, Knowledge: kb, AsynqClient: client}
}

// Create persists a pending help request and enqueues the supervisor
// notification. Notification delivery is best-effort: a queueing failure is
// logged and the request still succeeds.
func (s *DefaultHelpRequestService) Create(ctx context.Context, payload models.HelpRequestCreate) (string, error) {
	logger := utils.GetLogger()
	now := time.Now().UTC()

	req := &models.HelpRequest{
		ID:        uuid.New().String(),
		Question:  payload.Question,
		Status:    models.HelpStatusPending,
		RoomName:  payload.RoomName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return "", err
	}
	logger.Info("Help request created",
		zap.String("id", req.ID), zap.String("question", req.Question))

	s.enqueueEscalation(req)
	return req.ID, nil
}

func (s *DefaultHelpRequestService) enqueueEscalation(req *models.HelpRequest) {
	if s.AsynqClient == nil {
		return
	}
	logger := utils.GetLogger()
	task, opts, err := tasks.NewEscalationTask(models.EscalationPayload{
		RequestID: req.ID,
		Question:  req.Question,
		RoomName:  req.RoomName,
		CreatedAt: req.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to build escalation task", zap.Error(err))
		return
	}
	if _, err := s.AsynqClient.Enqueue(task, opts...); err != nil {
		logger.Error("Failed to enqueue escalation task",
			zap.String("id", req.ID), zap.Error(err))
	}
}

func (s *DefaultHelpRequestService) GetByID(ctx context.Context, id string) (*models.HelpRequest, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultHelpRequestService) ListPending(ctx context.Context) ([]models.HelpRequest, error) {
	return s.Repo.ListPending(ctx)
}

// Resolve records the supervisor's answer and optionally feeds it back into
// the knowledge base so the next caller gets it without escalation.
func (s *DefaultHelpRequestService) Resolve(ctx context.Context, id string, response models.SupervisorResponse) (*models.HelpRequest, error) {
	logger := utils.GetLogger()

	req, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req.Answer = response.Answer
	req.Status = models.HelpStatusResolved
	req.ResolutionNotes = response.ResolutionNotes
	req.ResolvedAt = &now
	req.UpdatedAt = now
	req.ResponseTimeSeconds = now.Sub(req.CreatedAt).Seconds()

	if err := s.Repo.Update(ctx, req); err != nil {
		return nil, err
	}

	if response.AddToKnowledgeBase && s.Knowledge != nil {
		category := response.KBCategory
		if category == "" {
			category = "general"
		}
		if err := s.Knowledge.AddKnowledge(ctx, req.Question, response.Answer, category); err != nil {
			// The resolution stands even if the knowledge base write fails.
			logger.Error("Failed to store resolved Q&A in knowledge base",
				zap.String("id", id), zap.Error(err))
		}
	}

	logger.Info("Help request resolved", zap.String("id", id))
	return req, nil
}
