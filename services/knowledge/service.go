// File: services/knowledge/service.go
package knowledge

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	knowledgeRepo "github.com/CaptainRedCodes/Saloon-AI-Agent/database/repository/knowledge"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
	"github.com/CaptainRedCodes/Saloon-AI-Agent/utils"
)

// KnowledgeService answers FAQ-style questions by semantic similarity over
// the stored knowledge base.
type KnowledgeService interface {
	// Sync embeds and upserts the seed FAQ entries.
	Sync(ctx context.Context, faqs []models.FAQEntry) error
	// Search returns the best entry scoring at or above threshold, or nil.
	Search(ctx context.Context, query string, threshold float64) (*models.KnowledgeHit, error)
	// AddKnowledge stores one new question/answer pair.
	AddKnowledge(ctx context.Context, question, answer, category string) error
}

// DefaultKnowledgeService implements KnowledgeService.
type DefaultKnowledgeService struct {
	Repo     knowledgeRepo.KnowledgeRepository
	Embedder Embedder
}

// NewKnowledgeService constructs the default service.
func NewKnowledgeService(repo knowledgeRepo.KnowledgeRepository, embedder Embedder) *DefaultKnowledgeService {
	return &DefaultKnowledgeService{Repo: repo, Embedder: embedder}
}

func (s *DefaultKnowledgeService) Sync(ctx context.Context, faqs []models.FAQEntry) error {
	logger := utils.GetLogger()
	synced := 0
	for _, faq := range faqs {
		if faq.Question == "" || faq.Answer == "" {
			logger.Warn("Skipping FAQ entry with missing question or answer")
			continue
		}
		vector, err := s.Embedder.Embed(ctx, faq.Question)
		if err != nil {
			return err
		}
		entry := &models.KnowledgeEntry{
			ID:        uuid.New().String(),
			Question:  faq.Question,
			Answer:    faq.Answer,
			Category:  "faq",
			Source:    "local",
			Vector:    vector,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Repo.Upsert(ctx, entry); err != nil {
			return err
		}
		synced++
	}
	logger.Info("Synced FAQs to knowledge base", zap.Int("count", synced))
	return nil
}

func (s *DefaultKnowledgeService) Search(ctx context.Context, query string, threshold float64) (*models.KnowledgeHit, error) {
	queryVector, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	entries, err := s.Repo.All(ctx)
	if err != nil {
		return nil, err
	}

	var best *models.KnowledgeHit
	for _, entry := range entries {
		score := cosineSimilarity(queryVector, entry.Vector)
		if best == nil || score > best.Score {
			best = &models.KnowledgeHit{
				Question: entry.Question,
				Answer:   entry.Answer,
				Score:    score,
			}
		}
	}

	if best == nil || best.Score < threshold {
		return nil, nil
	}
	return best, nil
}

func (s *DefaultKnowledgeService) AddKnowledge(ctx context.Context, question, answer, category string) error {
	vector, err := s.Embedder.Embed(ctx, question)
	if err != nil {
		return err
	}
	entry := &models.KnowledgeEntry{
		ID:        uuid.New().String(),
		Question:  question,
		Answer:    answer,
		Category:  category,
		Source:    "supervisor_resolved",
		Vector:    vector,
		CreatedAt: time.Now().UTC(),
	}
	return s.Repo.Upsert(ctx, entry)
}

// cosineSimilarity computes the cosine similarity of two vectors. Mismatched
// or zero-length vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
