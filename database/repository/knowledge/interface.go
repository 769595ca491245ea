// File: database/repository/knowledge/interface.go
package knowledgeRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

// KnowledgeRepository stores FAQ entries with their embedding vectors.
type KnowledgeRepository interface {
	// Upsert inserts or replaces an entry keyed by question text.
	Upsert(ctx context.Context, entry *models.KnowledgeEntry) error
	// All returns every stored entry, vectors included.
	All(ctx context.Context) ([]models.KnowledgeEntry, error)
}

type mongoKnowledgeRepo struct {
	coll *mongo.Collection
}

// NewMongoKnowledgeRepo constructs a MongoDB KnowledgeRepository on the given
// database handle.
func NewMongoKnowledgeRepo(db *mongo.Database) KnowledgeRepository {
	return &mongoKnowledgeRepo{
		coll: db.Collection("knowledge_base"),
	}
}
