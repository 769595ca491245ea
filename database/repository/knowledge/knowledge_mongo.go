// File: database/repository/knowledge/knowledge_mongo.go
package knowledgeRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

func (r *mongoKnowledgeRepo) Upsert(ctx context.Context, entry *models.KnowledgeEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"question": entry.Question}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, entry, opts); err != nil {
		return fmt.Errorf("failed to upsert knowledge entry: %w", err)
	}
	return nil
}

func (r *mongoKnowledgeRepo) All(ctx context.Context) ([]models.KnowledgeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching knowledge entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.KnowledgeEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding knowledge entries: %w", err)
	}
	return entries, nil
}
