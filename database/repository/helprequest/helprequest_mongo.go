// File: database/repository/helprequest/helprequest_mongo.go
package helpRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

func (r *mongoHelpRequestRepo) Create(ctx context.Context, req *models.HelpRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert help request: %w", err)
	}
	return nil
}

func (r *mongoHelpRequestRepo) GetByID(ctx context.Context, id string) (*models.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.HelpRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, fmt.Errorf("error fetching help request %s: %w", id, err)
	}
	return &req, nil
}

func (r *mongoHelpRequestRepo) ListPending(ctx context.Context) ([]models.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"status": models.HelpStatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching pending help requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.HelpRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error decoding pending help requests: %w", err)
	}
	return requests, nil
}

func (r *mongoHelpRequestRepo) Update(ctx context.Context, req *models.HelpRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("failed to update help request %s: %w", req.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
