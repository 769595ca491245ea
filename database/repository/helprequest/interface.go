// File: database/repository/helprequest/interface.go
package helpRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CaptainRedCodes/Saloon-AI-Agent/models"
)

// HelpRequestRepository defines storage for supervisor escalations.
type HelpRequestRepository interface {
	Create(ctx context.Context, req *models.HelpRequest) error
	GetByID(ctx context.Context, id string) (*models.HelpRequest, error)
	ListPending(ctx context.Context) ([]models.HelpRequest, error)
	Update(ctx context.Context, req *models.HelpRequest) error
}

type mongoHelpRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoHelpRequestRepo constructs a MongoDB HelpRequestRepository on the
// given database handle.
func NewMongoHelpRequestRepo(db *mongo.Database) HelpRequestRepository {
	return &mongoHelpRequestRepo{
		coll: db.Collection("help_requests"),
	}
}
