package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driftboard/driftboard-backend/models"
)

// StrokeStore persists whiteboard strokes for board replay.
type StrokeStore interface {
	Append(ctx context.Context, strokes []models.Stroke) error
	List(ctx context.Context, projectID string) ([]models.Stroke, error)
}

// MongoStrokeStore keeps strokes as documents in a MongoDB collection,
// one document per stroke, replayed in insertion order.
type MongoStrokeStore struct {
	collection *mongo.Collection
}

func NewMongoStrokeStore(client *mongo.Client) *MongoStrokeStore {
	return &MongoStrokeStore{
		collection: client.Database("driftboard").Collection("strokes"),
	}
}

func (s *MongoStrokeStore) Append(ctx context.Context, strokes []models.Stroke) error {
	if len(strokes) == 0 {
		return nil
	}
	docs := make([]interface{}, len(strokes))
	for i, stroke := range strokes {
		docs[i] = stroke
	}
	_, err := s.collection.InsertMany(ctx, docs)
	return err
}

func (s *MongoStrokeStore) List(ctx context.Context, projectID string) ([]models.Stroke, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var strokes []models.Stroke
	if err := cursor.All(ctx, &strokes); err != nil {
		return nil, err
	}
	return strokes, nil
}
