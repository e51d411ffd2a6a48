package store

import (
	"context"
	"errors"
	"time"

	"spotfix-admin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps issues in a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoStore wraps the given issues collection.
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection, now: time.Now}
}

// newestFirst is the sort used by the dashboard list.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

func (s *MongoStore) List(ctx context.Context) ([]models.Issue, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, &RetrievalError{Err: err}
	}
	return issues, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.Issue, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &RetrievalError{ID: id, Err: ErrNotFound}
	}

	var issue models.Issue
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &RetrievalError{ID: id, Err: ErrNotFound}
		}
		return nil, &RetrievalError{ID: id, Err: err}
	}
	return &issue, nil
}

func (s *MongoStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &UpdateError{ID: id, Status: status, Err: ErrNotFound}
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": s.now(),
	}}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return &UpdateError{ID: id, Status: status, Err: err}
	}
	if result.MatchedCount == 0 {
		return &UpdateError{ID: id, Status: status, Err: ErrNotFound}
	}
	return nil
}

// EnsureIndexes creates the created_at index backing the list sort.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	}

	_, err := s.collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
