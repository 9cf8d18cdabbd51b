package database

import (
	"context"
	"errors"
	"fmt"

	"homehero/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newestFirst orders by creation time; _id breaks ties so limited lists are
// always a prefix of the full one.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (db *DB) CreateService(ctx context.Context, service *models.Service) (*models.InsertResult, error) {
	res, err := db.services.InsertOne(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("failed to insert service: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		service.ID = oid
	}
	return insertResult(res), nil
}

func (db *DB) ListServices(ctx context.Context, limit int64) ([]*models.Service, error) {
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := db.services.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find services: %w", err)
	}
	services := make([]*models.Service, 0)
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (db *DB) GetService(ctx context.Context, id string) (*models.Service, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var service models.Service
	err = db.services.FindOne(ctx, bson.M{"_id": oid}).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return &service, nil
}

func (db *DB) UpdateService(ctx context.Context, id string, fields map[string]any) (*models.UpdateResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	res, err := db.services.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return updateResult(res), nil
}

func (db *DB) DeleteService(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := db.services.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
