package database

import (
	"context"
	"errors"
	"fmt"

	"homehero/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertUser sets the given fields on the user with this email, creating it if needed.
func (db *DB) UpsertUser(ctx context.Context, email string, fields map[string]any) (*models.UpdateResult, error) {
	res, err := db.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return updateResult(res), nil
}

func (db *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	cursor, err := db.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	users := make([]*models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (db *DB) GetUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := db.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
