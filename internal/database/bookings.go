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

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) (*models.InsertResult, error) {
	res, err := db.bookings.InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return insertResult(res), nil
}

func (db *DB) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return db.findBookings(ctx, bson.M{})
}

// ListBookingsByUser returns the bookings made with this email, newest first.
func (db *DB) ListBookingsByUser(ctx context.Context, email string) ([]*models.Booking, error) {
	return db.findBookings(ctx, bson.M{"userEmail": email})
}

func (db *DB) findBookings(ctx context.Context, filter bson.M) ([]*models.Booking, error) {
	cursor, err := db.bookings.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	bookings := make([]*models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var booking models.Booking
	err = db.bookings.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (db *DB) UpdateBooking(ctx context.Context, id string, fields map[string]any) (*models.UpdateResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	res, err := db.bookings.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return updateResult(res), nil
}

func (db *DB) DeleteBooking(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := db.bookings.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
