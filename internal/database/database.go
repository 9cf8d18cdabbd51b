package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homehero/internal/config"
	"homehero/internal/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection    = "users"
	ServicesCollection = "services"
	BookingsCollection = "bookings"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
)

// DB wraps the shared client and the three collections the API works with.
// A single DB is created at startup and used by every request.
type DB struct {
	client   *mongo.Client
	db       *mongo.Database
	users    *mongo.Collection
	services *mongo.Collection
	bookings *mongo.Collection
	logger   zerolog.Logger
}

// Connect dials MongoDB with the Stable API v1 and pings the primary.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zerolog.Logger) (*DB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetAppName("homehero")
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := New(client.Database(cfg.Name), logger)
	db.logger.Info().Str("database", cfg.Name).Msg("MongoDB connected")
	return db, nil
}

// New wraps an already connected database handle.
func New(database *mongo.Database, logger *zerolog.Logger) *DB {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "database").Logger()
	}
	return &DB{
		client:   database.Client(),
		db:       database,
		users:    database.Collection(UsersCollection),
		services: database.Collection(ServicesCollection),
		bookings: database.Collection(BookingsCollection),
		logger:   l,
	}
}

// Ping checks that the primary is reachable.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client. Safe on a nil DB.
func (db *DB) Close(ctx context.Context) error {
	if db == nil || db.client == nil {
		return nil
	}
	if err := db.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	db.logger.Info().Msg("MongoDB disconnected")
	return nil
}

// ParseID converts a path segment into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return oid, nil
}

func insertResult(res *mongo.InsertOneResult) *models.InsertResult {
	return &models.InsertResult{
		Acknowledged: true,
		InsertedID:   models.HexID(res.InsertedID),
	}
}

func updateResult(res *mongo.UpdateResult) *models.UpdateResult {
	out := &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		id := models.HexID(res.UpsertedID)
		out.UpsertedID = &id
	}
	return out
}
