package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

const movementsCollection = "stock_movements"

// MovementRepository mirrors committed stock movements into MongoDB.
type MovementRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMovementRepository connects and verifies the connection with a ping.
func NewMovementRepository(ctx context.Context, uri string, dbName string) (*MovementRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MovementRepository{
		client:   client,
		dbName:   dbName,
		collName: movementsCollection,
	}
	if err := repo.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return repo, nil
}

// RecordMovements inserts the batch unordered so one duplicate id does not drop the rest.
func (r *MovementRepository) RecordMovements(ctx context.Context, movements []models.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(movements))
	for _, mv := range movements {
		docs = append(docs, mv)
	}

	_, err := r.collection().InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to insert stock movements: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MovementRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MovementRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "item_id", Value: 1}, {Key: "recorded_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create stock movement index: %w", err)
	}
	return nil
}

func (r *MovementRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}
