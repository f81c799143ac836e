package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/repository"
)

// inventoryDocument документ остатка в MongoDB
type inventoryDocument struct {
	SkuCode  string `bson:"sku_code"`
	Quantity int64  `bson:"quantity"`
}

// Repository реализация хранилища остатков на MongoDB
type Repository struct {
	collection *mongo.Collection
}

// NewRepository создаёт репозиторий и уникальный индекс по артикулу
func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	collection := db.Collection("inventory")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sku_code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create sku_code index: %w", err)
	}

	return &Repository{collection: collection}, nil
}

// FindBySku возвращает остаток по артикулу
func (r *Repository) FindBySku(ctx context.Context, skuCode string) (repository.Inventory, error) {
	var doc inventoryDocument
	err := r.collection.FindOne(ctx, bson.M{"sku_code": skuCode}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Inventory{}, repository.ErrNotFound
		}
		return repository.Inventory{}, fmt.Errorf("find inventory by sku: %w", err)
	}
	return repository.Inventory{SkuCode: doc.SkuCode, Quantity: doc.Quantity}, nil
}

// Save сохраняет остаток (upsert по артикулу)
func (r *Repository) Save(ctx context.Context, inv repository.Inventory) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"sku_code": inv.SkuCode},
		bson.M{"$set": bson.M{"quantity": inv.Quantity}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// FindAll возвращает все остатки
func (r *Repository) FindAll(ctx context.Context) ([]repository.Inventory, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var out []repository.Inventory
	for cursor.Next(ctx) {
		var doc inventoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode inventory document: %w", err)
		}
		out = append(out, repository.Inventory{SkuCode: doc.SkuCode, Quantity: doc.Quantity})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory cursor: %w", err)
	}
	return out, nil
}
