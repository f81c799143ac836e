package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/repository"
)

// productDocument документ товара в MongoDB
type productDocument struct {
	ID            string  `bson:"_id"`
	Name          string  `bson:"name"`
	Description   string  `bson:"description"`
	SkuCode       string  `bson:"sku_code"`
	Category      string  `bson:"category"`
	Brand         string  `bson:"brand"`
	Price         float64 `bson:"price"`
	AverageRating float64 `bson:"average_rating"`
	TotalRatings  int64   `bson:"total_ratings"`
}

func toDocument(p repository.Product) productDocument {
	return productDocument{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		SkuCode:       p.SkuCode,
		Category:      p.Category,
		Brand:         p.Brand,
		Price:         p.Price,
		AverageRating: p.AverageRating,
		TotalRatings:  p.TotalRatings,
	}
}

func fromDocument(d productDocument) repository.Product {
	return repository.Product{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		SkuCode:       d.SkuCode,
		Category:      d.Category,
		Brand:         d.Brand,
		Price:         d.Price,
		AverageRating: d.AverageRating,
		TotalRatings:  d.TotalRatings,
	}
}

// Repository реализация хранилища товаров на MongoDB
type Repository struct {
	collection *mongo.Collection
}

// NewRepository создаёт репозиторий
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("products")}
}

// FindByID возвращает товар по идентификатору
func (r *Repository) FindByID(ctx context.Context, id string) (repository.Product, error) {
	var doc productDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Product{}, repository.ErrNotFound
		}
		return repository.Product{}, fmt.Errorf("find product by id: %w", err)
	}
	return fromDocument(doc), nil
}

// Save сохраняет товар (upsert по идентификатору)
func (r *Repository) Save(ctx context.Context, product repository.Product) error {
	doc := toDocument(product)
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// FindAll возвращает все товары
func (r *Repository) FindAll(ctx context.Context) ([]repository.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all products: %w", err)
	}
	return r.readAll(ctx, cursor)
}

// FindTopRated возвращает товары с рейтингом не ниже minRating
func (r *Repository) FindTopRated(ctx context.Context, minRating float64, limit int) ([]repository.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "average_rating", Value: -1}, {Key: "total_ratings", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"average_rating": bson.M{"$gte": minRating}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find top rated products: %w", err)
	}
	return r.readAll(ctx, cursor)
}

// UpdateRating обновляет денормализованный рейтинг товара
func (r *Repository) UpdateRating(ctx context.Context, productID string, averageRating float64, totalRatings int64) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{
			"average_rating": averageRating,
			"total_ratings":  totalRatings,
		}},
	)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Repository) readAll(ctx context.Context, cursor *mongo.Cursor) ([]repository.Product, error) {
	defer cursor.Close(ctx)

	var out []repository.Product
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product document: %w", err)
		}
		out = append(out, fromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate product cursor: %w", err)
	}
	return out, nil
}
