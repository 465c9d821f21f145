package mongodb

import (
	"context"
	"fmt"
	"time"

	"carzi/internal/models"
	"carzi/internal/repositories/interfaces"
	"carzi/internal/services"
	"carzi/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type carRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewCarRepository(db *mongo.Database, cache services.CacheService) interfaces.CarRepository {
	return &carRepository{
		collection: db.Collection("cars"),
		cache:      cache,
	}
}

func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	car.ID = primitive.NewObjectID()
	car.CreatedAt = time.Now()
	car.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	r.cacheCar(ctx, car)

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	if car := r.getCarFromCache(ctx, id.Hex()); car != nil {
		return car, nil
	}

	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	r.cacheCar(ctx, &car)

	return &car, nil
}

func (r *carRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrCarNotFound
	}

	r.invalidateCarCache(ctx, id.Hex())

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}
	if result.DeletedCount == 0 {
		return services.ErrCarNotFound
	}

	r.invalidateCarCache(ctx, id.Hex())

	return nil
}

func (r *carRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	filter := bson.M{}

	if params.Search != "" {
		searchFields := []string{"title", "brand", "model", "location"}
		searchFilter := params.GetSearchFilter(searchFields)
		if len(searchFilter) > 0 {
			filter = searchFilter
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, 0, fmt.Errorf("failed to decode car: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, total, nil
}

func (r *carRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Car, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find cars by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, fmt.Errorf("failed to decode car: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, nil
}

func (r *carRepository) GetUnavailable(ctx context.Context) ([]*models.Car, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"available": false})
	if err != nil {
		return nil, fmt.Errorf("failed to find unavailable cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*models.Car
	for cursor.Next(ctx) {
		var car models.Car
		if err := cursor.Decode(&car); err != nil {
			return nil, fmt.Errorf("failed to decode car: %w", err)
		}
		cars = append(cars, &car)
	}

	return cars, nil
}

// Reserve is the availability lock: a single conditional update that only
// matches while the flag is still true. Two concurrent bookings cannot both
// match, so exactly one caller wins.
func (r *carRepository) Reserve(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "available": true},
		bson.M{"$set": bson.M{"available": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to reserve car: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrCarUnavailable
	}

	r.invalidateCarCache(ctx, id.Hex())

	return nil
}

func (r *carRepository) Release(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"available": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to release car: %w", err)
	}

	r.invalidateCarCache(ctx, id.Hex())

	return nil
}

func (r *carRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, reviewCount int64) error {
	return r.Update(ctx, id, map[string]interface{}{
		"rating":       rating,
		"review_count": reviewCount,
	})
}

// Cache operations
func (r *carRepository) cacheCar(ctx context.Context, car *models.Car) {
	if r.cache != nil {
		cacheKey := utils.CacheCarPrefix + car.ID.Hex()
		r.cache.Set(ctx, cacheKey, car, 15*time.Minute)
	}
}

func (r *carRepository) getCarFromCache(ctx context.Context, carID string) *models.Car {
	if r.cache == nil {
		return nil
	}

	var car models.Car
	if err := r.cache.Get(ctx, utils.CacheCarPrefix+carID, &car); err != nil {
		return nil
	}

	return &car
}

func (r *carRepository) invalidateCarCache(ctx context.Context, carID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheCarPrefix+carID)
	}
}
