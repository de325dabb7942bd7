package mongo

import (
	"context"
	"errors"
	"time"

	"studiofit/booking-app/internal/domain"
	"studiofit/booking-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const classCollectionName = "classes"

// mongoClassRepository implements repository.ClassRepository
type mongoClassRepository struct {
	collection *mongo.Collection
}

// NewMongoClassRepository creates a new Class repository backed by MongoDB.
func NewMongoClassRepository(db *mongo.Database) repository.ClassRepository {
	return &mongoClassRepository{
		collection: db.Collection(classCollectionName),
	}
}

// Create inserts a new class into the database.
func (r *mongoClassRepository) Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error) {
	if class.Name == "" || class.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("class name and trainer ID are required")
	}

	class.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, class)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a class by its ID.
func (r *mongoClassRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Class, error) {
	var class domain.Class
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&class)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

// GetByTrainerID retrieves all classes run by a specific trainer.
func (r *mongoClassRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Class, error) {
	filter := bson.M{"trainerId": trainerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	return r.find(ctx, filter, findOptions)
}

// GetUpcoming retrieves all classes on or after the given instant,
// sorted ascending by (date, time).
func (r *mongoClassRepository) GetUpcoming(ctx context.Context, from time.Time) ([]domain.Class, error) {
	filter := bson.M{"date": bson.M{"$gte": from}}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	return r.find(ctx, filter, findOptions)
}

func (r *mongoClassRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Class, error) {
	var classes []domain.Class

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// Update modifies an existing class and refreshes the UpdatedAt timestamp.
func (r *mongoClassRepository) Update(ctx context.Context, class *domain.Class) error {
	if class.ID == primitive.NilObjectID {
		return errors.New("class ID is required for update")
	}
	if class.Name == "" {
		return errors.New("class name cannot be empty")
	}

	filter := bson.M{"_id": class.ID}
	update := bson.M{
		"$set": bson.M{
			"name":            class.Name,
			"description":     class.Description,
			"date":            class.Date,
			"time":            class.Time,
			"durationMinutes": class.DurationMinutes,
			"maxParticipants": class.MaxParticipants,
			"trainerId":       class.TrainerID,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a class. The booking-count guard lives in the service layer.
func (r *mongoClassRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureClassIndexes creates necessary indexes for the classes collection.
func EnsureClassIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Index for finding classes by the trainer who runs them
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			// Compound index backing the schedule view's filter and sort
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
