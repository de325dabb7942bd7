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

const bookingCollectionName = "bookings"

// mongoBookingRepository implements repository.BookingRepository
type mongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new Booking repository backed by MongoDB.
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	return &mongoBookingRepository{
		collection: db.Collection(bookingCollectionName),
	}
}

// Create inserts a new booking into the database.
func (r *mongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) (primitive.ObjectID, error) {
	if booking.ClassID == primitive.NilObjectID || booking.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("booking requires classId and userId")
	}

	booking.ID = primitive.NewObjectID()
	booking.BookedAt = time.Now().UTC()
	if booking.Status == "" {
		booking.Status = domain.BookingBooked
	}

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		// The unique (userId, classId) index is the authoritative duplicate
		// guard; two concurrent requests can both pass the service-layer
		// check but only one insert will commit.
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted booking ID")
	}

	return insertedID, nil
}

// GetByUserAndClass retrieves the booking for a (user, class) pair, if any.
func (r *mongoBookingRepository) GetByUserAndClass(ctx context.Context, userID, classID primitive.ObjectID) (*domain.Booking, error) {
	var booking domain.Booking
	filter := bson.M{"userId": userID, "classId": classID}

	err := r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// GetByUserID retrieves all bookings made by a specific user.
func (r *mongoBookingRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Booking, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "bookedAt", Value: -1}})
	return r.find(ctx, filter, findOptions)
}

// GetByClassIDs retrieves all bookings referencing any of the given classes.
func (r *mongoBookingRepository) GetByClassIDs(ctx context.Context, classIDs []primitive.ObjectID) ([]domain.Booking, error) {
	if len(classIDs) == 0 {
		return []domain.Booking{}, nil
	}
	filter := bson.M{"classId": bson.M{"$in": classIDs}}
	return r.find(ctx, filter, nil)
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Booking, error) {
	var bookings []domain.Booking

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

// CountByClassID returns the number of bookings referencing a class.
// Used by the class-delete guard.
func (r *mongoBookingRepository) CountByClassID(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"classId": classID})
}

// EnsureBookingIndexes creates necessary indexes for the bookings collection.
func EnsureBookingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One booking per (user, class) pair
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "classId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Index for the class-delete guard and trainer roster lookups
			Keys:    bson.D{{Key: "classId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
