package mongo

import (
	"context"
	"errors"
	"time"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const memberCollectionName = "members"

// mongoMemberRepository implements repository.MemberRepository
type mongoMemberRepository struct {
	collection *mongo.Collection
}

// NewMongoMemberRepository creates a new Member repository backed by MongoDB.
func NewMongoMemberRepository(db *mongo.Database) repository.MemberRepository {
	return &mongoMemberRepository{
		collection: db.Collection(memberCollectionName),
	}
}

// Create inserts a new member document.
func (r *mongoMemberRepository) Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	if member.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("member user ID is required")
	}

	member.ID = primitive.NewObjectID()
	if member.JoinDate.IsZero() {
		member.JoinDate = time.Now().UTC()
	}
	if member.SubscriptionHistory == nil {
		member.SubscriptionHistory = []primitive.ObjectID{}
	}
	member.Version = 0

	result, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a member by ID.
func (r *mongoMemberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	var member domain.Member
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetByUserID retrieves the member profile belonging to a user identity.
func (r *mongoMemberRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Member, error) {
	var member domain.Member
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// List returns all members, newest joiners first.
func (r *mongoMemberRepository) List(ctx context.Context) ([]domain.Member, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "joinDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, cursor.Err()
}

// UpdatePersonalInfo replaces the member's personal info block.
func (r *mongoMemberRepository) UpdatePersonalInfo(ctx context.Context, id primitive.ObjectID, info domain.PersonalInfo) error {
	update := bson.M{
		"$set": bson.M{"personalInfo": info},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetTrainer points the member at a trainer, or clears the pointer when
// trainerID is nil. Roster maintenance on the trainer side is the service's
// job.
func (r *mongoMemberRepository) SetTrainer(ctx context.Context, id primitive.ObjectID, trainerID *primitive.ObjectID) error {
	var update bson.M
	if trainerID == nil {
		update = bson.M{
			"$unset": bson.M{"assignedTrainer": ""},
			"$inc":   bson.M{"version": 1},
		}
	} else {
		update = bson.M{
			"$set": bson.M{"assignedTrainer": *trainerID},
			"$inc": bson.M{"version": 1},
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a member document.
func (r *mongoMemberRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SwapCurrentSubscription performs the version-checked pointer swap at the
// heart of the purchase transaction. The filter carries the version the
// caller read; losing the race surfaces as ErrVersionConflict so the caller
// can re-read and retry.
func (r *mongoMemberRepository) SwapCurrentSubscription(ctx context.Context, id primitive.ObjectID, version int64, newID primitive.ObjectID, prevID *primitive.ObjectID) error {
	filter := bson.M{"_id": id, "version": version}
	update := bson.M{
		"$set": bson.M{"currentSubscription": newID},
		"$inc": bson.M{"version": 1},
	}
	if prevID != nil {
		// $addToSet keeps the "exactly once in history" invariant even if a
		// retry replays the same append.
		update["$addToSet"] = bson.M{"subscriptionHistory": *prevID}
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrVersionConflict
	}
	return nil
}

// RemoveSubscriptionRefs drops every reference to subID from the aggregate:
// the history entry unconditionally, the current pointer only when it still
// points at subID.
func (r *mongoMemberRepository) RemoveSubscriptionRefs(ctx context.Context, id, subID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"subscriptionHistory": subID},
		"$inc":  bson.M{"version": 1},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	// Second update is a no-op unless the deleted subscription is current.
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "currentSubscription": subID},
		bson.M{
			"$unset": bson.M{"currentSubscription": ""},
			"$inc":   bson.M{"version": 1},
		})
	return err
}

// EnsureMemberIndexes creates necessary indexes for the members collection.
func EnsureMemberIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "assignedTrainer", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
