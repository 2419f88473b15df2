package repository

import (
	"context"
	"time"

	"gym-management-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound        = RepositoryError("not found")
	ErrDuplicate       = RepositoryError("duplicate key")
	ErrUpdateFailed    = RepositoryError("update failed")
	ErrDeleteFailed    = RepositoryError("delete failed")
	ErrVersionConflict = RepositoryError("version conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.Profile) error
	SetAvatar(ctx context.Context, id primitive.ObjectID, objectKey string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MemberRepository defines the interface for interacting with member data.
// The member document is the consistency unit for the subscription pointers;
// every write method bumps the aggregate version.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	UpdatePersonalInfo(ctx context.Context, id primitive.ObjectID, info domain.PersonalInfo) error
	SetTrainer(ctx context.Context, id primitive.ObjectID, trainerID *primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// SwapCurrentSubscription sets the current subscription pointer to newID
	// and, when prevID is non-nil, appends it to the history in the same
	// update. The write is conditional on the aggregate version read by the
	// caller; ErrVersionConflict signals a concurrent writer won.
	SwapCurrentSubscription(ctx context.Context, id primitive.ObjectID, version int64, newID primitive.ObjectID, prevID *primitive.ObjectID) error

	// RemoveSubscriptionRefs drops subID from both the current pointer (if it
	// is the current one) and the history list. Used by subscription deletion
	// to prevent dangling references.
	RemoveSubscriptionRefs(ctx context.Context, id, subID primitive.ObjectID) error
}

// TrainerRepository defines the interface for interacting with trainer data.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Trainer, error)
	List(ctx context.Context) ([]domain.Trainer, error)
	AddMemberToRoster(ctx context.Context, trainerID, memberID primitive.ObjectID) error
	RemoveMemberFromRoster(ctx context.Context, trainerID, memberID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PlanRepository defines the interface for the plan catalog.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CreateMany(ctx context.Context, plans []domain.Plan) error
}

// SubscriptionRepository defines the interface for the subscription ledger.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Subscription, error)
	// GetByIDAndMember scopes the lookup by owner; member-facing mutations go
	// through this so a member can never act on another member's record.
	GetByIDAndMember(ctx context.Context, id, memberID primitive.ObjectID) (*domain.Subscription, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Subscription, error)
	List(ctx context.Context) ([]domain.Subscription, error)
	// TransitionStatus updates the status only when the stored status still
	// equals from, so a stale actor cannot clobber a concurrent transition.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to domain.SubscriptionStatus) error
	// ExpireDue bulk-moves every active subscription whose end date is before
	// now to expired and returns how many were transitioned.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PaymentRepository defines the interface for the payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	SetSubscriptionID(ctx context.Context, id, subscriptionID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ScheduleRepository defines the interface for workout schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Schedule, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Schedule, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Schedule, error)
	Update(ctx context.Context, schedule *domain.Schedule) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
