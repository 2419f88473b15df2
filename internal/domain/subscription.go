package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionStatus type for the subscription lifecycle
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is one issued subscription instance. Plan terms are embedded,
// not referenced. PaymentID is set once at creation and never changes.
type Subscription struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MemberID  primitive.ObjectID  `bson:"memberId" json:"memberId"`
	Plan      PlanTerms           `bson:"plan" json:"plan"`
	StartDate time.Time           `bson:"startDate" json:"startDate"`
	EndDate   time.Time           `bson:"endDate" json:"endDate"` // strictly after StartDate
	Status    SubscriptionStatus  `bson:"status" json:"status"`
	PaymentID *primitive.ObjectID `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// CanTransitionTo reports whether moving from the subscription's current
// status to target is a legal lifecycle transition. Expired and cancelled
// are terminal. Expiry is only ever driven by the sweeper, but it is still a
// legal edge from active here so the sweeper and the table agree.
func (s *Subscription) CanTransitionTo(target SubscriptionStatus) bool {
	switch s.Status {
	case SubscriptionActive:
		return target == SubscriptionPaused || target == SubscriptionCancelled || target == SubscriptionExpired
	case SubscriptionPaused:
		return target == SubscriptionActive || target == SubscriptionCancelled
	default:
		return false
	}
}

// IsTerminal reports whether the subscription can never change status again.
func (s *Subscription) IsTerminal() bool {
	return s.Status == SubscriptionExpired || s.Status == SubscriptionCancelled
}
