package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender enum for member personal info
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PersonalInfo holds optional fitness profile attributes of a member.
type PersonalInfo struct {
	Height            *float64 `bson:"height,omitempty" json:"height,omitempty"` // cm
	Weight            *float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Age               *int     `bson:"age,omitempty" json:"age,omitempty"`
	Gender            Gender   `bson:"gender,omitempty" json:"gender,omitempty"`
	Goal              string   `bson:"goal,omitempty" json:"goal,omitempty"`
	MedicalConditions string   `bson:"medicalConditions,omitempty" json:"medicalConditions,omitempty"`
}

// Member is the aggregate the subscription lifecycle mutates. The pair
// CurrentSubscription/SubscriptionHistory is the unit of consistency:
// the current pointer never appears in history, and history holds each
// past subscription id exactly once.
type Member struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID   `bson:"userId" json:"userId"` // Unique
	PersonalInfo        PersonalInfo         `bson:"personalInfo" json:"personalInfo"`
	AssignedTrainer     *primitive.ObjectID  `bson:"assignedTrainer,omitempty" json:"assignedTrainer,omitempty"`
	CurrentSubscription *primitive.ObjectID  `bson:"currentSubscription,omitempty" json:"currentSubscription,omitempty"`
	SubscriptionHistory []primitive.ObjectID `bson:"subscriptionHistory" json:"subscriptionHistory"`
	JoinDate            time.Time            `bson:"joinDate" json:"joinDate"`
	// Version is bumped on every aggregate write; subscription purchase uses
	// it as an optimistic concurrency token when swapping the current pointer.
	Version int64 `bson:"version" json:"-"`
}

// HasCurrentSubscription reports whether the member currently points at a
// subscription.
func (m *Member) HasCurrentSubscription() bool {
	return m.CurrentSubscription != nil && *m.CurrentSubscription != primitive.NilObjectID
}
