package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability lists working hour slots per weekday, e.g. "09:00-12:00".
type Availability struct {
	Monday    []string `bson:"monday,omitempty" json:"monday,omitempty"`
	Tuesday   []string `bson:"tuesday,omitempty" json:"tuesday,omitempty"`
	Wednesday []string `bson:"wednesday,omitempty" json:"wednesday,omitempty"`
	Thursday  []string `bson:"thursday,omitempty" json:"thursday,omitempty"`
	Friday    []string `bson:"friday,omitempty" json:"friday,omitempty"`
	Saturday  []string `bson:"saturday,omitempty" json:"saturday,omitempty"`
	Sunday    []string `bson:"sunday,omitempty" json:"sunday,omitempty"`
}

// Trainer holds the trainer-side of the roster. The roster is bidirectional:
// every member id in AssignedMembers must belong to a member whose
// AssignedTrainer points back here, and a member appears on at most one
// trainer's roster.
type Trainer struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID   `bson:"userId" json:"userId"`
	Specialization  []string             `bson:"specialization" json:"specialization"`
	Experience      int                  `bson:"experience" json:"experience"` // years
	Certifications  []string             `bson:"certifications" json:"certifications"`
	AssignedMembers []primitive.ObjectID `bson:"assignedMembers" json:"assignedMembers"`
	Availability    Availability         `bson:"availability" json:"availability"`
	JoinDate        time.Time            `bson:"joinDate" json:"joinDate"`
}
