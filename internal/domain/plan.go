package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is a catalog offering administrators maintain. Subscriptions never
// reference plans; they embed a PlanTerms snapshot taken at purchase time,
// so later catalog edits do not touch issued subscriptions.
type Plan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Duration  int                `bson:"duration" json:"duration"` // whole months
	Price     int64              `bson:"price" json:"price"`       // smallest currency unit
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// PlanTerms is the immutable snapshot of plan terms embedded in a
// subscription.
type PlanTerms struct {
	Name     string `bson:"name" json:"name"`
	Duration int    `bson:"duration" json:"duration"`
	Price    int64  `bson:"price" json:"price"`
}

// Terms snapshots the plan's current terms.
func (p *Plan) Terms() PlanTerms {
	return PlanTerms{Name: p.Name, Duration: p.Duration, Price: p.Price}
}
