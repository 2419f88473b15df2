package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoutineExercise is one exercise entry inside a daily routine.
type RoutineExercise struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	Reps int    `bson:"reps" json:"reps"`
	Rest string `bson:"rest,omitempty" json:"rest,omitempty"` // e.g. "90s"
}

// Routine groups the exercises planned for one day of the week.
type Routine struct {
	Day       string            `bson:"day" json:"day"`
	Exercises []RoutineExercise `bson:"exercises" json:"exercises"`
}

// Schedule is a workout schedule a trainer creates for an assigned member.
type Schedule struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID  primitive.ObjectID `bson:"memberId" json:"memberId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
	Routines  []Routine          `bson:"routines" json:"routines"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
