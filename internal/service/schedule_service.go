package service

import (
	"context"
	"errors"
	"time"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrMemberNotOnRoster    = errors.New("member is not assigned to this trainer")
	ErrNotScheduleOwner     = errors.New("schedule does not belong to this trainer")
	ErrInvalidScheduleDates = errors.New("schedule end date must be after start date")
)

// ScheduleService lets trainers manage workout schedules for their assigned
// members.
type ScheduleService interface {
	Create(ctx context.Context, trainerID, memberID primitive.ObjectID, start, end time.Time, routines []domain.Routine) (*domain.Schedule, error)
	Update(ctx context.Context, trainerID, scheduleID primitive.ObjectID, start, end time.Time, routines []domain.Routine) (*domain.Schedule, error)
	ListForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Schedule, error)
	ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Schedule, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	memberRepo   repository.MemberRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, memberRepo repository.MemberRepository) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		memberRepo:   memberRepo,
	}
}

// Create rejects schedules for members outside the trainer's roster.
func (s *scheduleService) Create(ctx context.Context, trainerID, memberID primitive.ObjectID, start, end time.Time, routines []domain.Routine) (*domain.Schedule, error) {
	if !end.After(start) {
		return nil, ErrInvalidScheduleDates
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.AssignedTrainer == nil || *member.AssignedTrainer != trainerID {
		return nil, ErrMemberNotOnRoster
	}

	schedule := &domain.Schedule{
		MemberID:  memberID,
		TrainerID: trainerID,
		StartDate: start,
		EndDate:   end,
		Routines:  routines,
	}
	id, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		return nil, err
	}
	schedule.ID = id
	return schedule, nil
}

func (s *scheduleService) Update(ctx context.Context, trainerID, scheduleID primitive.ObjectID, start, end time.Time, routines []domain.Routine) (*domain.Schedule, error) {
	if !end.After(start) {
		return nil, ErrInvalidScheduleDates
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if schedule.TrainerID != trainerID {
		return nil, ErrNotScheduleOwner
	}

	schedule.StartDate = start
	schedule.EndDate = end
	schedule.Routines = routines
	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) ListForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Schedule, error) {
	return s.scheduleRepo.GetByMemberID(ctx, memberID)
}

func (s *scheduleService) ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Schedule, error) {
	return s.scheduleRepo.GetByTrainerID(ctx, trainerID)
}

func (s *scheduleService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.scheduleRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrDeleteFailed) {
		return ErrScheduleNotFound
	}
	return err
}
