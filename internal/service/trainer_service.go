package service

import (
	"context"
	"errors"
	"fmt"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound = errors.New("trainer not found")
)

// TrainerDetails enriches a trainer document with its user identity.
type TrainerDetails struct {
	domain.Trainer
	User *domain.User `json:"user,omitempty"`
}

// TrainerService owns trainer CRUD and the bidirectional trainer/member
// roster.
type TrainerService interface {
	List(ctx context.Context) ([]TrainerDetails, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*TrainerDetails, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Trainer, error)
	Create(ctx context.Context, email, password string, profile domain.Profile, specialization []string, experience int) (*TrainerDetails, error)

	// AssignMember keeps the roster invariant: the member is pulled from its
	// previous trainer (if any), added to the new trainer's list, and the
	// member's back-pointer is set. A member is never on two rosters.
	AssignMember(ctx context.Context, trainerID, memberID primitive.ObjectID) error
	UnassignMember(ctx context.Context, memberID primitive.ObjectID) error
	RosterMembers(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Member, error)
}

type trainerService struct {
	trainerRepo repository.TrainerRepository
	memberRepo  repository.MemberRepository
	userRepo    repository.UserRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	trainerRepo repository.TrainerRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
) TrainerService {
	return &trainerService{
		trainerRepo: trainerRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
	}
}

func (s *trainerService) List(ctx context.Context) ([]TrainerDetails, error) {
	trainers, err := s.trainerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]TrainerDetails, 0, len(trainers))
	for _, t := range trainers {
		d := TrainerDetails{Trainer: t}
		if user, err := s.userRepo.GetByID(ctx, t.UserID); err == nil {
			user.PasswordHash = ""
			d.User = user
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *trainerService) GetByID(ctx context.Context, id primitive.ObjectID) (*TrainerDetails, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	details := &TrainerDetails{Trainer: *trainer}
	if user, err := s.userRepo.GetByID(ctx, trainer.UserID); err == nil {
		user.PasswordHash = ""
		details.User = user
	}
	return details, nil
}

func (s *trainerService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

// Create provisions a trainer identity plus its trainer document in one
// administrative call.
func (s *trainerService) Create(ctx context.Context, email, password string, profile domain.Profile, specialization []string, experience int) (*TrainerDetails, error) {
	if email == "" || password == "" || profile.FirstName == "" || profile.LastName == "" {
		return nil, errors.New("email, password, first name, and last name are required")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleTrainer,
		Profile:      profile,
		IsActive:     true,
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID
	user.PasswordHash = ""

	trainer := &domain.Trainer{
		UserID:         userID,
		Specialization: specialization,
		Experience:     experience,
	}
	trainerID, err := s.trainerRepo.Create(ctx, trainer)
	if err != nil {
		return nil, err
	}
	trainer.ID = trainerID

	return &TrainerDetails{Trainer: *trainer, User: user}, nil
}

func (s *trainerService) AssignMember(ctx context.Context, trainerID, memberID primitive.ObjectID) error {
	trainer, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	// Pull from the previous roster before adding to the new one, so the
	// member never appears on two rosters.
	if member.AssignedTrainer != nil && *member.AssignedTrainer != trainer.ID {
		if err := s.trainerRepo.RemoveMemberFromRoster(ctx, *member.AssignedTrainer, member.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("remove member from previous roster: %w", err)
		}
	}

	if err := s.trainerRepo.AddMemberToRoster(ctx, trainer.ID, member.ID); err != nil {
		return err
	}

	tid := trainer.ID
	return s.memberRepo.SetTrainer(ctx, member.ID, &tid)
}

func (s *trainerService) UnassignMember(ctx context.Context, memberID primitive.ObjectID) error {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if member.AssignedTrainer != nil {
		if err := s.trainerRepo.RemoveMemberFromRoster(ctx, *member.AssignedTrainer, member.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}

	return s.memberRepo.SetTrainer(ctx, member.ID, nil)
}

func (s *trainerService) RosterMembers(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Member, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	members := make([]domain.Member, 0, len(trainer.AssignedMembers))
	for _, memberID := range trainer.AssignedMembers {
		member, err := s.memberRepo.GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // stale roster entry
			}
			return nil, err
		}
		members = append(members, *member)
	}
	return members, nil
}
