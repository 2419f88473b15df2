package service

import (
	"context"
	"errors"
	"fmt"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberDetails enriches a member document with its user identity for
// admin/trainer views.
type MemberDetails struct {
	domain.Member
	User *domain.User `json:"user,omitempty"`
}

// MemberService owns member CRUD and the administrative delete cascade.
type MemberService interface {
	List(ctx context.Context) ([]MemberDetails, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*MemberDetails, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Member, error)
	UpdatePersonalInfo(ctx context.Context, id primitive.ObjectID, info domain.PersonalInfo) (*domain.Member, error)
	// Delete removes the member document, its user identity, and detaches
	// the member from any trainer roster. Subscription and payment records
	// are kept as historical ledger entries.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type memberService struct {
	memberRepo  repository.MemberRepository
	userRepo    repository.UserRepository
	trainerRepo repository.TrainerRepository
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	trainerRepo repository.TrainerRepository,
) MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		trainerRepo: trainerRepo,
	}
}

func (s *memberService) List(ctx context.Context) ([]MemberDetails, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]MemberDetails, 0, len(members))
	for _, m := range members {
		d := MemberDetails{Member: m}
		if user, err := s.userRepo.GetByID(ctx, m.UserID); err == nil {
			user.PasswordHash = ""
			d.User = user
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *memberService) GetByID(ctx context.Context, id primitive.ObjectID) (*MemberDetails, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	details := &MemberDetails{Member: *member}
	if user, err := s.userRepo.GetByID(ctx, member.UserID); err == nil {
		user.PasswordHash = ""
		details.User = user
	}
	return details, nil
}

func (s *memberService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Member, error) {
	member, err := s.memberRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) UpdatePersonalInfo(ctx context.Context, id primitive.ObjectID, info domain.PersonalInfo) (*domain.Member, error) {
	if err := s.memberRepo.UpdatePersonalInfo(ctx, id, info); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.memberRepo.GetByID(ctx, id)
}

// Delete cascades: roster detach, user identity, then the member document.
func (s *memberService) Delete(ctx context.Context, id primitive.ObjectID) error {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if member.AssignedTrainer != nil {
		if err := s.trainerRepo.RemoveMemberFromRoster(ctx, *member.AssignedTrainer, member.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("detach member from trainer roster: %w", err)
		}
	}

	if err := s.userRepo.Delete(ctx, member.UserID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("delete member user identity: %w", err)
	}

	return s.memberRepo.Delete(ctx, id)
}
