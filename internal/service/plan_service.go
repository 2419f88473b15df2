package service

import (
	"context"
	"errors"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidPlan  = errors.New("invalid plan")
	ErrPlanNotFound = errors.New("plan not found")
)

// PlanTiers maps a symbolic plan key ("monthly", "quarterly", ...) to fixed
// plan terms. The table is plain data passed into the service at
// construction; nothing mutates it at runtime.
type PlanTiers map[string]domain.PlanTerms

// DefaultPlanTiers returns the built-in tier table used when no catalog plan
// id is supplied.
func DefaultPlanTiers() PlanTiers {
	return PlanTiers{
		"monthly":   {Name: "Monthly", Duration: 1, Price: 1000},
		"quarterly": {Name: "Quarterly", Duration: 3, Price: 2700},
		"yearly":    {Name: "Yearly", Duration: 12, Price: 10000},
	}
}

// SeedPlans is the catalog seeded on first boot when the plans collection is
// empty.
func SeedPlans() []domain.Plan {
	return []domain.Plan{
		{Name: "Basic Plan", Duration: 1, Price: 999},
		{Name: "Standard Plan", Duration: 3, Price: 2499},
		{Name: "Premium Plan", Duration: 6, Price: 4499},
		{Name: "Annual Plan", Duration: 12, Price: 7999},
	}
}

// PlanService exposes the plan catalog plus plan-terms resolution for the
// purchase flow.
type PlanService interface {
	// Resolve produces the plan-terms snapshot for a purchase. A non-empty
	// planID takes precedence and is authoritative: an unknown id fails with
	// ErrInvalidPlan rather than falling through to the tier table.
	Resolve(ctx context.Context, planID, planType string) (domain.PlanTerms, error)

	Tiers() PlanTiers
	List(ctx context.Context) ([]domain.Plan, error)
	Create(ctx context.Context, name string, duration int, price int64) (*domain.Plan, error)
	Update(ctx context.Context, id primitive.ObjectID, name string, duration int, price int64) (*domain.Plan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SeedDefaults(ctx context.Context) error
}

type planService struct {
	planRepo repository.PlanRepository
	tiers    PlanTiers
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, tiers PlanTiers) PlanService {
	if tiers == nil {
		tiers = DefaultPlanTiers()
	}
	return &planService{planRepo: planRepo, tiers: tiers}
}

func (s *planService) Resolve(ctx context.Context, planID, planType string) (domain.PlanTerms, error) {
	if planID != "" {
		oid, err := primitive.ObjectIDFromHex(planID)
		if err != nil {
			return domain.PlanTerms{}, ErrInvalidPlan
		}
		plan, err := s.planRepo.GetByID(ctx, oid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.PlanTerms{}, ErrInvalidPlan
			}
			return domain.PlanTerms{}, err
		}
		return plan.Terms(), nil
	}

	if planType != "" {
		if terms, ok := s.tiers[planType]; ok {
			return terms, nil
		}
	}
	return domain.PlanTerms{}, ErrInvalidPlan
}

func (s *planService) Tiers() PlanTiers {
	return s.tiers
}

func (s *planService) List(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.List(ctx)
}

func (s *planService) Create(ctx context.Context, name string, duration int, price int64) (*domain.Plan, error) {
	if name == "" || duration < 1 || price <= 0 {
		return nil, ErrInvalidPlan
	}

	plan := &domain.Plan{Name: name, Duration: duration, Price: price}
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) Update(ctx context.Context, id primitive.ObjectID, name string, duration int, price int64) (*domain.Plan, error) {
	if name == "" || duration < 1 || price <= 0 {
		return nil, ErrInvalidPlan
	}

	plan := &domain.Plan{ID: id, Name: name, Duration: duration, Price: price}
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// SeedDefaults inserts the default catalog once, on an empty collection.
func (s *planService) SeedDefaults(ctx context.Context) error {
	count, err := s.planRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.planRepo.CreateMany(ctx, SeedPlans())
}
