package service

import (
	"context"
	"testing"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveUsesTierTable(t *testing.T) {
	svc := NewPlanService(new(mockPlanRepo), nil)

	terms, err := svc.Resolve(context.Background(), "", "monthly")
	require.NoError(t, err)
	assert.Equal(t, "Monthly", terms.Name)
	assert.Equal(t, 1, terms.Duration)
	assert.Equal(t, int64(1000), terms.Price)

	terms, err = svc.Resolve(context.Background(), "", "quarterly")
	require.NoError(t, err)
	assert.Equal(t, 3, terms.Duration)
	assert.Equal(t, int64(2700), terms.Price)

	terms, err = svc.Resolve(context.Background(), "", "yearly")
	require.NoError(t, err)
	assert.Equal(t, 12, terms.Duration)
	assert.Equal(t, int64(10000), terms.Price)
}

func TestResolveUnknownTier(t *testing.T) {
	svc := NewPlanService(new(mockPlanRepo), nil)

	_, err := svc.Resolve(context.Background(), "", "weekly")
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = svc.Resolve(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestResolvePlanIDTakesPrecedence(t *testing.T) {
	planRepo := new(mockPlanRepo)
	svc := NewPlanService(planRepo, nil)

	planID := primitive.NewObjectID()
	planRepo.On("GetByID", mock.Anything, planID).
		Return(&domain.Plan{ID: planID, Name: "Premium Plan", Duration: 6, Price: 4499}, nil)

	// The tier value should be ignored when a plan id is present.
	terms, err := svc.Resolve(context.Background(), planID.Hex(), "monthly")
	require.NoError(t, err)
	assert.Equal(t, "Premium Plan", terms.Name)
	assert.Equal(t, 6, terms.Duration)
	assert.Equal(t, int64(4499), terms.Price)
	planRepo.AssertExpectations(t)
}

func TestResolveUnknownPlanIDDoesNotFallThrough(t *testing.T) {
	planRepo := new(mockPlanRepo)
	svc := NewPlanService(planRepo, nil)

	planID := primitive.NewObjectID()
	planRepo.On("GetByID", mock.Anything, planID).Return(nil, repository.ErrNotFound)

	// Even with a valid tier alongside, an unknown catalog id is an error.
	_, err := svc.Resolve(context.Background(), planID.Hex(), "monthly")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestResolveMalformedPlanID(t *testing.T) {
	svc := NewPlanService(new(mockPlanRepo), nil)

	_, err := svc.Resolve(context.Background(), "not-a-hex-id", "monthly")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestCreateRejectsInvalidTerms(t *testing.T) {
	svc := NewPlanService(new(mockPlanRepo), nil)

	_, err := svc.Create(context.Background(), "", 1, 999)
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = svc.Create(context.Background(), "Basic Plan", 0, 999)
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = svc.Create(context.Background(), "Basic Plan", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestSeedDefaultsOnlyOnEmptyCatalog(t *testing.T) {
	planRepo := new(mockPlanRepo)
	svc := NewPlanService(planRepo, nil)

	planRepo.On("Count", mock.Anything).Return(int64(0), nil).Once()
	planRepo.On("CreateMany", mock.Anything, SeedPlans()).Return(nil).Once()

	require.NoError(t, svc.SeedDefaults(context.Background()))
	planRepo.AssertExpectations(t)

	planRepo.On("Count", mock.Anything).Return(int64(4), nil).Once()
	require.NoError(t, svc.SeedDefaults(context.Background()))
	planRepo.AssertNumberOfCalls(t, "CreateMany", 1)
}
