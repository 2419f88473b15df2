package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type subscriptionFixture struct {
	subRepo     *mockSubscriptionRepo
	paymentRepo *mockPaymentRepo
	memberRepo  *mockMemberRepo
	svc         SubscriptionService
	now         time.Time
}

func newSubscriptionFixture(t *testing.T) *subscriptionFixture {
	t.Helper()

	f := &subscriptionFixture{
		subRepo:     new(mockSubscriptionRepo),
		paymentRepo: new(mockPaymentRepo),
		memberRepo:  new(mockMemberRepo),
		now:         time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC),
	}

	plans := NewPlanService(new(mockPlanRepo), nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewSubscriptionService(f.subRepo, f.paymentRepo, f.memberRepo, plans, stubIDGenerator{"TXN-TEST", "INV-TEST"}, logger)
	svc.(*subscriptionService).now = func() time.Time { return f.now }
	f.svc = svc
	return f
}

func TestPurchaseCreatesPairedRecords(t *testing.T) {
	f := newSubscriptionFixture(t)

	memberID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	subID := primitive.NewObjectID()

	f.memberRepo.On("GetByID", mock.Anything, memberID).
		Return(&domain.Member{ID: memberID, Version: 1}, nil)
	f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.MemberID == memberID &&
			p.Amount == 1000 &&
			p.Method == domain.PaymentCard &&
			p.Status == domain.PaymentCompleted &&
			p.TransactionID == "TXN-TEST" &&
			p.InvoiceNumber == "INV-TEST"
	})).Return(paymentID, nil)
	f.subRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subscription) bool {
		return s.MemberID == memberID &&
			s.Status == domain.SubscriptionActive &&
			s.PaymentID != nil && *s.PaymentID == paymentID
	})).Return(subID, nil)
	f.paymentRepo.On("SetSubscriptionID", mock.Anything, paymentID, subID).Return(nil)
	f.memberRepo.On("SwapCurrentSubscription", mock.Anything, memberID, int64(1), subID, (*primitive.ObjectID)(nil)).
		Return(nil)

	result, err := f.svc.Purchase(context.Background(), memberID, "", "monthly", domain.PaymentCard)
	require.NoError(t, err)

	// Jan 31 + 1 month clamps to the end of February.
	assert.Equal(t, f.now, result.Subscription.StartDate)
	assert.Equal(t, time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC), result.Subscription.EndDate)
	assert.Equal(t, domain.SubscriptionActive, result.Subscription.Status)

	// Records are cross-linked both ways.
	require.NotNil(t, result.Subscription.PaymentID)
	assert.Equal(t, paymentID, *result.Subscription.PaymentID)
	require.NotNil(t, result.Payment.SubscriptionID)
	assert.Equal(t, subID, *result.Payment.SubscriptionID)

	f.memberRepo.AssertExpectations(t)
	f.paymentRepo.AssertExpectations(t)
	f.subRepo.AssertExpectations(t)
}

func TestPurchaseSupersedesCurrentSubscription(t *testing.T) {
	f := newSubscriptionFixture(t)

	memberID := primitive.NewObjectID()
	prevID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	subID := primitive.NewObjectID()

	f.memberRepo.On("GetByID", mock.Anything, memberID).
		Return(&domain.Member{ID: memberID, CurrentSubscription: &prevID, Version: 4}, nil)
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Return(paymentID, nil)
	f.subRepo.On("Create", mock.Anything, mock.Anything).Return(subID, nil)
	f.paymentRepo.On("SetSubscriptionID", mock.Anything, paymentID, subID).Return(nil)
	f.subRepo.On("GetByID", mock.Anything, prevID).
		Return(&domain.Subscription{ID: prevID, MemberID: memberID, Status: domain.SubscriptionActive}, nil)
	f.memberRepo.On("SwapCurrentSubscription", mock.Anything, memberID, int64(4), subID, &prevID).
		Return(nil)
	f.subRepo.On("TransitionStatus", mock.Anything, prevID, domain.SubscriptionActive, domain.SubscriptionCancelled).
		Return(nil)

	_, err := f.svc.Purchase(context.Background(), memberID, "", "quarterly", domain.PaymentCash)
	require.NoError(t, err)

	// The superseded current subscription is archived and cancelled.
	f.memberRepo.AssertExpectations(t)
	f.subRepo.AssertExpectations(t)
}

func TestPurchaseLeavesTerminalSupersededAlone(t *testing.T) {
	f := newSubscriptionFixture(t)

	memberID := primitive.NewObjectID()
	prevID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	subID := primitive.NewObjectID()

	f.memberRepo.On("GetByID", mock.Anything, memberID).
		Return(&domain.Member{ID: memberID, CurrentSubscription: &prevID, Version: 2}, nil)
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Return(paymentID, nil)
	f.subRepo.On("Create", mock.Anything, mock.Anything).Return(subID, nil)
	f.paymentRepo.On("SetSubscriptionID", mock.Anything, paymentID, subID).Return(nil)
	f.subRepo.On("GetByID", mock.Anything, prevID).
		Return(&domain.Subscription{ID: prevID, MemberID: memberID, Status: domain.SubscriptionExpired}, nil)
	f.memberRepo.On("SwapCurrentSubscription", mock.Anything, memberID, int64(2), subID, &prevID).
		Return(nil)

	_, err := f.svc.Purchase(context.Background(), memberID, "", "monthly", domain.PaymentUPI)
	require.NoError(t, err)

	f.subRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseValidationRejectsBeforeAnyWrite(t *testing.T) {
	f := newSubscriptionFixture(t)
	memberID := primitive.NewObjectID()

	_, err := f.svc.Purchase(context.Background(), memberID, "", "monthly", domain.PaymentMethod("crypto"))
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = f.svc.Purchase(context.Background(), memberID, "", "weekly", domain.PaymentCard)
	assert.ErrorIs(t, err, ErrInvalidPlan)

	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchaseMemberNotFound(t *testing.T) {
	f := newSubscriptionFixture(t)
	memberID := primitive.NewObjectID()

	f.memberRepo.On("GetByID", mock.Anything, memberID).Return(nil, repository.ErrNotFound)

	_, err := f.svc.Purchase(context.Background(), memberID, "", "monthly", domain.PaymentCard)
	assert.ErrorIs(t, err, ErrMemberNotFound)
	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchaseRetriesPointerSwapOnVersionConflict(t *testing.T) {
	f := newSubscriptionFixture(t)

	memberID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	subID := primitive.NewObjectID()

	f.memberRepo.On("GetByID", mock.Anything, memberID).
		Return(&domain.Member{ID: memberID, Version: 1}, nil).Once()
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Return(paymentID, nil)
	f.subRepo.On("Create", mock.Anything, mock.Anything).Return(subID, nil)
	f.paymentRepo.On("SetSubscriptionID", mock.Anything, paymentID, subID).Return(nil)

	// A concurrent writer bumps the version between read and write once.
	f.memberRepo.On("SwapCurrentSubscription", mock.Anything, memberID, int64(1), subID, (*primitive.ObjectID)(nil)).
		Return(repository.ErrVersionConflict).Once()
	f.memberRepo.On("GetByID", mock.Anything, memberID).
		Return(&domain.Member{ID: memberID, Version: 2}, nil).Once()
	f.memberRepo.On("SwapCurrentSubscription", mock.Anything, memberID, int64(2), subID, (*primitive.ObjectID)(nil)).
		Return(nil).Once()

	_, err := f.svc.Purchase(context.Background(), memberID, "", "monthly", domain.PaymentCard)
	require.NoError(t, err)
	f.memberRepo.AssertExpectations(t)
}

func TestPurchaseGivesUpAfterBoundedSwapRetries(t *testing.T) {
	f := newSubscriptionFixture(t)

	memberID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	subID := primitive.NewObjectID()

	f.memberRepo.On("GetByID", mock.Anything, memberID).
		Return(&domain.Member{ID: memberID, Version: 1}, nil)
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Return(paymentID, nil)
	f.subRepo.On("Create", mock.Anything, mock.Anything).Return(subID, nil)
	f.paymentRepo.On("SetSubscriptionID", mock.Anything, paymentID, subID).Return(nil)
	f.memberRepo.On("SwapCurrentSubscription", mock.Anything, memberID, int64(1), subID, (*primitive.ObjectID)(nil)).
		Return(repository.ErrVersionConflict)

	_, err := f.svc.Purchase(context.Background(), memberID, "", "monthly", domain.PaymentCard)
	assert.ErrorIs(t, err, repository.ErrVersionConflict)
	f.memberRepo.AssertNumberOfCalls(t, "SwapCurrentSubscription", maxSwapAttempts)
}

func TestPauseResumeCancelLifecycle(t *testing.T) {
	f := newSubscriptionFixture(t)
	subID := primitive.NewObjectID()

	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, Status: domain.SubscriptionActive}, nil).Once()
	f.subRepo.On("TransitionStatus", mock.Anything, subID, domain.SubscriptionActive, domain.SubscriptionPaused).
		Return(nil).Once()

	sub, err := f.svc.Pause(context.Background(), subID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionPaused, sub.Status)

	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, Status: domain.SubscriptionPaused}, nil).Once()
	f.subRepo.On("TransitionStatus", mock.Anything, subID, domain.SubscriptionPaused, domain.SubscriptionActive).
		Return(nil).Once()

	sub, err = f.svc.Resume(context.Background(), subID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)

	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, Status: domain.SubscriptionActive}, nil).Once()
	f.subRepo.On("TransitionStatus", mock.Anything, subID, domain.SubscriptionActive, domain.SubscriptionCancelled).
		Return(nil).Once()

	sub, err = f.svc.Cancel(context.Background(), subID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionCancelled, sub.Status)
}

func TestTransitionRejectsIllegalMoves(t *testing.T) {
	f := newSubscriptionFixture(t)
	subID := primitive.NewObjectID()

	// Resuming a subscription that is not paused is illegal.
	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, Status: domain.SubscriptionActive}, nil).Once()
	_, err := f.svc.Resume(context.Background(), subID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Terminal states cannot move at all.
	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, Status: domain.SubscriptionExpired}, nil).Once()
	_, err = f.svc.Pause(context.Background(), subID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, Status: domain.SubscriptionCancelled}, nil).Once()
	_, err = f.svc.Cancel(context.Background(), subID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	f.subRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionDistinguishesOwnershipFromExistence(t *testing.T) {
	f := newSubscriptionFixture(t)
	subID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()

	// Record exists but belongs to someone else: authorization error.
	f.subRepo.On("GetByIDAndMember", mock.Anything, subID, memberID).
		Return(nil, repository.ErrNotFound).Once()
	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, Status: domain.SubscriptionActive}, nil).Once()

	_, err := f.svc.Pause(context.Background(), subID, &memberID)
	assert.ErrorIs(t, err, ErrNotSubscriptionOwner)

	// Record does not exist at all: not found.
	f.subRepo.On("GetByIDAndMember", mock.Anything, subID, memberID).
		Return(nil, repository.ErrNotFound).Once()
	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(nil, repository.ErrNotFound).Once()

	_, err = f.svc.Pause(context.Background(), subID, &memberID)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestMemberScopedTransitionUsesScopedLookup(t *testing.T) {
	f := newSubscriptionFixture(t)
	subID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()

	f.subRepo.On("GetByIDAndMember", mock.Anything, subID, memberID).
		Return(&domain.Subscription{ID: subID, MemberID: memberID, Status: domain.SubscriptionActive}, nil)
	f.subRepo.On("TransitionStatus", mock.Anything, subID, domain.SubscriptionActive, domain.SubscriptionPaused).
		Return(nil)

	sub, err := f.svc.Pause(context.Background(), subID, &memberID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionPaused, sub.Status)
	f.subRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTransitionLostRaceSurfacesAsInvalid(t *testing.T) {
	f := newSubscriptionFixture(t)
	subID := primitive.NewObjectID()

	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, Status: domain.SubscriptionActive}, nil)
	// Status moved between read and the guarded write.
	f.subRepo.On("TransitionStatus", mock.Anything, subID, domain.SubscriptionActive, domain.SubscriptionPaused).
		Return(repository.ErrNotFound)

	_, err := f.svc.Pause(context.Background(), subID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeleteCascades(t *testing.T) {
	f := newSubscriptionFixture(t)

	subID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()

	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, MemberID: memberID, PaymentID: &paymentID}, nil)
	f.memberRepo.On("RemoveSubscriptionRefs", mock.Anything, memberID, subID).Return(nil)
	f.paymentRepo.On("Delete", mock.Anything, paymentID).Return(nil)
	f.subRepo.On("Delete", mock.Anything, subID).Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), subID))
	f.memberRepo.AssertExpectations(t)
	f.paymentRepo.AssertExpectations(t)
	f.subRepo.AssertExpectations(t)
}

func TestDeleteMissingSubscription(t *testing.T) {
	f := newSubscriptionFixture(t)
	subID := primitive.NewObjectID()

	f.subRepo.On("GetByID", mock.Anything, subID).Return(nil, repository.ErrNotFound)

	err := f.svc.Delete(context.Background(), subID)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestSweepExpiredUsesClock(t *testing.T) {
	f := newSubscriptionFixture(t)

	f.subRepo.On("ExpireDue", mock.Anything, f.now).Return(int64(3), nil)

	count, err := f.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// A second sweep over the same state finds nothing new.
	f.subRepo.ExpectedCalls = nil
	f.subRepo.On("ExpireDue", mock.Anything, f.now).Return(int64(0), nil)

	count, err = f.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCurrentForMember(t *testing.T) {
	f := newSubscriptionFixture(t)
	memberID := primitive.NewObjectID()
	subID := primitive.NewObjectID()

	// No current subscription yields nil without error.
	f.memberRepo.On("GetByID", mock.Anything, memberID).
		Return(&domain.Member{ID: memberID}, nil).Once()
	sub, err := f.svc.CurrentForMember(context.Background(), memberID)
	require.NoError(t, err)
	assert.Nil(t, sub)

	f.memberRepo.On("GetByID", mock.Anything, memberID).
		Return(&domain.Member{ID: memberID, CurrentSubscription: &subID}, nil).Once()
	f.subRepo.On("GetByID", mock.Anything, subID).
		Return(&domain.Subscription{ID: subID, MemberID: memberID, Status: domain.SubscriptionActive}, nil).Once()

	sub, err = f.svc.CurrentForMember(context.Background(), memberID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, subID, sub.ID)
}
