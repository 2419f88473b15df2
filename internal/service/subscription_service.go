package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNotSubscriptionOwner = errors.New("subscription does not belong to this member")
	ErrInvalidTransition    = errors.New("subscription status does not allow this transition")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// How often the pointer swap retries before giving up on a busy aggregate.
const maxSwapAttempts = 3

// PurchaseResult pairs the two records a successful purchase creates.
type PurchaseResult struct {
	Subscription *domain.Subscription `json:"subscription"`
	Payment      *domain.Payment      `json:"payment"`
}

// SubscriptionService owns the subscription lifecycle: the purchase
// transaction, the pause/resume/cancel state machine, administrative
// deletion, and the expiry sweep.
type SubscriptionService interface {
	// Purchase establishes a new active subscription for the member and the
	// paired completed payment. Any previous current subscription is archived
	// into the member's history and, when not already terminal, cancelled.
	Purchase(ctx context.Context, memberID primitive.ObjectID, planID, planType string, method domain.PaymentMethod) (*PurchaseResult, error)

	// Pause/Resume/Cancel mutate one subscription. When actingMember is
	// non-nil the operation is scoped to that owner and acting on someone
	// else's subscription fails with ErrNotSubscriptionOwner.
	Pause(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID) (*domain.Subscription, error)
	Resume(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID) (*domain.Subscription, error)
	Cancel(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID) (*domain.Subscription, error)

	// Delete removes a subscription, cascading to its payment and scrubbing
	// the owning member's current/history pointers.
	Delete(ctx context.Context, subID primitive.ObjectID) error

	// SweepExpired bulk-transitions every active subscription past its end
	// date to expired and returns the count. Idempotent.
	SweepExpired(ctx context.Context) (int64, error)

	List(ctx context.Context) ([]domain.Subscription, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Subscription, error)
	CurrentForMember(ctx context.Context, memberID primitive.ObjectID) (*domain.Subscription, error)
}

type subscriptionService struct {
	subRepo     repository.SubscriptionRepository
	paymentRepo repository.PaymentRepository
	memberRepo  repository.MemberRepository
	plans       PlanService
	ids         IDGenerator
	logger      *slog.Logger
	now         func() time.Time
}

// NewSubscriptionService creates a new instance of subscriptionService.
func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	paymentRepo repository.PaymentRepository,
	memberRepo repository.MemberRepository,
	plans PlanService,
	ids IDGenerator,
	logger *slog.Logger,
) SubscriptionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &subscriptionService{
		subRepo:     subRepo,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		plans:       plans,
		ids:         ids,
		logger:      logger,
		now:         time.Now,
	}
}

// Purchase runs the multi-step purchase transaction. Validation failures
// reject before any write. Writes after the payment insert are best-effort
// sequential: a partial failure is logged with enough context for manual
// reconciliation and surfaced to the caller, with no automatic rollback.
func (s *subscriptionService) Purchase(ctx context.Context, memberID primitive.ObjectID, planID, planType string, method domain.PaymentMethod) (*PurchaseResult, error) {
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	terms, err := s.plans.Resolve(ctx, planID, planType)
	if err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	startDate := s.now().UTC()
	endDate := domain.AddMonths(startDate, terms.Duration)

	payment := &domain.Payment{
		MemberID:      member.ID,
		Amount:        terms.Price,
		Method:        method,
		Status:        domain.PaymentCompleted,
		TransactionID: s.ids.TransactionID(),
		InvoiceNumber: s.ids.InvoiceNumber(),
		PaymentDate:   startDate,
	}
	paymentID, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	payment.ID = paymentID

	sub := &domain.Subscription{
		MemberID:  member.ID,
		Plan:      terms,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.SubscriptionActive,
		PaymentID: &paymentID,
	}
	subID, err := s.subRepo.Create(ctx, sub)
	if err != nil {
		s.logPartialFailure("create subscription", member.ID, terms, paymentID, err)
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	sub.ID = subID

	if err := s.paymentRepo.SetSubscriptionID(ctx, paymentID, subID); err != nil {
		s.logPartialFailure("back-link payment", member.ID, terms, paymentID, err)
		return nil, fmt.Errorf("link payment to subscription: %w", err)
	}
	payment.SubscriptionID = &subID

	superseded, err := s.swapCurrentPointer(ctx, member, subID)
	if err != nil {
		s.logPartialFailure("update member aggregate", member.ID, terms, paymentID, err)
		return nil, fmt.Errorf("update member subscription pointers: %w", err)
	}

	// At most one active subscription per member: the superseded current one
	// is cancelled unless it already reached a terminal state. A concurrent
	// transition losing the race here is fine, the pointer swap already
	// archived it.
	if superseded != nil && !superseded.IsTerminal() {
		if err := s.subRepo.TransitionStatus(ctx, superseded.ID, superseded.Status, domain.SubscriptionCancelled); err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logPartialFailure("cancel superseded subscription", member.ID, terms, paymentID, err)
		}
	}

	return &PurchaseResult{Subscription: sub, Payment: payment}, nil
}

// swapCurrentPointer performs the read-modify-write on the member aggregate
// under its optimistic version token, retrying a bounded number of times if
// a concurrent purchase wins the race. Returns the superseded subscription,
// if there was one.
func (s *subscriptionService) swapCurrentPointer(ctx context.Context, member *domain.Member, newID primitive.ObjectID) (*domain.Subscription, error) {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		var prev *domain.Subscription
		var prevID *primitive.ObjectID
		if member.HasCurrentSubscription() {
			id := *member.CurrentSubscription
			prevID = &id
			sub, err := s.subRepo.GetByID(ctx, id)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			prev = sub // nil if the pointer dangled; history still records it
		}

		err := s.memberRepo.SwapCurrentSubscription(ctx, member.ID, member.Version, newID, prevID)
		if err == nil {
			return prev, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}

		member, err = s.memberRepo.GetByID(ctx, member.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
	}
	return nil, repository.ErrVersionConflict
}

func (s *subscriptionService) logPartialFailure(step string, memberID primitive.ObjectID, terms domain.PlanTerms, paymentID primitive.ObjectID, err error) {
	s.logger.Error("purchase transaction left partial state; manual reconciliation may be required",
		"step", step,
		"memberId", memberID.Hex(),
		"plan", terms.Name,
		"paymentId", paymentID.Hex(),
		"error", err,
	)
}

func (s *subscriptionService) Pause(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID) (*domain.Subscription, error) {
	return s.transition(ctx, subID, actingMember, domain.SubscriptionPaused)
}

func (s *subscriptionService) Resume(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID) (*domain.Subscription, error) {
	return s.transition(ctx, subID, actingMember, domain.SubscriptionActive)
}

func (s *subscriptionService) Cancel(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID) (*domain.Subscription, error) {
	return s.transition(ctx, subID, actingMember, domain.SubscriptionCancelled)
}

// transition loads the subscription (owner-scoped when acting on behalf of a
// member), validates the state machine, and applies a status-guarded update
// so a concurrent transition cannot be overwritten.
func (s *subscriptionService) transition(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID, target domain.SubscriptionStatus) (*domain.Subscription, error) {
	sub, err := s.load(ctx, subID, actingMember)
	if err != nil {
		return nil, err
	}

	if !sub.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	if err := s.subRepo.TransitionStatus(ctx, sub.ID, sub.Status, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Status moved between read and write.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	sub.Status = target
	return sub, nil
}

// load fetches a subscription. With an acting member, the query is scoped to
// (subscription id AND owner id); when the record exists but is owned by
// someone else, the caller gets an authorization error, not a silent miss.
func (s *subscriptionService) load(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID) (*domain.Subscription, error) {
	if actingMember == nil {
		sub, err := s.subRepo.GetByID(ctx, subID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrSubscriptionNotFound
			}
			return nil, err
		}
		return sub, nil
	}

	sub, err := s.subRepo.GetByIDAndMember(ctx, subID, *actingMember)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, err := s.subRepo.GetByID(ctx, subID); err == nil {
		return nil, ErrNotSubscriptionOwner
	}
	return nil, ErrSubscriptionNotFound
}

// Delete cascades: scrub the member's pointers, drop the payment, drop the
// subscription.
func (s *subscriptionService) Delete(ctx context.Context, subID primitive.ObjectID) error {
	sub, err := s.subRepo.GetByID(ctx, subID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}

	if err := s.memberRepo.RemoveSubscriptionRefs(ctx, sub.MemberID, sub.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("scrub member subscription refs: %w", err)
	}

	if sub.PaymentID != nil {
		if err := s.paymentRepo.Delete(ctx, *sub.PaymentID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("delete payment: %w", err)
		}
	}

	if err := s.subRepo.Delete(ctx, sub.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *subscriptionService) SweepExpired(ctx context.Context) (int64, error) {
	return s.subRepo.ExpireDue(ctx, s.now().UTC())
}

func (s *subscriptionService) List(ctx context.Context) ([]domain.Subscription, error) {
	return s.subRepo.List(ctx)
}

func (s *subscriptionService) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Subscription, error) {
	return s.subRepo.GetByMemberID(ctx, memberID)
}

// CurrentForMember returns the member's current subscription, or nil when
// the member holds none.
func (s *subscriptionService) CurrentForMember(ctx context.Context, memberID primitive.ObjectID) (*domain.Subscription, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !member.HasCurrentSubscription() {
		return nil, nil
	}

	sub, err := s.subRepo.GetByID(ctx, *member.CurrentSubscription)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}
