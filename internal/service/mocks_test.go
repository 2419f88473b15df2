package service

import (
	"context"
	"time"

	"gym-management-api/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- MemberRepository mock ---

type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockMemberRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if member, ok := args.Get(0).(*domain.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMemberRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Member, error) {
	args := m.Called(ctx, userID)
	if member, ok := args.Get(0).(*domain.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if members, ok := args.Get(0).([]domain.Member); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMemberRepo) UpdatePersonalInfo(ctx context.Context, id primitive.ObjectID, info domain.PersonalInfo) error {
	args := m.Called(ctx, id, info)
	return args.Error(0)
}

func (m *mockMemberRepo) SetTrainer(ctx context.Context, id primitive.ObjectID, trainerID *primitive.ObjectID) error {
	args := m.Called(ctx, id, trainerID)
	return args.Error(0)
}

func (m *mockMemberRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMemberRepo) SwapCurrentSubscription(ctx context.Context, id primitive.ObjectID, version int64, newID primitive.ObjectID, prevID *primitive.ObjectID) error {
	args := m.Called(ctx, id, version, newID, prevID)
	return args.Error(0)
}

func (m *mockMemberRepo) RemoveSubscriptionRefs(ctx context.Context, id, subID primitive.ObjectID) error {
	args := m.Called(ctx, id, subID)
	return args.Error(0)
}

// --- SubscriptionRepository mock ---

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockSubscriptionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Subscription, error) {
	args := m.Called(ctx, id)
	if sub, ok := args.Get(0).(*domain.Subscription); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) GetByIDAndMember(ctx context.Context, id, memberID primitive.ObjectID) (*domain.Subscription, error) {
	args := m.Called(ctx, id, memberID)
	if sub, ok := args.Get(0).(*domain.Subscription); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Subscription, error) {
	args := m.Called(ctx, memberID)
	if subs, ok := args.Get(0).([]domain.Subscription); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) List(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	if subs, ok := args.Get(0).([]domain.Subscription); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to domain.SubscriptionStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- PaymentRepository mock ---

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	args := m.Called(ctx, payment)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if payment, ok := args.Get(0).(*domain.Payment); ok {
		return payment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentRepo) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Payment, error) {
	args := m.Called(ctx, memberID)
	if payments, ok := args.Get(0).([]domain.Payment); ok {
		return payments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentRepo) List(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if payments, ok := args.Get(0).([]domain.Payment); ok {
		return payments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentRepo) SetSubscriptionID(ctx context.Context, id, subscriptionID primitive.ObjectID) error {
	args := m.Called(ctx, id, subscriptionID)
	return args.Error(0)
}

func (m *mockPaymentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- PlanRepository mock ---

type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockPlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if plan, ok := args.Get(0).(*domain.Plan); ok {
		return plan, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepo) List(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if plans, ok := args.Get(0).([]domain.Plan); ok {
		return plans, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepo) Update(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPlanRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPlanRepo) CreateMany(ctx context.Context, plans []domain.Plan) error {
	args := m.Called(ctx, plans)
	return args.Error(0)
}

// --- UserRepository mock ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.Profile) error {
	args := m.Called(ctx, id, profile)
	return args.Error(0)
}

func (m *mockUserRepo) SetAvatar(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	args := m.Called(ctx, id, objectKey)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- TrainerRepository mock ---

type mockTrainerRepo struct {
	mock.Mock
}

func (m *mockTrainerRepo) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	args := m.Called(ctx, trainer)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockTrainerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	args := m.Called(ctx, id)
	if trainer, ok := args.Get(0).(*domain.Trainer); ok {
		return trainer, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTrainerRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Trainer, error) {
	args := m.Called(ctx, userID)
	if trainer, ok := args.Get(0).(*domain.Trainer); ok {
		return trainer, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTrainerRepo) List(ctx context.Context) ([]domain.Trainer, error) {
	args := m.Called(ctx)
	if trainers, ok := args.Get(0).([]domain.Trainer); ok {
		return trainers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTrainerRepo) AddMemberToRoster(ctx context.Context, trainerID, memberID primitive.ObjectID) error {
	args := m.Called(ctx, trainerID, memberID)
	return args.Error(0)
}

func (m *mockTrainerRepo) RemoveMemberFromRoster(ctx context.Context, trainerID, memberID primitive.ObjectID) error {
	args := m.Called(ctx, trainerID, memberID)
	return args.Error(0)
}

func (m *mockTrainerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- ScheduleRepository mock ---

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *domain.Schedule) (primitive.ObjectID, error) {
	args := m.Called(ctx, schedule)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if schedule, ok := args.Get(0).(*domain.Schedule); ok {
		return schedule, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Schedule, error) {
	args := m.Called(ctx, memberID)
	if schedules, ok := args.Get(0).([]domain.Schedule); ok {
		return schedules, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Schedule, error) {
	args := m.Called(ctx, trainerID)
	if schedules, ok := args.Get(0).([]domain.Schedule); ok {
		return schedules, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) Update(ctx context.Context, schedule *domain.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- FileStorage mock ---

type mockFileStorage struct {
	mock.Mock
}

func (m *mockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

// --- IDGenerator stub ---

type stubIDGenerator struct {
	txn     string
	invoice string
}

func (g stubIDGenerator) TransactionID() string { return g.txn }
func (g stubIDGenerator) InvoiceNumber() string { return g.invoice }
