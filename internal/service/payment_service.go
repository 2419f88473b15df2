package service

import (
	"context"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentService is read-only: payments are created inside the purchase
// transaction and deleted only by the subscription delete cascade.
type PaymentService interface {
	List(ctx context.Context) ([]domain.Payment, error)
	ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new instance of paymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo}
}

func (s *paymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx)
}

func (s *paymentService) ListByMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Payment, error) {
	return s.paymentRepo.GetByMemberID(ctx, memberID)
}
