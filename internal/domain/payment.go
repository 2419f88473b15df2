package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod enum
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentUPI          PaymentMethod = "upi"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentBankTransfer:
		return true
	}
	return false
}

// PaymentStatus enum. The purchase flow only ever records completed
// payments; pending/failed exist for the wire format.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is one recorded payment event. SubscriptionID is back-filled right
// after the paired subscription is created.
type Payment struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MemberID       primitive.ObjectID  `bson:"memberId" json:"memberId"`
	SubscriptionID *primitive.ObjectID `bson:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	Amount         int64               `bson:"amount" json:"amount"`
	Method         PaymentMethod       `bson:"method" json:"method"`
	Status         PaymentStatus       `bson:"status" json:"status"`
	TransactionID  string              `bson:"transactionId" json:"transactionId"`
	InvoiceNumber  string              `bson:"invoiceNumber" json:"invoiceNumber"`
	PaymentDate    time.Time           `bson:"paymentDate" json:"paymentDate"`
}
