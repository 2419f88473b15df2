package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces the transaction and invoice identifiers recorded on
// payments. Injected so the purchase flow can be tested deterministically.
type IDGenerator interface {
	TransactionID() string
	InvoiceNumber() string
}

// uuidIDGenerator derives ids from the wall clock plus a random UUID suffix,
// so rapid concurrent purchases cannot collide.
type uuidIDGenerator struct{}

// NewIDGenerator returns the default UUID-backed generator.
func NewIDGenerator() IDGenerator {
	return uuidIDGenerator{}
}

func (uuidIDGenerator) TransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), shortUUID())
}

func (uuidIDGenerator) InvoiceNumber() string {
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), shortUUID())
}

func shortUUID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
