package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGeneratorFormats(t *testing.T) {
	gen := NewIDGenerator()

	txn := gen.TransactionID()
	inv := gen.InvoiceNumber()

	assert.True(t, strings.HasPrefix(txn, "TXN-"), "got %q", txn)
	assert.True(t, strings.HasPrefix(inv, "INV-"), "got %q", inv)

	require.Len(t, strings.Split(txn, "-"), 3)
	suffix := strings.Split(txn, "-")[2]
	assert.Len(t, suffix, 8)
	assert.Equal(t, strings.ToUpper(suffix), suffix)
}

func TestIDGeneratorUniqueness(t *testing.T) {
	gen := NewIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.TransactionID()
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}
