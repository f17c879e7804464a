package pgsql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDocumentNumber(t *testing.T) {
	day := time.Date(2025, time.January, 14, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "PO-20250114-0007", formatDocumentNumber(purchasePrefix, day, 7))
	assert.Equal(t, "SL-20250114-0001", formatDocumentNumber(salePrefix, day, 1))
	assert.Equal(t, "RT-20250114-0123", formatDocumentNumber(returnPrefix, day, 123))
	// Sequence wider than four digits keeps growing instead of truncating.
	assert.Equal(t, "SL-20250114-12345", formatDocumentNumber(salePrefix, day, 12345))
}
