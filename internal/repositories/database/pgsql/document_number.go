package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Document number prefixes, one per document type.
const (
	purchasePrefix = "PO"
	salePrefix     = "SL"
	returnPrefix   = "RT"
)

// formatDocumentNumber renders a document number like PO-20250114-0007.
func formatDocumentNumber(prefix string, day time.Time, sequence int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), sequence)
}

// nextDocumentNumber atomically advances the per-day counter for the given
// prefix and returns the formatted document number. Must be called within the
// transaction that persists the document, so a rolled-back document never
// burns a visible gap alone and two concurrent saves never share a number.
func nextDocumentNumber(ctx context.Context, tx pgx.Tx, prefix string, day time.Time) (string, error) {
	query := `
		INSERT INTO document_counters (doc_type, counter_date, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, counter_date)
		DO UPDATE SET last_number = document_counters.last_number + 1
		RETURNING last_number;
	`
	var sequence int64
	counterDate := day.Format("2006-01-02")
	if err := tx.QueryRow(ctx, query, prefix, counterDate).Scan(&sequence); err != nil {
		return "", fmt.Errorf("failed to advance document counter for %s/%s: %w", prefix, counterDate, err)
	}
	return formatDocumentNumber(prefix, day, sequence), nil
}
