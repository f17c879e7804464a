package domain_test

import (
	"testing"

	"github.com/pharmindo/pharmacy_inventory_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPurchaseStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.PurchaseStatus
		to   domain.PurchaseStatus
		want bool
	}{
		{"pending to received", domain.PurchasePending, domain.PurchaseReceived, true},
		{"pending to cancelled", domain.PurchasePending, domain.PurchaseCancelled, true},
		{"received to cancelled", domain.PurchaseReceived, domain.PurchaseCancelled, true},
		{"received back to pending", domain.PurchaseReceived, domain.PurchasePending, false},
		{"cancelled to received", domain.PurchaseCancelled, domain.PurchaseReceived, false},
		{"cancelled to pending", domain.PurchaseCancelled, domain.PurchasePending, false},
		{"pending to pending", domain.PurchasePending, domain.PurchasePending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPaymentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.PaymentStatus
		to   domain.PaymentStatus
		want bool
	}{
		{"pending to paid", domain.PaymentPending, domain.PaymentPaid, true},
		{"pending to cancelled", domain.PaymentPending, domain.PaymentCancelled, true},
		{"paid to cancelled", domain.PaymentPaid, domain.PaymentCancelled, true},
		{"paid back to pending", domain.PaymentPaid, domain.PaymentPending, false},
		{"cancelled revived", domain.PaymentCancelled, domain.PaymentPending, false},
		{"cancelled to paid", domain.PaymentCancelled, domain.PaymentPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReturnStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.ReturnStatus
		to   domain.ReturnStatus
		want bool
	}{
		{"pending to approved", domain.ReturnPending, domain.ReturnApproved, true},
		{"pending to rejected", domain.ReturnPending, domain.ReturnRejected, true},
		{"approved to rejected", domain.ReturnApproved, domain.ReturnRejected, true},
		{"approved back to pending", domain.ReturnApproved, domain.ReturnPending, false},
		{"rejected to approved", domain.ReturnRejected, domain.ReturnApproved, false},
		{"rejected to pending", domain.ReturnRejected, domain.ReturnPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStockMovement_SignedQuantity(t *testing.T) {
	in := domain.StockMovement{MovementType: domain.MovementIn, Quantity: 7}
	out := domain.StockMovement{MovementType: domain.MovementOut, Quantity: 7}
	assert.Equal(t, int64(7), in.SignedQuantity())
	assert.Equal(t, int64(-7), out.SignedQuantity())
}

func TestMovementRef_Constructors(t *testing.T) {
	saleRef := domain.SaleRef("sale-1")
	assert.Equal(t, domain.RefSale, saleRef.Kind)
	if assert.NotNil(t, saleRef.ID) {
		assert.Equal(t, "sale-1", *saleRef.ID)
	}

	manual := domain.ManualRef()
	assert.Equal(t, domain.RefAdjustment, manual.Kind)
	assert.Nil(t, manual.ID)
}
