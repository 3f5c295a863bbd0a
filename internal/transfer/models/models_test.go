package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
)

func TestStatusText(t *testing.T) {
	for i, name := range statusNames {
		parsed, err := ParseStatus(name)
		require.NoError(t, err)
		assert.Equal(t, Status(i), parsed)
	}
	_, err := ParseStatus("SHIPPED")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, "Status(9)", Status(9).String())

	raw, err := json.Marshal(struct{ S Status }{StatusPaymentDone})
	require.NoError(t, err)
	assert.JSONEq(t, `{"S":"PAYMENT_DONE"}`, string(raw))
}

func TestPurchaseLifecycle(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	newRequest := func() *PurchaseRequest {
		return NewPurchaseRequest(1, 2, id.NewAccountID(), id.NewAccountID(), now)
	}

	t.Run("only pending requests are processed", func(t *testing.T) {
		r := newRequest()
		require.NoError(t, r.CanProcess())
		r.ApplyDecision(false, now)
		assert.Equal(t, StatusRejected, r.Status)
		assert.Equal(t, "request not pending", dErrors.MessageOf(r.CanProcess()))
	})

	t.Run("payment checks run in order", func(t *testing.T) {
		r := newRequest()
		assert.Equal(t, "request not accepted", dErrors.MessageOf(r.CanPay(10, 10, true)))

		r.ApplyDecision(true, now)
		assert.Equal(t, "incorrect payment amount", dErrors.MessageOf(r.CanPay(5, 10, true)))
		assert.Equal(t, "land not for sale", dErrors.MessageOf(r.CanPay(10, 10, false)))
		require.NoError(t, r.CanPay(10, 10, true))

		r.ApplyPayment(10, now)
		assert.Equal(t, StatusPaymentDone, r.Status)
		assert.Equal(t, "payment already done", dErrors.MessageOf(r.CanPay(5, 10, false)))
	})

	t.Run("transaction mirrors the completed request", func(t *testing.T) {
		r := newRequest()
		r.ApplyDecision(true, now)
		r.ApplyPayment(10, now)
		later := now.Add(time.Minute)
		r.Complete(later)

		tx := r.Transaction()
		assert.Equal(t, r.ID, tx.RequestID)
		assert.Equal(t, r.Buyer, tx.Buyer)
		assert.Equal(t, int64(10), tx.Amount)
		assert.Equal(t, later, tx.CompletedAt)
	})
}
