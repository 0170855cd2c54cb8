package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portaria-backend/internal/model"
)

func testDelivery() model.Delivery {
	return model.Delivery{
		ID:            1,
		CondominiumID: 1,
		ResidentID:    7,
		PickupCode:    "12345",
		Notes:         "caixa grande",
		RegisteredAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Status:        model.StatusPending,
		Resident: model.Resident{
			ID:    7,
			Name:  "Maria Souza",
			Phone: "(11) 99999-0000",
			Block: "A",
			Unit:  "1905",
		},
		Condominium: model.Condominium{ID: 1, Name: "Residencial Aurora"},
	}
}

func TestNewDeliveryMessage(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	msg := NewDeliveryMessage(testDelivery(), now)

	assert.Equal(t, "5511999990000", msg.To)
	assert.Equal(t, TypeDelivery, msg.Type)
	assert.Equal(t, int64(7), msg.ResidentID)
	assert.Contains(t, msg.Body, "Residencial Aurora")
	assert.Contains(t, msg.Body, "Maria Souza")
	assert.Contains(t, msg.Body, "*12345*")
	assert.Contains(t, msg.Body, "25/08/2026")
	assert.Contains(t, msg.Body, "14:30")

	require.NotNil(t, msg.Delivery)
	assert.Equal(t, "12345", msg.Delivery.Code)
	assert.Equal(t, "1905", msg.Delivery.Unit)
	assert.Equal(t, "A", msg.Delivery.Block)
	assert.Equal(t, "caixa grande", msg.Delivery.Notes)
	assert.Nil(t, msg.Withdrawal)
	assert.Nil(t, msg.Reminder)
}

func TestNewWithdrawalMessage(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	t.Run("With notes", func(t *testing.T) {
		d := testDelivery()
		d.WithdrawalNotes = "retirado pelo porteiro"

		msg := NewWithdrawalMessage(d, now)

		assert.Equal(t, TypeWithdrawal, msg.Type)
		assert.Contains(t, msg.Body, "Encomenda Retirada")
		assert.Contains(t, msg.Body, "retirado pelo porteiro")
		require.NotNil(t, msg.Withdrawal)
		assert.Equal(t, "retirado pelo porteiro", msg.Withdrawal.Description)
	})

	t.Run("Without notes", func(t *testing.T) {
		msg := NewWithdrawalMessage(testDelivery(), now)

		assert.NotContains(t, msg.Body, "📝")
	})
}

func TestNewReminderMessage(t *testing.T) {
	d := testDelivery()
	now := d.RegisteredAt.AddDate(0, 0, 3)

	msg := NewReminderMessage(d, now)

	assert.Equal(t, TypeReminder, msg.Type)
	assert.Contains(t, msg.Body, "há 3 dias")
	assert.Contains(t, msg.Body, "A-1905")
	require.NotNil(t, msg.Reminder)
	assert.Equal(t, 3, msg.Reminder.DaysPending)
}

func TestRecipientPhone_MalformedPassesThrough(t *testing.T) {
	d := testDelivery()
	d.Resident.Phone = "not a phone"

	msg := NewDeliveryMessage(d, time.Now().UTC())

	assert.Equal(t, "not a phone", msg.To)
}

func TestCondominiumName_Default(t *testing.T) {
	d := testDelivery()
	d.Condominium = model.Condominium{}

	msg := NewDeliveryMessage(d, time.Now().UTC())

	assert.Contains(t, msg.Body, "Condomínio")
}
