package fulfillment

import (
	"testing"
	"vbs/src/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestRemainingUnlimited(t *testing.T) {
	tt := models.TicketType{Name: "Standard", Price: 10}

	_, unlimited := Remaining(&tt)
	assert.True(t, unlimited)
}

func TestRemainingCapped(t *testing.T) {
	total := uint(100)
	tt := models.TicketType{Name: "VIP", Price: 50, QuantityTotal: &total, QuantitySold: 97}

	remaining, unlimited := Remaining(&tt)
	assert.False(t, unlimited)
	assert.Equal(t, 3, remaining)
}

func TestRemainingOversold(t *testing.T) {
	total := uint(10)
	tt := models.TicketType{Name: "VIP", Price: 50, QuantityTotal: &total, QuantitySold: 12}

	remaining, unlimited := Remaining(&tt)
	assert.False(t, unlimited)
	assert.Equal(t, -2, remaining)
}

func TestReserveRejectsOverCeiling(t *testing.T) {
	gdb, mock := newFulfillmentMock(t)
	// The caller's copy still sees two units remaining; the row does not.
	mock.ExpectQuery(`SELECT (.+) FROM "ticket_types"`).
		WillReturnRows(ticketTypeRows(10, "Standard", 10.0, 3, 2))

	total := uint(3)
	tt := models.TicketType{ID: 10, EventID: 2, Name: "Standard", Price: 10, QuantityTotal: &total, QuantitySold: 1}
	err := Reserve(gdb, &tt, 2)

	assert.ErrorIs(t, err, ErrInsufficientAvailability)
	assert.Equal(t, uint(1), tt.QuantitySold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveIncrementsSoldCount(t *testing.T) {
	gdb, mock := newFulfillmentMock(t)
	mock.ExpectQuery(`SELECT (.+) FROM "ticket_types"`).
		WillReturnRows(ticketTypeRows(10, "Standard", 10.0, 5, 1))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "ticket_types" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	total := uint(5)
	tt := models.TicketType{ID: 10, EventID: 2, Name: "Standard", Price: 10, QuantityTotal: &total, QuantitySold: 1}
	err := Reserve(gdb, &tt, 2)

	assert.NoError(t, err)
	assert.Equal(t, uint(3), tt.QuantitySold)
	assert.NoError(t, mock.ExpectationsWereMet())
}
