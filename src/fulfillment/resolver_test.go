package fulfillment

import (
	"testing"
	"vbs/src/models"

	"github.com/stretchr/testify/assert"
)

func testTicketTypes() []models.TicketType {
	return []models.TicketType{
		{ID: 1, EventID: 1, Name: "Standard", Price: 10},
		{ID: 2, EventID: 1, Name: "VIP", Price: 15},
	}
}

func TestMergeDuplicateEntries(t *testing.T) {
	entries := mergeEntries([]SelectionEntry{
		{Ref: TicketTypeRef{ID: 10}, Quantity: 2},
		{Ref: TicketTypeRef{Base: true}, Quantity: 1},
		{Ref: TicketTypeRef{ID: 10}, Quantity: 2},
		{Ref: TicketTypeRef{ID: 10, Base: true}, Quantity: 1},
	})

	assert.Len(t, entries, 2)
	assert.Equal(t, TicketTypeRef{ID: 10}, entries[0].Ref)
	assert.Equal(t, uint(4), entries[0].Quantity)
	assert.Equal(t, TicketTypeRef{Base: true}, entries[1].Ref)
	assert.Equal(t, uint(2), entries[1].Quantity)
}

func TestReconstructFromBasePrice(t *testing.T) {
	base := 20.0
	entries, err := ReconstructSelection(40, &base, nil)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].Ref.Base)
	assert.Equal(t, uint(2), entries[0].Quantity)
}

func TestReconstructSingleType(t *testing.T) {
	entries, err := ReconstructSelection(40, nil, testTicketTypes())

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, uint(1), entries[0].Ref.ID)
	assert.Equal(t, uint(4), entries[0].Quantity)
}

func TestReconstructPair(t *testing.T) {
	entries, err := ReconstructSelection(35, nil, testTicketTypes())

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, uint(1), entries[0].Ref.ID)
	assert.Equal(t, uint(2), entries[0].Quantity)
	assert.Equal(t, uint(2), entries[1].Ref.ID)
	assert.Equal(t, uint(1), entries[1].Quantity)
}

func TestReconstructPairSameType(t *testing.T) {
	types := []models.TicketType{
		{ID: 5, EventID: 1, Name: "Late", Price: 12.5},
	}
	entries, err := ReconstructSelection(37.5, nil, types)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, uint(5), entries[0].Ref.ID)
	assert.Equal(t, uint(3), entries[0].Quantity)
}

func TestReconstructNoMatch(t *testing.T) {
	entries, err := ReconstructSelection(7, nil, testTicketTypes())

	assert.ErrorIs(t, err, ErrNoSelectionFound)
	assert.Nil(t, entries)
}

func TestReconstructSkipsFreeTypes(t *testing.T) {
	types := []models.TicketType{
		{ID: 1, EventID: 1, Name: "Comp", Price: 0},
		{ID: 2, EventID: 1, Name: "Standard", Price: 10},
	}
	entries, err := ReconstructSelection(30, nil, types)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].Ref.ID)
	assert.Equal(t, uint(3), entries[0].Quantity)
}
