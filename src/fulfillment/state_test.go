package fulfillment

import (
	"testing"
	"vbs/src/types"

	"github.com/stretchr/testify/assert"
)

func TestDecidePhase(t *testing.T) {
	assert.Equal(t, ProceedNew, DecidePhase(types.PAYMENT_UNPAID, 0))
	assert.Equal(t, ProceedNew, DecidePhase(types.PAYMENT_UNPAID, 3))
	assert.Equal(t, ProceedRepair, DecidePhase(types.PAYMENT_PAID, 0))
	assert.Equal(t, AlreadyComplete, DecidePhase(types.PAYMENT_PAID, 1))
	assert.Equal(t, AlreadyComplete, DecidePhase(types.PAYMENT_PAID, 4))
}
