package fulfillment

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestBuildQRPayload(t *testing.T) {
	issuedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	data, hash := BuildQRPayload("abc-123", 42, 7, "TKT-7-000001", issuedAt)

	assert.Equal(t, "abc-123", gjson.Get(data, "ticket_id").String())
	assert.Equal(t, int64(42), gjson.Get(data, "order_id").Int())
	assert.Equal(t, int64(7), gjson.Get(data, "event_id").Int())
	assert.Equal(t, "TKT-7-000001", gjson.Get(data, "ticket_number").String())

	sum := sha256.Sum256([]byte(data))
	assert.Equal(t, hex.EncodeToString(sum[:]), hash)
}

func TestBuildQRPayloadDeterministic(t *testing.T) {
	issuedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	data1, hash1 := BuildQRPayload("abc-123", 42, 7, "TKT-7-000001", issuedAt)
	data2, hash2 := BuildQRPayload("abc-123", 42, 7, "TKT-7-000001", issuedAt)

	assert.Equal(t, data1, data2)
	assert.Equal(t, hash1, hash2)
}

func TestBuildQRPayloadDistinctPerTicket(t *testing.T) {
	issuedAt := time.Now()
	_, hash1 := BuildQRPayload("abc-123", 42, 7, "TKT-7-000001", issuedAt)
	_, hash2 := BuildQRPayload("def-456", 42, 7, "TKT-7-000002", issuedAt)

	assert.NotEqual(t, hash1, hash2)
}
