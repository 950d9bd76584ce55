package lib

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"
)

// NextTicketNumber draws the next ticket number for an event from the shared
// redis counter. On any failure it falls back to LocalTicketNumber so ticket
// issuance never blocks on the sequence backend.
func NextTicketNumber(eventId uint) string {
	rd := GetRedisClient()
	if rd == nil {
		return LocalTicketNumber()
	}
	seq, err := rd.Incr(context.Background(), fmt.Sprintf("event:%d:ticket_seq", eventId)).Result()
	if err != nil {
		log.Printf("[sequence] Error reading counter for event %d: %s\n", eventId, err.Error())
		return LocalTicketNumber()
	}
	return fmt.Sprintf("TKT-%d-%06d", eventId, seq)
}

// LocalTicketNumber derives a ticket number from the current date and a short
// random suffix. Uniqueness is best-effort only.
func LocalTicketNumber() string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Sprintf("TKT-%s-%06d", time.Now().Format("20060102"), time.Now().UnixNano()%1_000_000)
	}
	return fmt.Sprintf("TKT-%s-%s", time.Now().Format("20060102"), hex.EncodeToString(suffix))
}
