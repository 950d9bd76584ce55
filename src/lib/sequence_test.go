package lib

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalTicketNumberFormat(t *testing.T) {
	number := LocalTicketNumber()

	pattern := fmt.Sprintf(`^TKT-%s-[0-9a-f]{6}$`, time.Now().Format("20060102"))
	assert.Regexp(t, regexp.MustCompile(pattern), number)
}

func TestLocalTicketNumberUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 20 {
		seen[LocalTicketNumber()] = true
	}
	assert.Greater(t, len(seen), 1)
}
