package config

import (
	"fmt"
	"os"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// GeneralAdmissionName is the reserved ticket type name materialized from an
// event's flat base price. Looked up by name within the event, never recreated.
const GeneralAdmissionName = "General Admission"

// ProcessingGuardTTL bounds how long an order id may stay marked in-flight
// before the guard force-releases it. A safety net against a crashed holder,
// not a latency bound.
const ProcessingGuardTTL = 30 * time.Second

// PriceMatchTolerance is the maximum difference between an order total and a
// reconstructed selection's sum for the two to be considered equal.
const PriceMatchTolerance = 0.01
