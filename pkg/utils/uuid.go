package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

func shortCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// GenerateDocumentNo builds a number like PREFIX-YYYYMMDD-XXXXXXXX
func GenerateDocumentNo(prefix string, at time.Time) string {
	return prefix + "-" + at.Format("20060102") + "-" + shortCode()
}

// GeneratePRNumber generates a purchase request number
func GeneratePRNumber(at time.Time) string {
	return GenerateDocumentNo("PR", at)
}

// GenerateInvoiceNo generates a sales invoice number
func GenerateInvoiceNo(at time.Time) string {
	return GenerateDocumentNo("INV", at)
}
