package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateResetToken creates a random hex token for password resets
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateReceiptID creates a unique receipt reference with timestamp
func GenerateReceiptID() string {
	buf := make([]byte, 2)
	rand.Read(buf)
	now := time.Now()

	// Format: CRS-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := hex.EncodeToString(buf)

	return fmt.Sprintf("CRS-%s-%s-%s", datePart, timePart, randomPart)
}
