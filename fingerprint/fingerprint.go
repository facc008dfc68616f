// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NewSalt creates a random hex salt of the specified byte length
func NewSalt(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Voter creates a one-way fingerprint of a voter id for log lines.
// Voter ids are usually email addresses and never appear in logs verbatim.
func Voter(voterID, salt string) string {
	return hash("voter:"+voterID, salt)
}

// IP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func IP(ip, salt string) string {
	return hash("ip:"+ip, salt)
}

func hash(value, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(value))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough to correlate log lines
	return hex.EncodeToString(sum[:8])
}
