// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import "testing"

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

func TestNewSalt(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"32 bytes", 32, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salt, err := NewSalt(tt.byteLen)
			if err != nil {
				t.Fatalf("NewSalt() error = %v", err)
			}
			if len(salt) != tt.wantLen {
				t.Errorf("NewSalt() length = %d, want %d", len(salt), tt.wantLen)
			}
			if !isHex(salt) {
				t.Errorf("NewSalt() = %q, not hex", salt)
			}
		})
	}

	// Should be unique
	a, _ := NewSalt(16)
	b, _ := NewSalt(16)
	if a == b {
		t.Error("NewSalt() generated duplicate salts")
	}
}

func TestVoter(t *testing.T) {
	hash := Voter("hershiv.haria@gmail.com", "log-salt")

	// Should be 16 hex characters (8 bytes * 2)
	if len(hash) != 16 {
		t.Errorf("Voter() length = %d, want 16", len(hash))
	}
	if !isHex(hash) {
		t.Errorf("Voter() = %q, not hex", hash)
	}

	// Should be deterministic
	if Voter("hershiv.haria@gmail.com", "log-salt") != hash {
		t.Error("Voter() is not deterministic")
	}

	// Salt and input both matter
	if Voter("hershiv.haria@gmail.com", "other-salt") == hash {
		t.Error("Voter() ignored the salt")
	}
	if Voter("someone@example.com", "log-salt") == hash {
		t.Error("Voter() produced same hash for different voters")
	}
}

func TestIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", "ip-salt"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "ip-salt"},
		{"localhost", "127.0.0.1", "ip-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := IP(tt.ip, tt.salt)

			if len(hash) != 16 {
				t.Errorf("IP() length = %d, want 16", len(hash))
			}
			if !isHex(hash) {
				t.Errorf("IP() = %q, not hex", hash)
			}
			if IP(tt.ip, tt.salt) != hash {
				t.Error("IP() is not deterministic")
			}
		})
	}

	// Different IPs should produce different hashes
	if IP("192.168.1.1", "salt") == IP("192.168.1.2", "salt") {
		t.Error("IP() produced same hash for different IPs")
	}

	// Voter ids and addresses live in separate domains
	if IP("10.0.0.1", "salt") == Voter("10.0.0.1", "salt") {
		t.Error("IP() and Voter() collide on the same input")
	}
}
