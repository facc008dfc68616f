// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fingerprint turns personal identifiers into stable, salted hashes
that are safe to write to logs.

# Voters

Voter ids are email addresses in practice:

	slog.Error("cast failed", "voter", fingerprint.Voter(voterID, salt))

The same voter and salt always give the same fingerprint, so an operator can
follow one voter across log lines without learning who they are.

# IP Hashing

	hash := fingerprint.IP(clientIP, salt)

Both return the first 8 bytes (16 hex chars) of an HMAC-SHA256. Voter and IP
inputs are domain-separated, so a voter id that looks like an address never
collides with that address.

# Salts

	salt, err := fingerprint.NewSalt(16)

main generates a per-process salt when LOG_SALT is not configured.
*/
package fingerprint
