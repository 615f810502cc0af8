package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainRoster = "spawngen/roster/v1"
	DomainSource = "spawngen/source/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// marshalSlots encodes roster slots as a JSON array without HTML escaping.
func marshalSlots(slots []string) (string, error) {
	if slots == nil {
		slots = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(slots); err != nil {
		return "", fmt.Errorf("marshal slots: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// unmarshalSlots decodes a JSON array of roster slots.
func unmarshalSlots(data string) ([]string, error) {
	var slots []string
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil, fmt.Errorf("unmarshal slots: %w", err)
	}
	return slots, nil
}

// RosterHash returns the content hash of a roster.
func RosterHash(slots []string) (string, error) {
	data, err := marshalSlots(slots)
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainRoster, []byte(data)), nil
}

// SourceHash hashes the concatenated inputs of a run, each length-prefixed
// so input boundaries cannot shift.
func SourceHash(inputs ...io.Reader) (string, error) {
	h := sha256.New()
	h.Write([]byte(DomainSource))
	h.Write([]byte{0x00})
	for i, r := range inputs {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("source hash input %d: %w", i, err)
		}
		fmt.Fprintf(h, "%d:", len(data))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
