package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainStep  = "teasim/step/v1"
	DomainTrace = "teasim/trace/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StepID computes the content-addressed ID of one trace step.
// The same (kind, detail, seq) always yields the same ID, which keeps
// recorded runs comparable across replays.
func StepID(kind, detail string, seq int64) (string, error) {
	obj := Object{
		"kind":   String(kind),
		"detail": String(detail),
		"seq":    Int(seq),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("StepID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainStep, canonical), nil
}

// TraceDigest hashes an ordered list of step IDs into one digest.
// Two runs that reached the same terminal state by the same steps share it.
func TraceDigest(stepIDs []string) (string, error) {
	arr := make(Array, len(stepIDs))
	for i, id := range stepIDs {
		arr[i] = String(id)
	}
	canonical, err := MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("TraceDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}
