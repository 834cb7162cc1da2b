package change

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashPair holds the two digests derived from one settings object: the
// business hash covers only the tracked policy keys, the full hash covers
// everything except the excluded volatile keys.
type HashPair struct {
	BusinessHash string `json:"businessHash"`
	FullHash     string `json:"fullHash"`
}

// ComputePair composes projection and hashing for one settings object.
// It is deterministic and independent of map insertion order.
func ComputePair(settings Settings, trackedKeys, excludedKeys []string) (HashPair, error) {
	business, err := HashProjection(ProjectBusiness(settings, trackedKeys))
	if err != nil {
		return HashPair{}, fmt.Errorf("business projection: %w", err)
	}
	full, err := HashProjection(ProjectFull(settings, excludedKeys))
	if err != nil {
		return HashPair{}, fmt.Errorf("full projection: %w", err)
	}
	return HashPair{BusinessHash: business, FullHash: full}, nil
}

// HashProjection returns the hex SHA-256 of the projection's canonical
// serialization. Equal projections always produce equal digests; this is a
// change detector, not a security boundary.
func HashProjection(p Projection) (string, error) {
	raw, err := canonicalJSON(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// canonicalJSON serializes a projection as a JSON object in field order.
// The projection is already sorted, so the bytes are stable for equal input.
func canonicalJSON(p Projection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", field.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("encode value for %q: %w", field.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
