package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"

	"go.trai.ch/zerr"
)

// MaxMetadataSize is the maximum number of key-value pairs a Metadata may hold.
const MaxMetadataSize = 8

// Metadata is an immutable set of at most MaxMetadataSize scalar key-value
// pairs attached to a Manifest or Snapshot. Values are nil, bool, string or
// float64; integer inputs are stored as float64 so that a JSON round-trip is
// lossless.
type Metadata struct {
	entries map[string]any
}

// NewMetadata validates and copies the given map.
func NewMetadata(values map[string]any) (Metadata, error) {
	b := NewMetadataBuilder()
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if err := b.Set(key, values[key]); err != nil {
			return Metadata{}, err
		}
	}
	return b.Build(), nil
}

// MustMetadata is like NewMetadata but panics on error.
func MustMetadata(values map[string]any) Metadata {
	m, err := NewMetadata(values)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of entries.
func (m Metadata) Len() int {
	return len(m.entries)
}

// IsZero reports whether the metadata has no entries. Empty metadata is
// omitted from the wire format.
func (m Metadata) IsZero() bool {
	return len(m.entries) == 0
}

// Get returns the value stored under key.
func (m Metadata) Get(key string) (any, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (m Metadata) Keys() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// MarshalJSON encodes the metadata as a flat JSON object.
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m.entries == nil {
		return []byte("{}"), nil
	}
	return marshalJSON(m.entries)
}

// UnmarshalJSON decodes a flat JSON object, enforcing the size bound.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMetadata(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MetadataBuilder accumulates metadata entries and rejects the entry that
// would exceed MaxMetadataSize.
type MetadataBuilder struct {
	entries map[string]any
}

// NewMetadataBuilder creates an empty builder.
func NewMetadataBuilder() *MetadataBuilder {
	return &MetadataBuilder{entries: make(map[string]any)}
}

// Set stores a scalar value. Replacing an existing key never fails on size.
func (b *MetadataBuilder) Set(key string, value any) error {
	scalar, err := normalizeScalar(value)
	if err != nil {
		return zerr.With(err, "key", key)
	}
	if _, exists := b.entries[key]; !exists && len(b.entries) == MaxMetadataSize {
		err := zerr.With(ErrMetadataTooLarge, "max", MaxMetadataSize)
		return zerr.With(err, "key", key)
	}
	b.entries[key] = scalar
	return nil
}

// Build returns an immutable Metadata holding a copy of the entries.
func (b *MetadataBuilder) Build() Metadata {
	if len(b.entries) == 0 {
		return Metadata{}
	}
	return Metadata{entries: maps.Clone(b.entries)}
}

func normalizeScalar(value any) (any, error) {
	switch v := value.(type) {
	case nil, bool, string:
		return v, nil
	case float64:
		return checkFinite(v)
	case float32:
		return checkFinite(float64(v))
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, zerr.Wrap(err, ErrInvalidMetadataValue.Error())
		}
		return checkFinite(f)
	default:
		return nil, zerr.With(ErrInvalidMetadataValue, "type", fmt.Sprintf("%T", value))
	}
}

func checkFinite(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, zerr.With(ErrInvalidMetadataValue, "value", f)
	}
	return f, nil
}
