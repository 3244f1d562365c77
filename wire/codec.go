// Package wire serializes predicate trees for transport between a query
// engine and a data source.
//
// Two encodings share one node layout:
//
//	data, err := wire.MarshalJSON(p)   // readable, for logs and configs
//	p, err := wire.ParseJSON(data)
//
//	codec, err := wire.NewCodec()      // msgpack + zstd, for hot paths
//	defer codec.Close()
//	data, err := codec.Encode(p)
//	p, err := codec.Decode(data)
//
// JSON nodes look like:
//
//	{"type": "and",
//	 "left":  {"type": "equal_to", "attribute": "a", "value": {"kind": "int", "int": 1}},
//	 "right": {"type": "in", "attribute": "b", "values": [{"kind": "string", "string": "x"}]}}
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/pushdown-go/predicate"
)

// MarshalJSON encodes p as JSON.
func MarshalJSON(p predicate.Predicate) ([]byte, error) {
	n, err := toNode(p)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to encode JSON: %w", err)
	}
	return data, nil
}

// ParseJSON decodes a predicate from JSON. Empty input yields a nil
// predicate and no error.
func ParseJSON(data []byte) (predicate.Predicate, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var n node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("wire: invalid JSON: %w", err)
	}
	return fromNode(&n)
}

// Codec encodes predicates as zstd-compressed msgpack.
// Create once and reuse; Encode and Decode are safe for concurrent use.
// Caller must call Close() when done.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec creates a Codec using zstd SpeedDefault.
func NewCodec() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("wire: failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("wire: failed to create zstd decoder: %w", err)
	}
	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Encode serializes p.
func (c *Codec) Encode(p predicate.Predicate) ([]byte, error) {
	n, err := toNode(p)
	if err != nil {
		return nil, err
	}
	raw, err := msgpack.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to encode MessagePack: %w", err)
	}
	// EncodeAll is goroutine-safe
	return c.encoder.EncodeAll(raw, make([]byte, 0, len(raw))), nil
}

// Decode deserializes a predicate produced by Encode.
func (c *Codec) Decode(data []byte) (predicate.Predicate, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("wire: empty payload")
	}
	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("wire: failed to decompress: %w", err)
	}
	var n node
	if err := msgpack.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("wire: failed to decode MessagePack: %w", err)
	}
	return fromNode(&n)
}

// Close releases the zstd encoder and decoder.
func (c *Codec) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}
