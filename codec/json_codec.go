package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"litecoin-rpc/message"
)

// JSONCodec encodes JSON-RPC 1.0 envelopes.
// Parameters encode themselves according to their wire type, so the request
// body carries exactly the numbers, booleans and strings Coerce decided on.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v any) ([]byte, error) {
	switch msg := v.(type) {
	case *message.Request:
		if msg.Method == "" {
			return nil, errors.New("JSONCodec: request without method")
		}
	case *message.Response:
		if msg.Fault == nil && msg.Result == nil {
			// JSON-RPC 1.0 wants an explicit null result.
			cp := *msg
			cp.Result = json.RawMessage("null")
			return json.Marshal(&cp)
		}
	}
	return json.Marshal(v)
}

func (c *JSONCodec) Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("JSONCodec: malformed body: %w", err)
	}
	return nil
}

func (c *JSONCodec) Type() CodecType {
	return CodecTypeJSON
}

func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// DecodeValue turns a raw result into plain Go values, recursively:
// whole numbers become int64, other numbers float64, objects map[string]any,
// arrays []any, and null nil.
func DecodeValue(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("JSONCodec: malformed result: %w", err)
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case []any:
		for i := range x {
			x[i] = normalize(x[i])
		}
		return x
	case map[string]any:
		for k, val := range x {
			x[k] = normalize(val)
		}
		return x
	default:
		return v
	}
}
