package codec

type CodecType byte

const (
	CodecTypeJSON CodecType = 0
)

// Codec serializes message envelopes for the wire.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Type() CodecType
	ContentType() string // HTTP Content-Type of the encoded body
}

// GetCodec returns the codec for codecType. JSON-RPC daemons only speak JSON,
// so every type currently resolves to JSONCodec.
func GetCodec(codecType CodecType) Codec {
	return &JSONCodec{}
}
