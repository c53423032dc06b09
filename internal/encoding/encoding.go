// Package encoding provides the minimal protobuf wire helpers used by the
// hand-written Marshal/Unmarshal methods of the core IBC types. Field numbers
// follow the ibc.core.*.v1 proto definitions so that encoded bytes are
// interchangeable with other IBC implementations.
package encoding

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshaler is implemented by every type that can be embedded as a nested
// message.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler is the decoding counterpart of Marshaler.
type Unmarshaler interface {
	Unmarshal(bz []byte) error
}

// Encoder appends protobuf fields in field number order. Zero scalar values
// are omitted, matching proto3 semantics.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes writes a length-delimited field if b is non-empty.
func (e *Encoder) Bytes(num protowire.Number, b []byte) *Encoder {
	if len(b) == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, b)
	return e
}

// String writes a string field if s is non-empty.
func (e *Encoder) String(num protowire.Number, s string) *Encoder {
	if s == "" {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendString(e.buf, s)
	return e
}

// Strings writes a repeated string field. Empty elements are kept.
func (e *Encoder) Strings(num protowire.Number, ss []string) *Encoder {
	for _, s := range ss {
		e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
		e.buf = protowire.AppendString(e.buf, s)
	}
	return e
}

// Uint64 writes a varint field if v is non-zero.
func (e *Encoder) Uint64(num protowire.Number, v uint64) *Encoder {
	if v == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, v)
	return e
}

// Enum writes an enum field if v is non-zero.
func (e *Encoder) Enum(num protowire.Number, v int32) *Encoder {
	return e.Uint64(num, uint64(v))
}

// Message writes a nested message. Non-nullable submessages are always
// written, even when they encode to zero bytes.
func (e *Encoder) Message(num protowire.Number, m Marshaler) *Encoder {
	if e.err != nil {
		return e
	}
	bz, err := m.Marshal()
	if err != nil {
		e.err = err
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, bz)
	return e
}

// OptionalMessage writes a nested message only when present is true.
func (e *Encoder) OptionalMessage(num protowire.Number, m Marshaler, present bool) *Encoder {
	if !present {
		return e
	}
	return e.Message(num, m)
}

// Finish returns the accumulated bytes or the first error encountered.
func (e *Encoder) Finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.buf == nil {
		return []byte{}, nil
	}
	return e.buf, nil
}

// Field is a single decoded protobuf field.
type Field struct {
	Num  protowire.Number
	Type protowire.Type

	varint uint64
	bytes  []byte
}

// AsUint64 returns the varint value of the field.
func (f Field) AsUint64() (uint64, error) {
	if f.Type != protowire.VarintType {
		return 0, fmt.Errorf("field %d: expected varint wire type, got %d", f.Num, f.Type)
	}
	return f.varint, nil
}

// AsInt32 returns the varint value of the field truncated to an int32, as
// protobuf does for enums.
func (f Field) AsInt32() (int32, error) {
	v, err := f.AsUint64()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// AsBytes returns a copy of the length-delimited payload of the field.
func (f Field) AsBytes() ([]byte, error) {
	if f.Type != protowire.BytesType {
		return nil, fmt.Errorf("field %d: expected bytes wire type, got %d", f.Num, f.Type)
	}
	return append([]byte(nil), f.bytes...), nil
}

// AsString returns the length-delimited payload of the field as a string.
func (f Field) AsString() (string, error) {
	if f.Type != protowire.BytesType {
		return "", fmt.Errorf("field %d: expected bytes wire type, got %d", f.Num, f.Type)
	}
	return string(f.bytes), nil
}

// Into decodes the length-delimited payload of the field into m.
func (f Field) Into(m Unmarshaler) error {
	if f.Type != protowire.BytesType {
		return fmt.Errorf("field %d: expected bytes wire type, got %d", f.Num, f.Type)
	}
	return m.Unmarshal(f.bytes)
}

// Range walks every field in bz in order and calls fn for each. Unknown
// fields are passed to fn as well and may simply be ignored by the caller.
func Range(bz []byte, fn func(f Field) error) error {
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return protowire.ParseError(n)
		}
		bz = bz[n:]

		f := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(bz)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(bz)
		default:
			n = protowire.ConsumeFieldValue(num, typ, bz)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		bz = bz[n:]

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// MustMarshal marshals m and panics on error. It is intended for values
// whose encoding cannot fail.
func MustMarshal(m Marshaler) []byte {
	bz, err := m.Marshal()
	if err != nil {
		panic(err)
	}
	return bz
}
