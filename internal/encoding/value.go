package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"keyward/internal/domain"
)

// Kind enumerates the argument types the registry's entry points accept.
type Kind byte

const (
	KindBool Kind = iota + 1
	KindU8
	KindU32
	KindU64
	KindU256
	KindBytes
	KindIdentity
	KindIdentityList
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU256:
		return "u256"
	case KindBytes:
		return "bytes"
	case KindIdentity:
		return "identity"
	case KindIdentityList:
		return "identity list"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// Value is one typed argument in its canonical byte form.
type Value struct {
	kind Kind
	raw  []byte
}

func (v Value) Kind() Kind    { return v.kind }
func (v Value) Bytes() []byte { return v.raw }

// Bool encodes a boolean as a single byte.
func Bool(b bool) Value {
	raw := []byte{0}
	if b {
		raw[0] = 1
	}
	return Value{kind: KindBool, raw: raw}
}

// U8 encodes a small unsigned integer. Values above 255 do not fit the
// declared width and fail with ErrSchemaMismatch.
func U8(v uint) (Value, error) {
	if v > math.MaxUint8 {
		return Value{}, fmt.Errorf("value %d exceeds u8: %w", v, domain.ErrSchemaMismatch)
	}
	return Value{kind: KindU8, raw: []byte{byte(v)}}, nil
}

// U32 encodes a 32-bit unsigned integer, little-endian.
func U32(v uint32) Value {
	raw := make([]byte, 4)
	binary.LittleEndian.PutUint32(raw, v)
	return Value{kind: KindU32, raw: raw}
}

// U64 encodes a 64-bit unsigned integer, little-endian.
func U64(v uint64) Value {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, v)
	return Value{kind: KindU64, raw: raw}
}

// U256 encodes a recovery id as one length byte followed by the minimal
// little-endian byte form. The id is already bounded to 256 bits by parsing.
func U256(id domain.RecoveryID) Value {
	be := id.BigEndian()
	raw := make([]byte, 1+len(be))
	raw[0] = byte(len(be))
	for i, b := range be {
		raw[len(raw)-1-i] = b
	}
	return Value{kind: KindU256, raw: raw}
}

// RawBytes encodes an uninterpreted byte string with a u32 length prefix.
func RawBytes(b []byte) Value {
	raw := make([]byte, 4, 4+len(b))
	binary.LittleEndian.PutUint32(raw, uint32(len(b)))
	return Value{kind: KindBytes, raw: append(raw, b...)}
}

// Identity encodes a fixed-width account identity as its raw 32 bytes.
func Identity(id domain.AccountID) Value {
	return Value{kind: KindIdentity, raw: id.Slice()}
}

// IdentityList encodes an ordered identity sequence: a u32 count followed by
// each identity's raw 32 bytes, in order.
func IdentityList(ids []domain.AccountID) Value {
	raw := make([]byte, 4, 4+len(ids)*32)
	binary.LittleEndian.PutUint32(raw, uint32(len(ids)))
	for _, id := range ids {
		raw = append(raw, id.Slice()...)
	}
	return Value{kind: KindIdentityList, raw: raw}
}

// Arg is a named argument to one entry point.
type Arg struct {
	Name  string
	Value Value
}

// Args is the ordered argument set for one call.
type Args []Arg

// Validate checks the set against the schema: same length, same names in
// the same order, same kinds. Any deviation is a schema mismatch.
func (a Args) Validate(s Schema) error {
	if len(a) != len(s.Fields) {
		return fmt.Errorf("%s: want %d args, have %d: %w",
			s.EntryPoint, len(s.Fields), len(a), domain.ErrSchemaMismatch)
	}
	for i, f := range s.Fields {
		if a[i].Name != f.Name {
			return fmt.Errorf("%s: arg %d is %q, want %q: %w",
				s.EntryPoint, i, a[i].Name, f.Name, domain.ErrSchemaMismatch)
		}
		if a[i].Value.Kind() != f.Kind {
			return fmt.Errorf("%s: arg %q is %s, want %s: %w",
				s.EntryPoint, f.Name, a[i].Value.Kind(), f.Kind, domain.ErrSchemaMismatch)
		}
	}
	return nil
}

// Encode produces the wire form of the argument set: a u32 count, then for
// each argument its length-prefixed name, length-prefixed payload, and kind
// tag.
func (a Args) Encode() []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(len(a)))
	for _, arg := range a {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(arg.Name)))
		out = append(out, arg.Name...)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(arg.Value.raw)))
		out = append(out, arg.Value.raw...)
		out = append(out, byte(arg.Value.kind))
	}
	return out
}
