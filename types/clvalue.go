package types

import (
	"bytes"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/clydemeng/deploykit/bytesrepr"
)

// CLTypeTag identifies the type of a CLValue. Wire values are stable and
// never renumbered; decoding rejects tags outside the known set.
type CLTypeTag uint8

const (
	CLTypeBool   CLTypeTag = 0
	CLTypeI32    CLTypeTag = 1
	CLTypeI64    CLTypeTag = 2
	CLTypeU8     CLTypeTag = 3
	CLTypeU32    CLTypeTag = 4
	CLTypeU64    CLTypeTag = 5
	CLTypeU256   CLTypeTag = 7
	CLTypeUnit   CLTypeTag = 9
	CLTypeString CLTypeTag = 10
	CLTypeKey    CLTypeTag = 11
)

// String returns a human-readable name for the type tag.
func (t CLTypeTag) String() string {
	switch t {
	case CLTypeBool:
		return "bool"
	case CLTypeI32:
		return "i32"
	case CLTypeI64:
		return "i64"
	case CLTypeU8:
		return "u8"
	case CLTypeU32:
		return "u32"
	case CLTypeU64:
		return "u64"
	case CLTypeU256:
		return "u256"
	case CLTypeUnit:
		return "unit"
	case CLTypeString:
		return "string"
	case CLTypeKey:
		return "key"
	}
	return "unknown"
}

func validCLTypeTag(t CLTypeTag) bool {
	switch t {
	case CLTypeBool, CLTypeI32, CLTypeI64, CLTypeU8, CLTypeU32, CLTypeU64,
		CLTypeU256, CLTypeUnit, CLTypeString, CLTypeKey:
		return true
	}
	return false
}

// CLValue is a typed runtime value: a type tag plus the value's own binary
// encoding. Values are constructed already encoded and parsed on access, so
// a CLValue is cheap to copy, compare and hash regardless of its type.
type CLValue struct {
	Type CLTypeTag
	Data []byte
}

func Bool(v bool) CLValue {
	w := &bytesrepr.Writer{}
	w.WriteBool(v)
	return CLValue{Type: CLTypeBool, Data: w.Bytes()}
}

func I32(v int32) CLValue {
	w := &bytesrepr.Writer{}
	w.WriteI32(v)
	return CLValue{Type: CLTypeI32, Data: w.Bytes()}
}

func I64(v int64) CLValue {
	w := &bytesrepr.Writer{}
	w.WriteI64(v)
	return CLValue{Type: CLTypeI64, Data: w.Bytes()}
}

func U8(v uint8) CLValue {
	return CLValue{Type: CLTypeU8, Data: []byte{v}}
}

func U32(v uint32) CLValue {
	w := &bytesrepr.Writer{}
	w.WriteU32(v)
	return CLValue{Type: CLTypeU32, Data: w.Bytes()}
}

func U64(v uint64) CLValue {
	w := &bytesrepr.Writer{}
	w.WriteU64(v)
	return CLValue{Type: CLTypeU64, Data: w.Bytes()}
}

// U256 encodes v as one length byte followed by the minimal little-endian
// byte run, so small amounts stay small on the wire.
func U256(v *uint256.Int) CLValue {
	be := v.Bytes() // big-endian, minimal
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return CLValue{Type: CLTypeU256, Data: append([]byte{byte(len(le))}, le...)}
}

func Unit() CLValue {
	return CLValue{Type: CLTypeUnit}
}

func String(v string) CLValue {
	w := &bytesrepr.Writer{}
	w.WriteString(v)
	return CLValue{Type: CLTypeString, Data: w.Bytes()}
}

func KeyValue(k Key) CLValue {
	w := &bytesrepr.Writer{}
	k.ToBytes(w)
	return CLValue{Type: CLTypeKey, Data: w.Bytes()}
}

// typedReader checks the tag and returns a reader over the value bytes.
func (v CLValue) typedReader(want CLTypeTag) (*bytesrepr.Reader, error) {
	if v.Type != want {
		return nil, fmt.Errorf("clvalue: have %s, want %s", v.Type, want)
	}
	return bytesrepr.NewReader(v.Data), nil
}

func (v CLValue) AsBool() (bool, error) {
	r, err := v.typedReader(CLTypeBool)
	if err != nil {
		return false, err
	}
	out, err := r.ReadBool()
	if err != nil {
		return false, err
	}
	return out, r.Finish()
}

func (v CLValue) AsI32() (int32, error) {
	r, err := v.typedReader(CLTypeI32)
	if err != nil {
		return 0, err
	}
	out, err := r.ReadI32()
	if err != nil {
		return 0, err
	}
	return out, r.Finish()
}

func (v CLValue) AsI64() (int64, error) {
	r, err := v.typedReader(CLTypeI64)
	if err != nil {
		return 0, err
	}
	out, err := r.ReadI64()
	if err != nil {
		return 0, err
	}
	return out, r.Finish()
}

func (v CLValue) AsU8() (uint8, error) {
	r, err := v.typedReader(CLTypeU8)
	if err != nil {
		return 0, err
	}
	out, err := r.ReadU8()
	if err != nil {
		return 0, err
	}
	return out, r.Finish()
}

func (v CLValue) AsU32() (uint32, error) {
	r, err := v.typedReader(CLTypeU32)
	if err != nil {
		return 0, err
	}
	out, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return out, r.Finish()
}

func (v CLValue) AsU64() (uint64, error) {
	r, err := v.typedReader(CLTypeU64)
	if err != nil {
		return 0, err
	}
	out, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return out, r.Finish()
}

func (v CLValue) AsU256() (*uint256.Int, error) {
	r, err := v.typedReader(CLTypeU256)
	if err != nil {
		return nil, err
	}
	n, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if n > 32 {
		return nil, fmt.Errorf("%w: u256 length %d", bytesrepr.ErrFormatting, n)
	}
	le, err := r.ReadRaw(int(n))
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	return new(uint256.Int).SetBytes(be), nil
}

func (v CLValue) AsString() (string, error) {
	r, err := v.typedReader(CLTypeString)
	if err != nil {
		return "", err
	}
	out, err := r.ReadString()
	if err != nil {
		return "", err
	}
	return out, r.Finish()
}

func (v CLValue) AsKey() (Key, error) {
	r, err := v.typedReader(CLTypeKey)
	if err != nil {
		return Key{}, err
	}
	out, err := KeyFromBytes(r)
	if err != nil {
		return Key{}, err
	}
	return out, r.Finish()
}

// Equal reports whether two values have the same type and encoding.
func (v CLValue) Equal(other CLValue) bool {
	return v.Type == other.Type && bytes.Equal(v.Data, other.Data)
}

// ToBytes appends the wire form: u32-length-prefixed value bytes followed by
// the type tag.
func (v CLValue) ToBytes(w *bytesrepr.Writer) {
	w.WriteBytes(v.Data)
	w.WriteU8(uint8(v.Type))
}

// CLValueFromBytes decodes one CLValue, rejecting unknown type tags.
func CLValueFromBytes(r *bytesrepr.Reader) (CLValue, error) {
	data, err := r.ReadBytes()
	if err != nil {
		return CLValue{}, err
	}
	tag, err := r.ReadU8()
	if err != nil {
		return CLValue{}, err
	}
	if !validCLTypeTag(CLTypeTag(tag)) {
		return CLValue{}, fmt.Errorf("%w: unknown cl type tag %#x", bytesrepr.ErrFormatting, tag)
	}
	return CLValue{Type: CLTypeTag(tag), Data: data}, nil
}
