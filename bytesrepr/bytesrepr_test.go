package bytesrepr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripScalars(t *testing.T) {
	w := &Writer{}
	w.WriteU8(0xab)
	w.WriteBool(true)
	w.WriteU32(0xdeadbeef)
	w.WriteU64(1 << 40)
	w.WriteI32(-7)
	w.WriteI64(-1)

	r := NewReader(w.Bytes())
	u8, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xab), u8)
	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)
	u32, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), u32)
	u64, err := r.ReadU64()
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), u64)
	i32, err := r.ReadI32()
	require.NoError(t, err)
	require.Equal(t, int32(-7), i32)
	i64, err := r.ReadI64()
	require.NoError(t, err)
	require.Equal(t, int64(-1), i64)
	require.NoError(t, r.Finish())
}

func TestLittleEndianLayout(t *testing.T) {
	w := &Writer{}
	w.WriteU32(0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, w.Bytes())
}

func TestStringAndBytes(t *testing.T) {
	w := &Writer{}
	w.WriteString("transfer")
	w.WriteBytes([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "transfer", s)
	b, err := r.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)
	require.NoError(t, r.Finish())
}

func TestInvalidUTF8String(t *testing.T) {
	w := &Writer{}
	w.WriteBytes([]byte{0xff, 0xfe})
	_, err := NewReader(w.Bytes()).ReadString()
	require.ErrorIs(t, err, ErrFormatting)
}

func TestOptionU32(t *testing.T) {
	v := uint32(3)
	for _, p := range []*uint32{nil, &v} {
		w := &Writer{}
		w.WriteOptionU32(p)
		got, err := NewReader(w.Bytes()).ReadOptionU32()
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	_, err := NewReader([]byte{2}).ReadOptionU32()
	require.ErrorIs(t, err, ErrFormatting)
}

func TestTruncatedInput(t *testing.T) {
	w := &Writer{}
	w.WriteBytes([]byte{1, 2, 3, 4})
	enc := w.Bytes()

	for i := 0; i < len(enc); i++ {
		r := NewReader(enc[:i])
		if _, err := r.ReadBytes(); err == nil {
			t.Fatalf("decode of %d-byte truncation should fail", i)
		}
	}
}

func TestLeftOverBytes(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.ReadU8()
	require.NoError(t, err)
	require.ErrorIs(t, r.Finish(), ErrLeftOverBytes)
}

func TestInvalidBoolByte(t *testing.T) {
	_, err := NewReader([]byte{7}).ReadBool()
	require.ErrorIs(t, err, ErrFormatting)
}
