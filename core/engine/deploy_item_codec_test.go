package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clydemeng/deploykit/bytesrepr"
	"github.com/clydemeng/deploykit/types"
)

func TestItemWireRoundTrip(t *testing.T) {
	args := sampleArgs(t)
	for _, item := range allVariants(args) {
		enc := ToBytes(item)
		require.Equal(t, uint8(item.Tag()), enc[0])

		decoded, err := DecodeItem(enc)
		require.NoError(t, err, "variant %d", item.Tag())
		require.True(t, Equal(item, decoded), "variant %d", item.Tag())
	}
}

func TestItemWireRoundTripVersionStates(t *testing.T) {
	// nil and 0 are distinct wire states and must both survive the trip
	latest := StoredVersionedContractByName{Name: "pos", EntryPoint: "bond", Args: []byte{}}
	zero := StoredVersionedContractByName{Name: "pos", Version: version(0), EntryPoint: "bond", Args: []byte{}}

	gotLatest, err := DecodeItem(ToBytes(latest))
	require.NoError(t, err)
	require.Nil(t, gotLatest.(StoredVersionedContractByName).Version)

	gotZero, err := DecodeItem(ToBytes(zero))
	require.NoError(t, err)
	require.NotNil(t, gotZero.(StoredVersionedContractByName).Version)
	require.Equal(t, types.ContractVersion(0), *gotZero.(StoredVersionedContractByName).Version)

	require.False(t, Equal(latest, zero))
}

func TestDecodeItemRejectsUnknownTag(t *testing.T) {
	for _, tag := range []byte{6, 7, 0xff} {
		_, err := DecodeItem([]byte{tag})
		require.ErrorIs(t, err, bytesrepr.ErrFormatting, "tag %d", tag)
	}
}

func TestDecodeItemRejectsTrailingBytes(t *testing.T) {
	enc := ToBytes(Transfer{Args: []byte{1}})
	_, err := DecodeItem(append(enc, 0xaa))
	require.ErrorIs(t, err, bytesrepr.ErrLeftOverBytes)
}

func TestDecodeItemTruncations(t *testing.T) {
	for _, item := range allVariants(sampleArgs(t)) {
		enc := ToBytes(item)
		for i := 1; i < len(enc); i++ {
			if _, err := DecodeItem(enc[:i]); err == nil {
				t.Fatalf("variant %d: decode of %d-byte truncation should fail", item.Tag(), i)
			}
		}
	}
}

func TestDecodeItemEmptyInput(t *testing.T) {
	_, err := DecodeItem(nil)
	require.ErrorIs(t, err, bytesrepr.ErrEarlyEndOfStream)
}
