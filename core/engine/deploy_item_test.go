package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/clydemeng/deploykit/core"
	"github.com/clydemeng/deploykit/types"
)

func version(v uint32) *types.ContractVersion { return &v }

func testAccount(namedKeys types.NamedKeys) *core.Account {
	return core.NewAccount(
		types.BytesToAccountHash([]byte{0x01}),
		namedKeys,
		types.URefKey([types.HashLength]byte{0x02}, 0o7),
	)
}

func sampleArgs(t *testing.T) []byte {
	t.Helper()
	return types.NewRuntimeArgs().
		Insert("amount", types.U256(uint256.NewInt(1000))).
		Insert("purpose", types.String("bond")).
		Encode()
}

func allVariants(args []byte) []ExecutableDeployItem {
	return []ExecutableDeployItem{
		ModuleBytes{ModuleBytes: []byte{0x01}, Args: args},
		StoredContractByHash{Hash: types.BytesToContractHash([]byte{0xaa}), EntryPoint: "transfer", Args: args},
		StoredContractByName{Name: "pos", EntryPoint: "bond", Args: args},
		StoredVersionedContractByName{Name: "pos", EntryPoint: "bond", Args: args},
		StoredVersionedContractByHash{Hash: types.BytesToContractPackageHash([]byte{0xbb}), Version: version(3), EntryPoint: "bond", Args: args},
		Transfer{Args: args},
	}
}

func TestEntryPointName(t *testing.T) {
	require.Equal(t, types.DefaultEntryPoint, ModuleBytes{ModuleBytes: []byte{1}}.EntryPointName())
	require.Equal(t, types.DefaultEntryPoint, Transfer{}.EntryPointName())

	require.Equal(t, "transfer", StoredContractByHash{EntryPoint: "transfer"}.EntryPointName())
	require.Equal(t, "bond", StoredContractByName{EntryPoint: "bond"}.EntryPointName())
	// carried strings come back verbatim, no normalization
	require.Equal(t, "Bond ", StoredVersionedContractByName{EntryPoint: "Bond "}.EntryPointName())
	require.Equal(t, "unbond", StoredVersionedContractByHash{EntryPoint: "unbond"}.EntryPointName())
}

func TestContractKeyNoneForSelfContainedItems(t *testing.T) {
	acct := testAccount(nil)
	for _, item := range []ExecutableDeployItem{ModuleBytes{ModuleBytes: []byte{1}}, Transfer{}} {
		key, err := item.ContractKey(acct)
		require.NoError(t, err)
		require.Nil(t, key)
	}
}

func TestContractKeyByHashNeverConsultsAccount(t *testing.T) {
	hash := types.BytesToContractHash([]byte{0xde, 0xad})
	item := StoredContractByHash{Hash: hash, EntryPoint: "transfer"}

	// nil lookup: a direct-addressed item must not touch it
	key, err := item.ContractKey(nil)
	require.NoError(t, err)
	require.NotNil(t, key)
	require.True(t, types.HashKey(hash).Equal(*key))

	pkg := types.BytesToContractPackageHash([]byte{0xbe, 0xef})
	vkey, err := StoredVersionedContractByHash{Hash: pkg, EntryPoint: "e"}.ContractKey(nil)
	require.NoError(t, err)
	require.True(t, types.HashKey(pkg).Equal(*vkey))
}

func TestContractKeyByNameFound(t *testing.T) {
	want := types.HashKey([types.HashLength]byte{0x11})
	acct := testAccount(types.NamedKeys{"pos": want})

	for _, item := range []ExecutableDeployItem{
		StoredContractByName{Name: "pos", EntryPoint: "bond"},
		StoredVersionedContractByName{Name: "pos", EntryPoint: "bond"},
	} {
		key, err := item.ContractKey(acct)
		require.NoError(t, err)
		require.NotNil(t, key)
		require.True(t, want.Equal(*key))
	}
}

func TestContractKeyByNameMissing(t *testing.T) {
	acct := testAccount(types.NamedKeys{"mint": types.HashKey([types.HashLength]byte{0x22})})

	for _, item := range []ExecutableDeployItem{
		StoredContractByName{Name: "pos", EntryPoint: "bond"},
		StoredVersionedContractByName{Name: "pos", EntryPoint: "bond"},
	} {
		key, err := item.ContractKey(acct)
		require.Nil(t, key)
		var notFound *NamedKeyNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "pos", notFound.Name)
	}
}

func TestDecodeArgsRoundTrip(t *testing.T) {
	want := types.NewRuntimeArgs().
		Insert("amount", types.U256(uint256.NewInt(1000))).
		Insert("purpose", types.String("bond"))

	for _, item := range allVariants(want.Encode()) {
		got, err := item.DecodeArgs()
		require.NoError(t, err, "variant %d", item.Tag())
		require.True(t, want.Equal(got), "variant %d", item.Tag())
	}
}

func TestDecodeArgsTruncated(t *testing.T) {
	args := sampleArgs(t)
	truncated := args[:len(args)-1]

	for _, item := range allVariants(truncated) {
		_, err := item.DecodeArgs()
		var decodeErr *ArgsDecodeError
		require.ErrorAs(t, err, &decodeErr, "variant %d", item.Tag())
	}
}

func TestDecodeArgsEmptySet(t *testing.T) {
	item := ModuleBytes{ModuleBytes: []byte{0x01}, Args: types.NewRuntimeArgs().Encode()}
	require.Equal(t, types.DefaultEntryPoint, item.EntryPointName())

	key, err := item.ContractKey(testAccount(nil))
	require.NoError(t, err)
	require.Nil(t, key)

	args, err := item.DecodeArgs()
	require.NoError(t, err)
	require.Zero(t, args.Len())
}

func TestStringSummaries(t *testing.T) {
	args := []byte{0x0a, 0x0b}

	s := ModuleBytes{ModuleBytes: []byte{0x01, 0x02, 0x03}, Args: args}.String()
	require.Equal(t, "execute module bytes 010203, args 0a0b", s)

	s = StoredContractByHash{Hash: types.BytesToContractHash([]byte{0xaa}), EntryPoint: "transfer", Args: args}.String()
	require.Contains(t, s, "execute stored contract by hash 0x")
	require.Contains(t, s, "entry point transfer")

	s = StoredContractByName{Name: "pos", EntryPoint: "bond", Args: args}.String()
	require.Equal(t, "execute stored contract by name pos, entry point bond, args 0a0b", s)

	s = Transfer{Args: args}.String()
	require.Equal(t, "execute transfer args 0a0b", s)
}

func TestStringVersionRendering(t *testing.T) {
	latest := StoredVersionedContractByName{Name: "pos", EntryPoint: "bond"}
	require.Contains(t, latest.String(), "latest version")
	require.NotContains(t, latest.String(), "version 0")

	pinned := StoredVersionedContractByName{Name: "pos", Version: version(3), EntryPoint: "bond"}
	require.Contains(t, pinned.String(), "version 3")

	byHash := StoredVersionedContractByHash{Hash: types.BytesToContractPackageHash([]byte{0xcc}), EntryPoint: "bond"}
	require.Contains(t, byHash.String(), "execute stored versioned contract by hash 0x")
	require.Contains(t, byHash.String(), "latest version")
}

func TestStringTruncatesLongBuffers(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = byte(i)
	}
	s := ModuleBytes{ModuleBytes: long, Args: long}.String()
	require.Less(t, len(s), 80)
	require.Contains(t, s, "..")
}

func TestDebugStringShapes(t *testing.T) {
	d := ModuleBytes{ModuleBytes: []byte{1, 2, 3}, Args: []byte{0xff}}.DebugString()
	require.Equal(t, "ModuleBytes{module_bytes: [3 bytes], args: 0xff}", d)

	d = StoredVersionedContractByName{Name: "pos", EntryPoint: "bond", Args: []byte{0x01}}.DebugString()
	require.Contains(t, d, `name: "pos"`)
	require.Contains(t, d, "version: latest")

	d = StoredVersionedContractByHash{Version: version(7)}.DebugString()
	require.Contains(t, d, "version: 7")

	big := make([]byte, 4096)
	d = Transfer{Args: big}.DebugString()
	require.Contains(t, d, "[4096 bytes]")
	require.False(t, strings.Contains(d, "0x00000000"))
}

func TestNamedKeyNotFoundErrorMessage(t *testing.T) {
	err := error(&NamedKeyNotFoundError{Name: "pos"})
	require.Equal(t, `named key "pos" not found`, err.Error())
	require.False(t, errors.Is(err, &ArgsDecodeError{}))
}
