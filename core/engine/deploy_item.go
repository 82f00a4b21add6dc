// Package engine defines the executable payload descriptor of a deploy: the
// closed union of ways a transaction can name the code it wants to run, and
// the operations that resolve a descriptor into a contract key, an entry
// point and a decoded argument set.
package engine

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/clydemeng/deploykit/bytesrepr"
	"github.com/clydemeng/deploykit/types"
)

// Tag is the wire discriminant of an ExecutableDeployItem variant. The
// values are stable and never renumbered.
type Tag uint8

const (
	TagModuleBytes Tag = iota
	TagStoredContractByHash
	TagStoredContractByName
	TagStoredVersionedContractByName
	TagStoredVersionedContractByHash
	TagTransfer
)

// NamedKeyLookup is the read-only capability deploy resolution needs from an
// account: a single name-to-key lookup. *core.Account satisfies it.
type NamedKeyLookup interface {
	NamedKey(name string) (types.Key, bool)
}

// ExecutableDeployItem describes how to locate and invoke the code a deploy
// wants to run. It is a closed union: the six variants in this package are
// the only implementations, and decoding rejects anything else.
//
// Values are immutable once constructed and safe to share across concurrent
// readers. Argument buffers stay opaque until DecodeArgs is called, so a
// descriptor is cheap to build, compare and hash no matter how large its
// payload is.
type ExecutableDeployItem interface {
	// Tag returns the variant's wire discriminant.
	Tag() Tag

	// EntryPointName returns the entry point this item invokes. Total and
	// infallible: module-bytes and transfer items return the implicit
	// default, everything else returns the carried name verbatim.
	EntryPointName() string

	// ContractKey resolves the item to the key of the contract or package
	// to invoke. Hash-addressed items build the key directly and cannot
	// fail; name-addressed items consult the lookup and fail with
	// *NamedKeyNotFoundError when the name is absent; module-bytes and
	// transfer items resolve to no key at all (nil, nil).
	ContractKey(lookup NamedKeyLookup) (*types.Key, error)

	// DecodeArgs decodes the item's argument buffer into the named
	// argument set. Malformed buffers fail with *ArgsDecodeError.
	DecodeArgs() (*types.RuntimeArgs, error)

	// String renders a one-line human-readable summary with byte buffers
	// shortened to a hex prefix.
	String() string

	// DebugString renders a field-by-field dump for logs, with buffers as
	// bounded hex strings or byte counts.
	DebugString() string

	// toBytes appends the variant's fields (not the tag) in wire order.
	toBytes(w *bytesrepr.Writer)

	// compareSameTag orders two items that already share a tag.
	compareSameTag(other ExecutableDeployItem) int

	sealed()
}

// ModuleBytes carries the code to run inline in the deploy itself. The
// module is invoked at the implicit default entry point.
type ModuleBytes struct {
	ModuleBytes []byte
	Args        []byte
}

// StoredContractByHash invokes a stored contract addressed directly by
// hash.
type StoredContractByHash struct {
	Hash       types.ContractHash
	EntryPoint string
	Args       []byte
}

// StoredContractByName invokes a stored contract addressed by a name in the
// executing account's namespace.
type StoredContractByName struct {
	Name       string
	EntryPoint string
	Args       []byte
}

// StoredVersionedContractByName invokes one version of a contract package
// addressed by a name in the executing account's namespace. A nil Version
// selects the highest enabled version.
type StoredVersionedContractByName struct {
	Name       string
	Version    *types.ContractVersion
	EntryPoint string
	Args       []byte
}

// StoredVersionedContractByHash invokes one version of a contract package
// addressed directly by package hash. A nil Version selects the highest
// enabled version.
type StoredVersionedContractByHash struct {
	Hash       types.ContractPackageHash
	Version    *types.ContractVersion
	EntryPoint string
	Args       []byte
}

// Transfer performs the native value transfer. There is no user code to
// address; the operation is selected by the variant itself.
type Transfer struct {
	Args []byte
}

func (ModuleBytes) Tag() Tag { return TagModuleBytes }
func (StoredContractByHash) Tag() Tag { return TagStoredContractByHash }
func (StoredContractByName) Tag() Tag { return TagStoredContractByName }
func (StoredVersionedContractByName) Tag() Tag { return TagStoredVersionedContractByName }
func (StoredVersionedContractByHash) Tag() Tag { return TagStoredVersionedContractByHash }
func (Transfer) Tag() Tag { return TagTransfer }

func (ModuleBytes) EntryPointName() string { return types.DefaultEntryPoint }
func (Transfer) EntryPointName() string { return types.DefaultEntryPoint }

func (m StoredContractByHash) EntryPointName() string { return m.EntryPoint }
func (m StoredContractByName) EntryPointName() string { return m.EntryPoint }
func (m StoredVersionedContractByName) EntryPointName() string { return m.EntryPoint }
func (m StoredVersionedContractByHash) EntryPointName() string { return m.EntryPoint }

func (ModuleBytes) ContractKey(NamedKeyLookup) (*types.Key, error) { return nil, nil }
func (Transfer) ContractKey(NamedKeyLookup) (*types.Key, error) { return nil, nil }

func (m StoredContractByHash) ContractKey(NamedKeyLookup) (*types.Key, error) {
	k := types.HashKey(m.Hash)
	return &k, nil
}

func (m StoredVersionedContractByHash) ContractKey(NamedKeyLookup) (*types.Key, error) {
	k := types.HashKey(m.Hash)
	return &k, nil
}

func (m StoredContractByName) ContractKey(lookup NamedKeyLookup) (*types.Key, error) {
	return lookupNamedKey(lookup, m.Name)
}

func (m StoredVersionedContractByName) ContractKey(lookup NamedKeyLookup) (*types.Key, error) {
	return lookupNamedKey(lookup, m.Name)
}

func lookupNamedKey(lookup NamedKeyLookup, name string) (*types.Key, error) {
	k, ok := lookup.NamedKey(name)
	if !ok {
		return nil, &NamedKeyNotFoundError{Name: name}
	}
	return &k, nil
}

func (m ModuleBytes) DecodeArgs() (*types.RuntimeArgs, error) { return decodeArgs(m.Args) }
func (m StoredContractByHash) DecodeArgs() (*types.RuntimeArgs, error) { return decodeArgs(m.Args) }
func (m StoredContractByName) DecodeArgs() (*types.RuntimeArgs, error) { return decodeArgs(m.Args) }
func (m StoredVersionedContractByName) DecodeArgs() (*types.RuntimeArgs, error) { return decodeArgs(m.Args) }
func (m StoredVersionedContractByHash) DecodeArgs() (*types.RuntimeArgs, error) { return decodeArgs(m.Args) }
func (m Transfer) DecodeArgs() (*types.RuntimeArgs, error) { return decodeArgs(m.Args) }

// decodeArgs is shared by every variant: how a contract is addressed and
// what arguments it receives are orthogonal.
func decodeArgs(buf []byte) (*types.RuntimeArgs, error) {
	ra, err := types.DecodeRuntimeArgs(buf)
	if err != nil {
		return nil, &ArgsDecodeError{Err: err}
	}
	return ra, nil
}

func (ModuleBytes) sealed() {}
func (StoredContractByHash) sealed() {}
func (StoredContractByName) sealed() {}
func (StoredVersionedContractByName) sealed() {}
func (StoredVersionedContractByHash) sealed() {}
func (Transfer) sealed() {}

// hexPrefix shortens a buffer's hex form for one-line summaries. Short
// buffers render in full, long ones keep a prefix.
func hexPrefix(b []byte) string {
	const max = 10
	s := hex.EncodeToString(b)
	if len(s) <= max {
		return s
	}
	return s[:max-2] + ".."
}

// hexBounded renders a buffer for debug output, falling back to a byte
// count for payloads too large to be useful in a log line.
func hexBounded(b []byte) string {
	const maxBytes = 1024
	if len(b) > maxBytes {
		return fmt.Sprintf("[%d bytes]", len(b))
	}
	return hexutil.Encode(b)
}

func versionString(v *types.ContractVersion) string {
	if v == nil {
		return "latest version"
	}
	return fmt.Sprintf("version %d", *v)
}

func (m ModuleBytes) String() string {
	return fmt.Sprintf("execute module bytes %s, args %s", hexPrefix(m.ModuleBytes), hexPrefix(m.Args))
}

func (m StoredContractByHash) String() string {
	return fmt.Sprintf("execute stored contract by hash %s, entry point %s, args %s",
		m.Hash.Hex(), m.EntryPoint, hexPrefix(m.Args))
}

func (m StoredContractByName) String() string {
	return fmt.Sprintf("execute stored contract by name %s, entry point %s, args %s",
		m.Name, m.EntryPoint, hexPrefix(m.Args))
}

func (m StoredVersionedContractByName) String() string {
	return fmt.Sprintf("execute stored versioned contract %s, %s, entry point %s, args %s",
		m.Name, versionString(m.Version), m.EntryPoint, hexPrefix(m.Args))
}

func (m StoredVersionedContractByHash) String() string {
	return fmt.Sprintf("execute stored versioned contract by hash %s, %s, entry point %s, args %s",
		m.Hash.Hex(), versionString(m.Version), m.EntryPoint, hexPrefix(m.Args))
}

func (m Transfer) String() string {
	return fmt.Sprintf("execute transfer args %s", hexPrefix(m.Args))
}

func (m ModuleBytes) DebugString() string {
	return fmt.Sprintf("ModuleBytes{module_bytes: [%d bytes], args: %s}",
		len(m.ModuleBytes), hexBounded(m.Args))
}

func (m StoredContractByHash) DebugString() string {
	return fmt.Sprintf("StoredContractByHash{hash: %s, entry_point: %q, args: %s}",
		m.Hash.Hex(), m.EntryPoint, hexBounded(m.Args))
}

func (m StoredContractByName) DebugString() string {
	return fmt.Sprintf("StoredContractByName{name: %q, entry_point: %q, args: %s}",
		m.Name, m.EntryPoint, hexBounded(m.Args))
}

func (m StoredVersionedContractByName) DebugString() string {
	return fmt.Sprintf("StoredVersionedContractByName{name: %q, version: %s, entry_point: %q, args: %s}",
		m.Name, debugVersion(m.Version), m.EntryPoint, hexBounded(m.Args))
}

func (m StoredVersionedContractByHash) DebugString() string {
	return fmt.Sprintf("StoredVersionedContractByHash{hash: %s, version: %s, entry_point: %q, args: %s}",
		m.Hash.Hex(), debugVersion(m.Version), m.EntryPoint, hexBounded(m.Args))
}

func (m Transfer) DebugString() string {
	return fmt.Sprintf("Transfer{args: %s}", hexBounded(m.Args))
}

func debugVersion(v *types.ContractVersion) string {
	if v == nil {
		return "latest"
	}
	return fmt.Sprintf("%d", *v)
}
