// Package types defines the value types shared between deploy descriptors,
// the account namespace and the argument codec: fixed-size addresses, the
// tagged Key address union, and the CLValue/RuntimeArgs argument model.
package types

import "github.com/ethereum/go-ethereum/common/hexutil"

// DefaultEntryPoint is the implicit entry point invoked for deploys that
// carry their own module bytes or perform a native transfer.
const DefaultEntryPoint = "call"

// HashLength is the byte length of contract, package and account addresses.
const HashLength = 32

// ContractHash addresses a stored contract directly.
type ContractHash [HashLength]byte

// ContractPackageHash addresses a contract package (a group of versions of
// one contract under a single identity).
type ContractPackageHash [HashLength]byte

// AccountHash addresses an account.
type AccountHash [HashLength]byte

// ContractVersion selects one version inside a contract package. Deploys
// carry it as a pointer: nil means "highest enabled version", which is
// resolved by the execution engine, not here.
type ContractVersion = uint32

func (h ContractHash) Bytes() []byte { return h[:] }

// Hex returns the 0x-prefixed hex form.
func (h ContractHash) Hex() string { return hexutil.Encode(h[:]) }

func (h ContractHash) String() string { return h.Hex() }

func (h ContractPackageHash) Bytes() []byte { return h[:] }

func (h ContractPackageHash) Hex() string { return hexutil.Encode(h[:]) }

func (h ContractPackageHash) String() string { return h.Hex() }

func (h AccountHash) Bytes() []byte { return h[:] }

func (h AccountHash) Hex() string { return hexutil.Encode(h[:]) }

func (h AccountHash) String() string { return h.Hex() }

// BytesToContractHash sets b in a ContractHash, left-truncating or
// zero-left-padding to HashLength the way common.BytesToHash does.
func BytesToContractHash(b []byte) ContractHash {
	var h ContractHash
	setFixed(h[:], b)
	return h
}

// BytesToContractPackageHash sets b in a ContractPackageHash.
func BytesToContractPackageHash(b []byte) ContractPackageHash {
	var h ContractPackageHash
	setFixed(h[:], b)
	return h
}

// BytesToAccountHash sets b in an AccountHash.
func BytesToAccountHash(b []byte) AccountHash {
	var h AccountHash
	setFixed(h[:], b)
	return h
}

func setFixed(dst, b []byte) {
	if len(b) > len(dst) {
		b = b[len(b)-len(dst):]
	}
	copy(dst[len(dst)-len(b):], b)
}
