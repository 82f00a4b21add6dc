package engine

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/blake2b"

	"github.com/clydemeng/deploykit/types"
)

// Compare imposes a strict total order on deploy items: variant tag first,
// then the variant's fields in declared order, with byte buffers compared
// bytewise and an absent version ordering before any present one. The order
// is explicit so it reproduces identically across platforms.
func Compare(a, b ExecutableDeployItem) int {
	if a.Tag() != b.Tag() {
		if a.Tag() < b.Tag() {
			return -1
		}
		return 1
	}
	return a.compareSameTag(b)
}

// Equal reports whether two items are the same variant with equal fields.
// Consistent with Compare.
func Equal(a, b ExecutableDeployItem) bool { return Compare(a, b) == 0 }

// Hash returns the blake2b-256 content hash of the item's canonical wire
// form. Equal items hash identically.
func Hash(item ExecutableDeployItem) common.Hash {
	return common.Hash(blake2b.Sum256(ToBytes(item)))
}

func (m ModuleBytes) compareSameTag(other ExecutableDeployItem) int {
	o := other.(ModuleBytes)
	if c := bytes.Compare(m.ModuleBytes, o.ModuleBytes); c != 0 {
		return c
	}
	return bytes.Compare(m.Args, o.Args)
}

func (m StoredContractByHash) compareSameTag(other ExecutableDeployItem) int {
	o := other.(StoredContractByHash)
	if c := bytes.Compare(m.Hash[:], o.Hash[:]); c != 0 {
		return c
	}
	if c := strings.Compare(m.EntryPoint, o.EntryPoint); c != 0 {
		return c
	}
	return bytes.Compare(m.Args, o.Args)
}

func (m StoredContractByName) compareSameTag(other ExecutableDeployItem) int {
	o := other.(StoredContractByName)
	if c := strings.Compare(m.Name, o.Name); c != 0 {
		return c
	}
	if c := strings.Compare(m.EntryPoint, o.EntryPoint); c != 0 {
		return c
	}
	return bytes.Compare(m.Args, o.Args)
}

func (m StoredVersionedContractByName) compareSameTag(other ExecutableDeployItem) int {
	o := other.(StoredVersionedContractByName)
	if c := strings.Compare(m.Name, o.Name); c != 0 {
		return c
	}
	if c := compareVersion(m.Version, o.Version); c != 0 {
		return c
	}
	if c := strings.Compare(m.EntryPoint, o.EntryPoint); c != 0 {
		return c
	}
	return bytes.Compare(m.Args, o.Args)
}

func (m StoredVersionedContractByHash) compareSameTag(other ExecutableDeployItem) int {
	o := other.(StoredVersionedContractByHash)
	if c := bytes.Compare(m.Hash[:], o.Hash[:]); c != 0 {
		return c
	}
	if c := compareVersion(m.Version, o.Version); c != 0 {
		return c
	}
	if c := strings.Compare(m.EntryPoint, o.EntryPoint); c != 0 {
		return c
	}
	return bytes.Compare(m.Args, o.Args)
}

func (m Transfer) compareSameTag(other ExecutableDeployItem) int {
	o := other.(Transfer)
	return bytes.Compare(m.Args, o.Args)
}

// compareVersion orders an absent version before any present one.
func compareVersion(a, b *types.ContractVersion) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
