package types

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/clydemeng/deploykit/bytesrepr"
)

// KeyTag is the wire discriminant of a Key variant. The values are stable
// and never renumbered.
type KeyTag uint8

const (
	KeyTagAccount KeyTag = iota
	KeyTagHash
	KeyTagURef
)

// String returns a human-readable name for the tag.
func (t KeyTag) String() string {
	switch t {
	case KeyTagAccount:
		return "account"
	case KeyTagHash:
		return "hash"
	case KeyTagURef:
		return "uref"
	}
	return "unknown"
}

// Key is an address in global state: an account, a stored contract or
// package, or an unforgeable reference. Exactly one variant is active,
// selected by Tag.
type Key struct {
	Tag  KeyTag
	Data [HashLength]byte
	// Access carries the URef access-rights byte. Meaningful only when
	// Tag is KeyTagURef; zero otherwise.
	Access uint8
}

// AccountKey returns a Key addressing an account.
func AccountKey(h AccountHash) Key { return Key{Tag: KeyTagAccount, Data: h} }

// HashKey returns a Key addressing a stored contract or package.
func HashKey(b [HashLength]byte) Key { return Key{Tag: KeyTagHash, Data: b} }

// URefKey returns a Key for an unforgeable reference with the given
// access-rights byte.
func URefKey(addr [HashLength]byte, access uint8) Key {
	return Key{Tag: KeyTagURef, Data: addr, Access: access}
}

func (k Key) String() string {
	if k.Tag == KeyTagURef {
		return fmt.Sprintf("%s-%s-%03o", k.Tag, hexutil.Encode(k.Data[:]), k.Access)
	}
	return fmt.Sprintf("%s-%s", k.Tag, hexutil.Encode(k.Data[:]))
}

// Equal reports whether two keys are the same variant with the same fields.
func (k Key) Equal(other Key) bool { return k.Compare(other) == 0 }

// Compare orders keys by tag, then address bytes, then access byte. The
// order is total and platform-independent.
func (k Key) Compare(other Key) int {
	if k.Tag != other.Tag {
		if k.Tag < other.Tag {
			return -1
		}
		return 1
	}
	if c := bytes.Compare(k.Data[:], other.Data[:]); c != 0 {
		return c
	}
	if k.Access != other.Access {
		if k.Access < other.Access {
			return -1
		}
		return 1
	}
	return 0
}

// ToBytes appends the key's wire form: tag byte, address bytes, and for
// urefs the access byte.
func (k Key) ToBytes(w *bytesrepr.Writer) {
	w.WriteU8(uint8(k.Tag))
	w.WriteRaw(k.Data[:])
	if k.Tag == KeyTagURef {
		w.WriteU8(k.Access)
	}
}

// KeyFromBytes decodes a key from the reader, rejecting unknown tags.
func KeyFromBytes(r *bytesrepr.Reader) (Key, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Key{}, err
	}
	switch KeyTag(tag) {
	case KeyTagAccount, KeyTagHash, KeyTagURef:
	default:
		return Key{}, fmt.Errorf("%w: unknown key tag %#x", bytesrepr.ErrFormatting, tag)
	}
	k := Key{Tag: KeyTag(tag)}
	raw, err := r.ReadRaw(HashLength)
	if err != nil {
		return Key{}, err
	}
	copy(k.Data[:], raw)
	if k.Tag == KeyTagURef {
		if k.Access, err = r.ReadU8(); err != nil {
			return Key{}, err
		}
	}
	return k, nil
}

// NamedKeys is an account's namespace: human-readable names mapped to keys.
type NamedKeys map[string]Key
