// Package core holds the account-side state consumed by deploy resolution:
// an account and its named-key namespace.
package core

import (
	"sort"

	"github.com/clydemeng/deploykit/types"
)

// Account is an on-chain account: an address plus a namespace mapping
// human-readable names to global-state keys. Resolution only ever reads the
// namespace; accounts handed to the engine are treated as immutable
// snapshots and are safe for concurrent readers.
type Account struct {
	accountHash types.AccountHash
	namedKeys   types.NamedKeys
	mainPurse   types.Key
}

// NewAccount returns an account over the given namespace. The map is copied
// so later mutation by the caller cannot be observed through the account.
func NewAccount(hash types.AccountHash, namedKeys types.NamedKeys, mainPurse types.Key) *Account {
	nk := make(types.NamedKeys, len(namedKeys))
	for name, key := range namedKeys {
		nk[name] = key
	}
	return &Account{accountHash: hash, namedKeys: nk, mainPurse: mainPurse}
}

// AccountHash returns the account's address.
func (a *Account) AccountHash() types.AccountHash { return a.accountHash }

// MainPurse returns the account's main purse key.
func (a *Account) MainPurse() types.Key { return a.mainPurse }

// NamedKey looks up name in the account's namespace.
func (a *Account) NamedKey(name string) (types.Key, bool) {
	k, ok := a.namedKeys[name]
	return k, ok
}

// NamedKeyNames returns the names in the namespace, sorted for stable
// iteration.
func (a *Account) NamedKeyNames() []string {
	out := make([]string, 0, len(a.namedKeys))
	for name := range a.namedKeys {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
