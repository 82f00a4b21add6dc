package engine

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/blake2b"

	"github.com/clydemeng/deploykit/bytesrepr"
	"github.com/clydemeng/deploykit/types"
)

// DeployHash is the blake2b-256 identity of a deploy.
type DeployHash = common.Hash

// DeployHeader is the fixed-size part of a deploy that gets hashed to form
// its identity. BodyHash commits to the payment and session items.
type DeployHeader struct {
	Account   types.AccountHash
	Timestamp uint64 // milliseconds since the Unix epoch
	TTL       uint64 // milliseconds the deploy stays valid after Timestamp
	GasPrice  uint64
	BodyHash  common.Hash
	ChainName string
}

// ToBytes appends the header's wire form in field order.
func (h *DeployHeader) ToBytes(w *bytesrepr.Writer) {
	w.WriteRaw(h.Account[:])
	w.WriteU64(h.Timestamp)
	w.WriteU64(h.TTL)
	w.WriteU64(h.GasPrice)
	w.WriteRaw(h.BodyHash[:])
	w.WriteString(h.ChainName)
}

// DeployHeaderFromBytes decodes a header from the reader.
func DeployHeaderFromBytes(r *bytesrepr.Reader) (DeployHeader, error) {
	var h DeployHeader
	raw, err := r.ReadRaw(types.HashLength)
	if err != nil {
		return DeployHeader{}, err
	}
	copy(h.Account[:], raw)
	if h.Timestamp, err = r.ReadU64(); err != nil {
		return DeployHeader{}, err
	}
	if h.TTL, err = r.ReadU64(); err != nil {
		return DeployHeader{}, err
	}
	if h.GasPrice, err = r.ReadU64(); err != nil {
		return DeployHeader{}, err
	}
	raw, err = r.ReadRaw(types.HashLength)
	if err != nil {
		return DeployHeader{}, err
	}
	copy(h.BodyHash[:], raw)
	if h.ChainName, err = r.ReadString(); err != nil {
		return DeployHeader{}, err
	}
	return h, nil
}

// Deploy is a submitted transaction: a header plus two executable items,
// payment (buys execution) and session (the work itself). The hash and body
// hash are computed at construction and never change afterwards.
type Deploy struct {
	hash    DeployHash
	header  DeployHeader
	payment ExecutableDeployItem
	session ExecutableDeployItem
}

// DeployParams carries the caller-chosen header fields for NewDeploy.
type DeployParams struct {
	Account   types.AccountHash
	Timestamp uint64
	TTL       uint64
	GasPrice  uint64
	ChainName string
}

// NewDeploy builds a deploy, committing the header to the payment and
// session items via the body hash and deriving the deploy hash from the
// header.
func NewDeploy(params DeployParams, payment, session ExecutableDeployItem) *Deploy {
	header := DeployHeader{
		Account:   params.Account,
		Timestamp: params.Timestamp,
		TTL:       params.TTL,
		GasPrice:  params.GasPrice,
		BodyHash:  bodyHash(payment, session),
		ChainName: params.ChainName,
	}
	w := &bytesrepr.Writer{}
	header.ToBytes(w)
	return &Deploy{
		hash:    common.Hash(blake2b.Sum256(w.Bytes())),
		header:  header,
		payment: payment,
		session: session,
	}
}

func bodyHash(payment, session ExecutableDeployItem) common.Hash {
	w := &bytesrepr.Writer{}
	WriteItem(w, payment)
	WriteItem(w, session)
	return common.Hash(blake2b.Sum256(w.Bytes()))
}

func (d *Deploy) Hash() DeployHash { return d.hash }
func (d *Deploy) Header() DeployHeader { return d.header }
func (d *Deploy) Payment() ExecutableDeployItem { return d.payment }
func (d *Deploy) Session() ExecutableDeployItem { return d.session }

func (d *Deploy) String() string {
	return fmt.Sprintf("deploy %s: payment %s; session %s", d.hash.Hex(), d.payment, d.session)
}

// ToBytes returns the deploy's wire form: header, payment item, session
// item.
func (d *Deploy) ToBytes() []byte {
	w := &bytesrepr.Writer{}
	d.header.ToBytes(w)
	WriteItem(w, d.payment)
	WriteItem(w, d.session)
	return w.Bytes()
}

// DecodeDeploy decodes buf as exactly one deploy, recomputing and checking
// both hashes so a decoded deploy is always internally consistent.
func DecodeDeploy(buf []byte) (*Deploy, error) {
	r := bytesrepr.NewReader(buf)
	header, err := DeployHeaderFromBytes(r)
	if err != nil {
		return nil, err
	}
	payment, err := ItemFromBytes(r)
	if err != nil {
		return nil, err
	}
	session, err := ItemFromBytes(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	if got := bodyHash(payment, session); got != header.BodyHash {
		return nil, fmt.Errorf("%w: body hash mismatch", bytesrepr.ErrFormatting)
	}
	w := &bytesrepr.Writer{}
	header.ToBytes(w)
	return &Deploy{
		hash:    common.Hash(blake2b.Sum256(w.Bytes())),
		header:  header,
		payment: payment,
		session: session,
	}, nil
}
