package engine

import (
	"fmt"

	"github.com/clydemeng/deploykit/bytesrepr"
	"github.com/clydemeng/deploykit/types"
)

func (m ModuleBytes) toBytes(w *bytesrepr.Writer) {
	w.WriteBytes(m.ModuleBytes)
	w.WriteBytes(m.Args)
}

func (m StoredContractByHash) toBytes(w *bytesrepr.Writer) {
	w.WriteRaw(m.Hash[:])
	w.WriteString(m.EntryPoint)
	w.WriteBytes(m.Args)
}

func (m StoredContractByName) toBytes(w *bytesrepr.Writer) {
	w.WriteString(m.Name)
	w.WriteString(m.EntryPoint)
	w.WriteBytes(m.Args)
}

func (m StoredVersionedContractByName) toBytes(w *bytesrepr.Writer) {
	w.WriteString(m.Name)
	w.WriteOptionU32(m.Version)
	w.WriteString(m.EntryPoint)
	w.WriteBytes(m.Args)
}

func (m StoredVersionedContractByHash) toBytes(w *bytesrepr.Writer) {
	w.WriteRaw(m.Hash[:])
	w.WriteOptionU32(m.Version)
	w.WriteString(m.EntryPoint)
	w.WriteBytes(m.Args)
}

func (m Transfer) toBytes(w *bytesrepr.Writer) {
	w.WriteBytes(m.Args)
}

// ToBytes returns the canonical wire form: the variant tag byte followed by
// the variant's fields in declared order.
func ToBytes(item ExecutableDeployItem) []byte {
	w := &bytesrepr.Writer{}
	WriteItem(w, item)
	return w.Bytes()
}

// WriteItem appends the item's wire form to w.
func WriteItem(w *bytesrepr.Writer, item ExecutableDeployItem) {
	w.WriteU8(uint8(item.Tag()))
	item.toBytes(w)
}

// ItemFromBytes decodes one deploy item from the reader, rejecting unknown
// variant tags.
func ItemFromBytes(r *bytesrepr.Reader) (ExecutableDeployItem, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch Tag(tag) {
	case TagModuleBytes:
		var m ModuleBytes
		if m.ModuleBytes, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		if m.Args, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		return m, nil

	case TagStoredContractByHash:
		var m StoredContractByHash
		raw, err := r.ReadRaw(types.HashLength)
		if err != nil {
			return nil, err
		}
		copy(m.Hash[:], raw)
		if m.EntryPoint, err = r.ReadString(); err != nil {
			return nil, err
		}
		if m.Args, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		return m, nil

	case TagStoredContractByName:
		var m StoredContractByName
		if m.Name, err = r.ReadString(); err != nil {
			return nil, err
		}
		if m.EntryPoint, err = r.ReadString(); err != nil {
			return nil, err
		}
		if m.Args, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		return m, nil

	case TagStoredVersionedContractByName:
		var m StoredVersionedContractByName
		if m.Name, err = r.ReadString(); err != nil {
			return nil, err
		}
		if m.Version, err = r.ReadOptionU32(); err != nil {
			return nil, err
		}
		if m.EntryPoint, err = r.ReadString(); err != nil {
			return nil, err
		}
		if m.Args, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		return m, nil

	case TagStoredVersionedContractByHash:
		var m StoredVersionedContractByHash
		raw, err := r.ReadRaw(types.HashLength)
		if err != nil {
			return nil, err
		}
		copy(m.Hash[:], raw)
		if m.Version, err = r.ReadOptionU32(); err != nil {
			return nil, err
		}
		if m.EntryPoint, err = r.ReadString(); err != nil {
			return nil, err
		}
		if m.Args, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		return m, nil

	case TagTransfer:
		var m Transfer
		if m.Args, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		return m, nil

	default:
		return nil, fmt.Errorf("%w: unknown deploy item tag %#x", bytesrepr.ErrFormatting, tag)
	}
}

// DecodeItem decodes buf as exactly one deploy item, rejecting trailing
// bytes.
func DecodeItem(buf []byte) (ExecutableDeployItem, error) {
	r := bytesrepr.NewReader(buf)
	item, err := ItemFromBytes(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return item, nil
}
