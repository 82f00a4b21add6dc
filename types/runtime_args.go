package types

import (
	"github.com/clydemeng/deploykit/bytesrepr"
)

// NamedArg is one deploy argument: a parameter name and its value.
type NamedArg struct {
	Name  string
	Value CLValue
}

// RuntimeArgs is the decoded argument set of a deploy, keyed by parameter
// name. Insertion order is preserved so that re-encoding a decoded value is
// byte-identical to the original.
type RuntimeArgs struct {
	args []NamedArg
}

// NewRuntimeArgs returns an empty argument set.
func NewRuntimeArgs() *RuntimeArgs { return &RuntimeArgs{} }

// Insert adds the argument, replacing the value in place if the name is
// already present.
func (ra *RuntimeArgs) Insert(name string, value CLValue) *RuntimeArgs {
	for i := range ra.args {
		if ra.args[i].Name == name {
			ra.args[i].Value = value
			return ra
		}
	}
	ra.args = append(ra.args, NamedArg{Name: name, Value: value})
	return ra
}

// Get returns the value bound to name.
func (ra *RuntimeArgs) Get(name string) (CLValue, bool) {
	for _, a := range ra.args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return CLValue{}, false
}

// Len returns the number of arguments.
func (ra *RuntimeArgs) Len() int { return len(ra.args) }

// Names returns the parameter names in insertion order.
func (ra *RuntimeArgs) Names() []string {
	out := make([]string, len(ra.args))
	for i, a := range ra.args {
		out[i] = a.Name
	}
	return out
}

// Equal reports whether both sets hold the same arguments in the same order.
func (ra *RuntimeArgs) Equal(other *RuntimeArgs) bool {
	if len(ra.args) != len(other.args) {
		return false
	}
	for i, a := range ra.args {
		b := other.args[i]
		if a.Name != b.Name || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}

// ToBytes appends the wire form: u32 count, then each argument as a
// length-prefixed name followed by its CLValue.
func (ra *RuntimeArgs) ToBytes(w *bytesrepr.Writer) {
	w.WriteU32(uint32(len(ra.args)))
	for _, a := range ra.args {
		w.WriteString(a.Name)
		a.Value.ToBytes(w)
	}
}

// Encode returns the standalone encoding of the argument set.
func (ra *RuntimeArgs) Encode() []byte {
	w := &bytesrepr.Writer{}
	ra.ToBytes(w)
	return w.Bytes()
}

// RuntimeArgsFromBytes decodes an argument set from the reader.
func RuntimeArgsFromBytes(r *bytesrepr.Reader) (*RuntimeArgs, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	ra := NewRuntimeArgs()
	for i := uint32(0); i < n; i++ {
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		value, err := CLValueFromBytes(r)
		if err != nil {
			return nil, err
		}
		ra.args = append(ra.args, NamedArg{Name: name, Value: value})
	}
	return ra, nil
}

// DecodeRuntimeArgs decodes buf as exactly one argument set, rejecting
// trailing bytes.
func DecodeRuntimeArgs(buf []byte) (*RuntimeArgs, error) {
	r := bytesrepr.NewReader(buf)
	ra, err := RuntimeArgsFromBytes(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return ra, nil
}
