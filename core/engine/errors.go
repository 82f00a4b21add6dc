package engine

import "fmt"

// NamedKeyNotFoundError is returned when a name-addressed deploy item names
// an entry absent from the executing account's namespace. It is a normal
// resolution failure for the caller to turn into a failed deploy, not a
// process fault.
type NamedKeyNotFoundError struct {
	Name string
}

func (e *NamedKeyNotFoundError) Error() string {
	return fmt.Sprintf("named key %q not found", e.Name)
}

// ArgsDecodeError wraps a codec failure raised while decoding a deploy
// item's argument buffer.
type ArgsDecodeError struct {
	Err error
}

func (e *ArgsDecodeError) Error() string {
	return fmt.Sprintf("decoding deploy args: %v", e.Err)
}

func (e *ArgsDecodeError) Unwrap() error { return e.Err }
