// Package notes defines a type that holds information passed
// between keywords during schema validation.
// This permits validation of one keyword to depend on information
// gathered while validating another keyword.
//
// For example, "additionalProperties" constrains only the instance
// fields that "properties" and "patternProperties" did not account
// for, and "additionalItems" constrains only the array elements
// beyond the positional "items" schemas. The keyword evaluation
// order guarantees the producing keyword runs first.
//
// This package is visible to support people who want to define
// their own keyword vocabularies. People who are only interested
// in validating instances do not need to use this package.
package notes

import "fmt"

// Notes is a set of notes. Each note has a name and a value.
// The name should normally be the name of a schema keyword.
// The value may be anything; it is normally a bool, an int,
// or a slice of some elements.
//
// The zero value of Notes is directly usable.
// Notes may not be used concurrently by multiple goroutines.
type Notes struct {
	m map[string]any
}

// Set adds a note. If there is an existing note with the same name,
// the old value is replaced with the new one.
func (n *Notes) Set(name string, val any) {
	if n.m == nil {
		n.m = make(map[string]any)
	}
	n.m[name] = val
}

// Get retrieves a note, including reporting whether it exists.
func (n *Notes) Get(name string) (val any, ok bool) {
	val, ok = n.m[name]
	return val, ok
}

// AppendNote appends values to a note.
// This is a function, not a method, so that it can be generic.
// This expects any existing note to have type []E,
// and panics if it does not.
func AppendNote[E any](n *Notes, name string, val ...E) {
	if n.m == nil {
		n.m = make(map[string]any)
	}
	var s []E
	if old := n.m[name]; old != nil {
		var ok bool
		s, ok = old.([]E)
		if !ok {
			panic(fmt.Sprintf("for note %s attempt to append value of type %T to value of type %T", name, val, old))
		}
	}
	n.m[name] = append(s, val...)
}

// Clear clears all current notes.
func (n *Notes) Clear() {
	n.m = nil
}

// IsEmpty reports whether there are no notes.
func (n *Notes) IsEmpty() bool {
	return len(n.m) == 0
}

// String returns a printable Notes.
func (n Notes) String() string {
	return fmt.Sprint(n.m)
}
