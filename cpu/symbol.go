package cpu

import (
	"iter"
	"maps"
	"slices"
)

// SymbolTable maps label names to addresses.
type SymbolTable map[string]uint16

// Insert defines a label. Redefinition is rejected.
func (st SymbolTable) Insert(name string, address uint16) (err error) {
	if _, ok := st[name]; ok {
		err = ErrLabelDuplicate
		return
	}

	st[name] = address
	return
}

// Lookup returns the address of a label.
func (st SymbolTable) Lookup(name string) (address uint16, err error) {
	address, ok := st[name]
	if !ok {
		err = ErrLabelMissing(name)
	}
	return
}

// Contains reports if a label is defined.
func (st SymbolTable) Contains(name string) bool {
	_, ok := st[name]
	return ok
}

// Len returns the number of labels.
func (st SymbolTable) Len() int {
	return len(st)
}

// All iterates over the labels in name order.
func (st SymbolTable) All() iter.Seq2[string, uint16] {
	return func(yield func(string, uint16) bool) {
		for _, name := range slices.Sorted(maps.Keys(st)) {
			if !yield(name, st[name]) {
				return
			}
		}
	}
}
