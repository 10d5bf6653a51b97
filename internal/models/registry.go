package models

import (
	"sort"

	"deribit-common/internal/errors"
)

// InstrumentRegistry is a read-only set of instruments keyed by name. A
// refresh builds a new registry; existing ones are never modified, so a
// registry may be shared across goroutines without locking.
type InstrumentRegistry struct {
	byName map[string]Instrument
	names  []string
}

// NewInstrumentRegistry builds a registry from instruments. Duplicate names are
// rejected.
func NewInstrumentRegistry(instruments []Instrument) (*InstrumentRegistry, error) {
	r := &InstrumentRegistry{
		byName: make(map[string]Instrument, len(instruments)),
		names:  make([]string, 0, len(instruments)),
	}
	for _, inst := range instruments {
		if _, dup := r.byName[inst.Name]; dup {
			return nil, errors.NewValidationError(errors.InvalidArguments, "instrument_name", inst.Name, "duplicate instrument")
		}
		r.byName[inst.Name] = inst
		r.names = append(r.names, inst.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup returns the instrument called name.
func (r *InstrumentRegistry) Lookup(name string) (Instrument, bool) {
	inst, ok := r.byName[name]
	return inst, ok
}

// Names returns all instrument names in sorted order.
func (r *InstrumentRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of instruments.
func (r *InstrumentRegistry) Len() int {
	return len(r.byName)
}

// ValidateOrder validates order against the instrument it names.
func (r *InstrumentRegistry) ValidateOrder(order Order) error {
	inst, ok := r.Lookup(order.InstrumentName)
	if !ok {
		return errors.NewValidationError(errors.NotFound, "instrument_name", order.InstrumentName, "instrument not in registry")
	}
	return ValidateOrder(order, inst)
}
