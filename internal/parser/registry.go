package parser

// Registry holds every parsed type of a file for cross-type resolution
type Registry struct {
	// Records by name
	byName map[string]*TypeRecord
	// Names in the order they were first added
	order []string
}

// NewRegistry creates a new registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*TypeRecord),
	}
}

// Add adds parsed records to the registry. A record whose name is already
// registered replaces the earlier one but keeps its position.
func (r *Registry) Add(records ...*TypeRecord) {
	for _, rec := range records {
		if _, exists := r.byName[rec.Name]; !exists {
			r.order = append(r.order, rec.Name)
		}
		r.byName[rec.Name] = rec
	}
}

// Lookup returns the record registered under name. It is safe on a nil
// registry.
func (r *Registry) Lookup(name string) *TypeRecord {
	if r == nil {
		return nil
	}
	return r.byName[name]
}

// Has reports whether name is a registered type
func (r *Registry) Has(name string) bool {
	return r.Lookup(name) != nil
}

// Records returns the registered records in insertion order
func (r *Registry) Records() []*TypeRecord {
	if r == nil {
		return nil
	}
	records := make([]*TypeRecord, 0, len(r.order))
	for _, name := range r.order {
		records = append(records, r.byName[name])
	}
	return records
}

// Enums returns the registered enum records in insertion order
func (r *Registry) Enums() []*TypeRecord {
	var enums []*TypeRecord
	for _, rec := range r.Records() {
		if rec.Kind == Enum {
			enums = append(enums, rec)
		}
	}
	return enums
}

// Len returns the number of registered types
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
