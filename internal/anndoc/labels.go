package anndoc

// Resolver maps recognizer labels to the project's entity class ids. It is
// built once at startup from the project's annotations legend and read-only
// afterward, so concurrent use needs no locking.
type Resolver struct {
	nameToID map[string]string
}

// NewResolver inverts a class-id to class-name legend, as returned by the
// tagtog settings API, into a label lookup.
func NewResolver(legend map[string]string) *Resolver {
	nameToID := make(map[string]string, len(legend))
	for classID, name := range legend {
		nameToID[name] = classID
	}
	return &Resolver{nameToID: nameToID}
}

// ClassID returns the entity class id for a recognizer label. The second
// return is false when the label is not part of the project's legend.
func (r *Resolver) ClassID(label string) (string, bool) {
	id, ok := r.nameToID[label]
	return id, ok
}

// Len reports how many labels have a mapping.
func (r *Resolver) Len() int {
	return len(r.nameToID)
}
