package domain

import "sort"

// Mutation is the minimal set of column writes for one update.
// A key present with a nil value clears the column; keys that are not
// present are left untouched. Values are already in storage form:
// Decimal for coordinates, time.Time for timestamps.
type Mutation map[FieldName]any

// Fields returns the mutated field names in a stable order.
func (m Mutation) Fields() []FieldName {
	names := make([]FieldName, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
