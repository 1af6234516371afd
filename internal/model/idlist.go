package model

import "gorm.io/datatypes"

// IDList is a denormalized list of entity ids stored as a jsonb array.
type IDList = datatypes.JSONSlice[string]

// NewIDList copies ids into a non-nil list so it is stored as [] rather than null.
func NewIDList(ids ...string) IDList {
	list := make(IDList, 0, len(ids))
	return append(list, ids...)
}

// HasID reports whether id is present in list.
func HasID(list IDList, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// WithoutID returns a copy of list with every occurrence of id removed.
func WithoutID(list IDList, id string) IDList {
	out := make(IDList, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
