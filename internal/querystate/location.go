package querystate

import "strings"

// Location is a path plus query parameters: the externally visible,
// addressable state of a view. Consumers read it to decide what to display.
type Location struct {
	Path   string
	Params Params
}

// ParseLocation splits a "path?query" string into a Location.
func ParseLocation(s string) Location {
	path, query, _ := strings.Cut(s, "?")
	return Location{Path: path, Params: ParseQuery(query)}
}

// String serializes the location as "path?query", omitting the "?" when no
// parameters are set.
func (l Location) String() string {
	q := l.Params.Encode()
	if q == "" {
		return l.Path
	}
	return l.Path + "?" + q
}
