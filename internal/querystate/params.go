// Package querystate keeps a user-typed search term and a page selection
// synchronized with a serialized URL query string, debouncing keystrokes so
// that at most one location update is requested per quiescent window.
package querystate

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

type pair struct {
	key   string
	value string
}

// Params is an ordered mapping of query parameter names to values.
// Unlike url.Values it remembers the order in which keys were first set,
// so re-serializing a location keeps parameters this package does not
// recognize exactly where the caller put them.
//
// An absent key means "no filter on that dimension". Setting a key to the
// empty string removes it; an empty value is never stored.
type Params struct {
	pairs []pair
}

// ParseQuery parses a raw query string ("a=1&b=2"). Malformed segments are
// dropped silently; parsing never fails. If a key appears more than once,
// the first occurrence wins.
func ParseQuery(raw string) Params {
	var p Params
	for raw != "" {
		var seg string
		seg, raw, _ = strings.Cut(raw, "&")
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		key, err := url.QueryUnescape(k)
		if err != nil || key == "" || !utf8.ValidString(key) {
			continue
		}
		value, err := url.QueryUnescape(v)
		if err != nil || !utf8.ValidString(value) {
			continue
		}
		if p.Has(key) || value == "" {
			continue
		}
		p.pairs = append(p.pairs, pair{key: key, value: value})
	}
	return p
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	for i := range p.pairs {
		if p.pairs[i].key == key {
			return true
		}
	}
	return false
}

// Get returns the value for key, or "" when the key is absent.
func (p Params) Get(key string) string {
	for i := range p.pairs {
		if p.pairs[i].key == key {
			return p.pairs[i].value
		}
	}
	return ""
}

// Set stores value under key. A key set for the first time is appended; an
// existing key is updated in place, keeping its position. Setting the empty
// string removes the key.
func (p *Params) Set(key, value string) {
	if value == "" {
		p.Delete(key)
		return
	}
	for i := range p.pairs {
		if p.pairs[i].key == key {
			p.pairs[i].value = value
			return
		}
	}
	p.pairs = append(p.pairs, pair{key: key, value: value})
}

// Delete removes key. Removing an absent key is a no-op.
func (p *Params) Delete(key string) {
	for i := range p.pairs {
		if p.pairs[i].key == key {
			p.pairs = append(p.pairs[:i], p.pairs[i+1:]...)
			return
		}
	}
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p.pairs)
}

// Encode serializes the parameters as "k=v&k2=v2", percent-encoded,
// preserving first-set insertion order.
func (p Params) Encode() string {
	if len(p.pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.pairs[i].key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.pairs[i].value))
	}
	return b.String()
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	if len(p.pairs) == 0 {
		return Params{}
	}
	cp := make([]pair, len(p.pairs))
	copy(cp, p.pairs)
	return Params{pairs: cp}
}
