package httpwire

import "github.com/yourusername/reactor/pkg/reactor/seq"

// field is one entry in a Header's ordered sequence. Duplicate keys are
// kept as separate entries in insertion order; Set may rewrite the value
// of an existing entry in place (see Set).
type field struct {
	key   string
	value string
}

// Header is an ordered, duplicate-preserving multimap of HTTP header
// fields, grounded on the original reactor core's array_t of
// http_header_t entries.
type Header struct {
	fields *seq.Sequence[field]
}

// NewHeader returns an empty Header ready for use.
func NewHeader() *Header {
	return &Header{fields: seq.New[field](8)}
}

// Get returns the value of the first entry matching key (exact,
// case-sensitive match against the stored key), and whether it was found.
// Parsed request/response headers are stored with lowercased keys, so
// callers should pass an already-lowercased key when looking up a parsed
// header — matching http_headers_get.
func (h *Header) Get(key string) (string, bool) {
	for _, f := range h.fields.Data() {
		if f.key == key {
			return f.value, true
		}
	}
	return "", false
}

// Add appends a new header entry unconditionally, regardless of whether
// key already exists.
func (h *Header) Add(key, value string) {
	h.fields.Add(field{key: key, value: value})
}

// Set reproduces http_headers_set's literal, dual-effect behavior: every
// existing entry whose key matches is mutated in place to have its value
// comma-joined with the new value, and a brand new entry with the new
// value is then unconditionally appended. Calling Set on a pre-existing
// key therefore leaves both the updated old entry and a fresh duplicate
// behind; it is not a replace.
func (h *Header) Set(key, value string) {
	data := h.fields.Data()
	for i, f := range data {
		if f.key == key {
			h.fields.Set(i, field{key: f.key, value: f.value + "," + value})
		}
	}
	h.fields.Add(field{key: key, value: value})
}

// Len returns the number of stored header entries, including duplicates.
func (h *Header) Len() int {
	return h.fields.Len()
}

// VisitAll calls visit for each header entry in insertion order.
func (h *Header) VisitAll(visit func(key, value string)) {
	for _, f := range h.fields.Data() {
		visit(f.key, f.value)
	}
}
