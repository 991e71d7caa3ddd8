package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Fixed record keys.
const (
	// BedfilePathKey holds the original input file path.
	BedfilePathKey = "bedfile_path"

	// IDKey holds the file identity as written by the external computation.
	IDKey = "id"
)

// DefaultSearchTerms are the sample attributes copied from a sample
// metadata file into a record.
var DefaultSearchTerms = []string{
	"sample_name",
	"organism",
	"genome",
	"exp_protocol",
	"antibody",
	"cell_type",
	"cell_line",
	"tissue",
	"treatment",
	"description",
}

// Record is a key-value document describing one region set. It carries
// whatever the external computation produced plus the merged sample
// attributes and the source path. Values are kept as decoded so that
// reading and writing a record does not alter unknown fields.
type Record struct {
	fields map[string]any
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]any)}
}

// RecordFromMap creates a record holding a shallow copy of m.
func RecordFromMap(m map[string]any) *Record {
	r := &Record{fields: make(map[string]any, len(m))}
	for k, v := range m {
		r.fields[k] = v
	}
	return r
}

// Field returns the value stored under key.
func (r *Record) Field(key string) (any, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// SetField inserts or replaces the value under key.
func (r *Record) SetField(key string, value any) {
	if r.fields == nil {
		r.fields = make(map[string]any)
	}
	r.fields[key] = value
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Len returns the number of top-level fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Keys returns the top-level keys in sorted order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BedfilePath returns the source path field, or "" if unset.
func (r *Record) BedfilePath() string {
	s, _ := r.fields[BedfilePathKey].(string)
	return s
}

// SetBedfilePath sets the source path field.
func (r *Record) SetBedfilePath(path string) {
	r.SetField(BedfilePathKey, path)
}

// ID returns the identity field, or "" if unset or not a string.
func (r *Record) ID() string {
	s, _ := r.fields[IDKey].(string)
	return s
}

// SearchTerm returns the value of one search-term field.
func (r *Record) SearchTerm(key string) (any, bool) {
	return r.Field(key)
}

// SearchTerms returns the present fields among terms.
func (r *Record) SearchTerms(terms []string) map[string]any {
	out := make(map[string]any)
	for _, t := range terms {
		if v, ok := r.fields[t]; ok {
			out[t] = v
		}
	}
	return out
}

// Extra returns all fields that are neither search terms nor fixed keys.
func (r *Record) Extra(terms []string) map[string]any {
	known := map[string]struct{}{BedfilePathKey: {}}
	for _, t := range terms {
		known[t] = struct{}{}
	}
	out := make(map[string]any)
	for k, v := range r.fields {
		if _, ok := known[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// MarshalJSON encodes the record as a flat JSON object.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.fields)
}

// UnmarshalJSON decodes a JSON object. Numbers are kept as json.Number.
func (r *Record) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("record must be a JSON object, got null")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("decoding record: trailing data after JSON object")
	}
	r.fields = m
	return nil
}

// String renders the record as compact JSON.
func (r *Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<unencodable record: %v>", err)
	}
	return string(b)
}
