// Package determinism provides the primitives that make an estimate a pure
// function of its canonical request: a stable serialization and a content
// hash over it.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// Writer builds a stable, line-oriented serialization. Each field is written
// as "path=value\n" in the order the caller emits them, so the caller's code
// order is the serialization order.
type Writer struct {
	buf    []byte
	prefix []string
}

// NewWriter starts a serialization tagged with a schema version
func NewWriter(schema string) *Writer {
	w := &Writer{}
	w.String("schema", schema)
	return w
}

// Section runs fn with name appended to the field path
func (w *Writer) Section(name string, fn func()) {
	w.prefix = append(w.prefix, name)
	fn()
	w.prefix = w.prefix[:len(w.prefix)-1]
}

// String writes a quoted string field
func (w *Writer) String(name, v string) {
	w.field(name, strconv.Quote(v))
}

// Int writes an integer field
func (w *Writer) Int(name string, v int64) {
	w.field(name, strconv.FormatInt(v, 10))
}

// Float writes a float field in shortest round-trip form
func (w *Writer) Float(name string, v float64) {
	if v == 0 {
		v = 0 // -0 and +0 serialize identically
	}
	w.field(name, strconv.FormatFloat(v, 'g', -1, 64))
}

// Bool writes a boolean field
func (w *Writer) Bool(name string, v bool) {
	w.field(name, strconv.FormatBool(v))
}

// Strings writes a list field, preserving order
func (w *Writer) Strings(name string, vs []string) {
	w.Int(name+".len", int64(len(vs)))
	for i, v := range vs {
		w.String(fmt.Sprintf("%s[%d]", name, i), v)
	}
}

// Bytes returns the serialization
func (w *Writer) Bytes() []byte {
	return append([]byte(nil), w.buf...)
}

func (w *Writer) field(name, value string) {
	for _, p := range w.prefix {
		w.buf = append(w.buf, p...)
		w.buf = append(w.buf, '.')
	}
	w.buf = append(w.buf, name...)
	w.buf = append(w.buf, '=')
	w.buf = append(w.buf, value...)
	w.buf = append(w.buf, '\n')
}

// SortedKeys returns the keys of m in sorted order
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
