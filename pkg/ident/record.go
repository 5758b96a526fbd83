// Package ident encodes the system identification record the way the kernel
// lays out struct new_utsname: six NUL-padded fixed-width text fields.
package ident

import (
	"bytes"
	"context"
	"errors"

	"github.com/valyala/bytebufferpool"
)

const (
	// FieldLen is the width of every field, terminator included.
	FieldLen = 65
	// RecordSize is the full encoded size of a Record.
	RecordSize = 6 * FieldLen
	// MinRecordSize covers the five fields every platform reports.
	MinRecordSize = 5 * FieldLen
)

// ErrShortRecord is returned by Parse when b cannot hold the five named fields.
var ErrShortRecord = errors.New("ident: buffer shorter than identification record")

// Record is the system identification record.
type Record struct {
	Sysname    string `json:"sysname"`
	Nodename   string `json:"nodename"`
	Release    string `json:"release"`
	Version    string `json:"version"`
	Machine    string `json:"machine"`
	Domainname string `json:"domainname,omitempty"`
}

// Field is a named field value, in layout order.
type Field struct {
	Name  string
	Value string
}

// Source provides the identification record of some system.
type Source interface {
	Identify(ctx context.Context) (Record, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Record, error)

func (f SourceFunc) Identify(ctx context.Context) (Record, error) { return f(ctx) }

// System identifies the running system.
var System Source = SourceFunc(func(context.Context) (Record, error) { return Current() })

// Fields returns the record's fields in layout order.
func (r Record) Fields() []Field {
	return []Field{
		{"sysname", r.Sysname},
		{"nodename", r.Nodename},
		{"release", r.Release},
		{"version", r.Version},
		{"machine", r.Machine},
		{"domainname", r.Domainname},
	}
}

// MarshalTo writes the fixed layout into b and returns the number of bytes
// written. The layout is cut short when b is smaller than RecordSize.
func (r Record) MarshalTo(b []byte) int {
	var rec [RecordSize]byte
	for i, f := range r.Fields() {
		field := rec[i*FieldLen : (i+1)*FieldLen-1]
		copy(field, f.Value)
	}
	return copy(b, rec[:])
}

// MarshalBinary returns the RecordSize-byte encoding of r.
func (r Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, RecordSize)
	r.MarshalTo(b)
	return b, nil
}

// UnmarshalBinary decodes b into r, see Parse.
func (r *Record) UnmarshalBinary(b []byte) error {
	rec, err := Parse(b)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// Parse decodes a record from the fixed layout. The domainname field is
// optional; it is decoded only when b holds all of it.
func Parse(b []byte) (Record, error) {
	if len(b) < MinRecordSize {
		return Record{}, ErrShortRecord
	}
	var rec Record
	rec.Sysname = field(b, 0)
	rec.Nodename = field(b, 1)
	rec.Release = field(b, 2)
	rec.Version = field(b, 3)
	rec.Machine = field(b, 4)
	if len(b) >= RecordSize {
		rec.Domainname = field(b, 5)
	}
	return rec, nil
}

func field(b []byte, i int) string {
	f := b[i*FieldLen : (i+1)*FieldLen]
	if n := bytes.IndexByte(f, 0); n >= 0 {
		f = f[:n]
	}
	return string(f)
}

// IsZero reports whether none of the five named fields is set.
func (r Record) IsZero() bool {
	return r.Sysname == "" && r.Nodename == "" && r.Release == "" && r.Version == "" && r.Machine == ""
}

// String formats the record like `uname -a`.
func (r Record) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for i, f := range r.Fields()[:5] {
		if i > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(f.Value)
	}
	return buf.String()
}
