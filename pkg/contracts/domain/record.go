package domain

import (
	"bytes"
	"encoding/json"
)

// Field is one named cell of a presentation record.
type Field struct {
	Name  string
	Value interface{}
}

// Record is an ordered row of public columns. It marshals to a JSON object
// that keeps the column order.
type Record []Field

// Get returns the value of the named column.
func (r Record) Get(name string) (interface{}, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Columns returns the column names in order.
func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Name
	}
	return cols
}

// Values returns the cell values in column order.
func (r Record) Values() []interface{} {
	vals := make([]interface{}, len(r))
	for i, f := range r {
		vals[i] = f.Value
	}
	return vals
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
