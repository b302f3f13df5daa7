// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package value is the in-memory structured data tree produced by the
// converter: strings, insertion-ordered objects, arrays and null.
package value

import (
	"slices"
)

// Value is one node of the output tree: String, *Object, Array or Null.
type Value interface {
	structuredValue()
}

// String is a scalar string. All scalars produced by the converter are strings.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Null is the JSON null value.
type Null struct{}

func (String) structuredValue()  {}
func (Array) structuredValue()   {}
func (Null) structuredValue()    {}
func (*Object) structuredValue() {}

// Object maps unique keys to values and remembers the order in which keys
// were first inserted.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set stores v under key. Overwriting an existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Range calls fn for each entry in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// Single returns an object holding exactly one entry.
func Single(key string, v Value) *Object {
	o := NewObject()
	o.Set(key, v)
	return o
}

// SortKeys returns a deep copy of v in which every object lists its keys in
// lexical order. Arrays keep their element order.
func SortKeys(v Value) Value {
	switch v := v.(type) {
	case *Object:
		keys := v.Keys()
		slices.Sort(keys)
		out := NewObject()
		for _, k := range keys {
			out.Set(k, SortKeys(v.values[k]))
		}
		return out
	case Array:
		out := make(Array, len(v))
		for i, e := range v {
			out[i] = SortKeys(e)
		}
		return out
	default:
		return v
	}
}
