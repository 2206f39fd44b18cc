// Package schema models the property schema of chart objects.
//
// Chart objects (traces like Bar or Scatter, and layout components like
// XAxis) expose a fixed set of settable properties. Upstream, that set is
// discovered by reflecting over each class constructor at runtime; here the
// same information is generated once from the upstream schema and embedded
// as static data (see catalog.json), loaded into value types with explicit
// accessors.
//
// # Model
//
// An [Object] carries the constructor parameter names (the settable
// properties, including placeholder and source-array names that callers
// filter out) and the default value attached to each property. A [Value] is
// either terminal (a scalar string or a tuple literal) or a nested *Object
// that can be explored further.
//
// # Usage
//
//	reg, err := schema.Load()
//	if err != nil {
//	    return err
//	}
//	entry, ok := reg.Lookup("Bar")
//	if !ok {
//	    return fmt.Errorf("unknown schema type")
//	}
//	obj := entry.New()
//	marker, ok := obj.Field("marker")
//
// Objects returned by Entry.New are independent values; mutating one call's
// result never affects another. All iteration orders are sorted, so
// consumers building trees from the same Object get identical output on
// every call.
package schema

import (
	"sort"
)

// Kind discriminates the value attached to a property.
type Kind int

const (
	// KindScalar is a terminal string-like value (e.g. a trace name).
	KindScalar Kind = iota

	// KindTuple is a terminal fixed-size collection literal (e.g. a data
	// array default). Tuples are never expanded into children.
	KindTuple

	// KindObject is a nested schema object with its own properties.
	KindObject
)

// Value is a property value attached to an Object.
type Value struct {
	kind   Kind
	scalar string
	tuple  []string
	object *Object
}

// ScalarValue returns a terminal scalar Value.
func ScalarValue(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// TupleValue returns a terminal tuple Value.
func TupleValue(elems ...string) Value {
	return Value{kind: KindTuple, tuple: elems}
}

// ObjectValue returns a Value wrapping a nested object.
func ObjectValue(o *Object) Value {
	return Value{kind: KindObject, object: o}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsScalar reports whether the value is terminal (scalar or tuple).
// Terminal values contribute no children to a property tree.
func (v Value) IsScalar() bool { return v.kind != KindObject }

// Scalar returns the scalar payload. Empty for non-scalar values.
func (v Value) Scalar() string { return v.scalar }

// Object returns the nested object, or nil for terminal values.
func (v Value) Object() *Object { return v.object }

// Object is a schema-bearing value: a chart object type instantiated with
// its default property values.
type Object struct {
	name   string
	params []string
	fields map[string]Value
}

// NewObject builds an Object from its display name, constructor parameter
// names, and attached field values. The params slice is copied; the fields
// map is used as-is and must not be mutated afterwards.
func NewObject(name string, params []string, fields map[string]Value) *Object {
	if fields == nil {
		fields = map[string]Value{}
	}
	return &Object{
		name:   name,
		params: append([]string(nil), params...),
		fields: fields,
	}
}

// Name returns the display name of the object's type (e.g. "Bar").
func (o *Object) Name() string { return o.name }

// Params returns the raw constructor parameter names, unsorted and
// unfiltered. Callers apply denylist and suffix exclusions themselves.
func (o *Object) Params() []string {
	return append([]string(nil), o.params...)
}

// Field returns the value attached to a property by name. The second
// return is false when the property has no attached value; callers treat
// that as "no candidates" and skip the branch.
func (o *Object) Field(name string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.fields[name]
	return v, ok
}

// At resolves a nested property path, returning false if any segment is
// absent or crosses a terminal value.
func (o *Object) At(path ...string) (Value, bool) {
	cur := o
	var v Value
	for i, seg := range path {
		var ok bool
		v, ok = cur.Field(seg)
		if !ok {
			return Value{}, false
		}
		if i < len(path)-1 {
			if v.IsScalar() {
				return Value{}, false
			}
			cur = v.Object()
		}
	}
	return v, true
}

// Keys returns the sorted, deduplicated names of all attached properties.
// This is the iteration order of a nested object.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
