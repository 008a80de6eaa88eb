package nbt

import (
	"fmt"
	"reflect"
	"strings"
)

// Marshal converts a Go value to NBT bytes in file format (empty root name).
//
// Type mapping:
//   - bool                  → Byte (0 or 1)
//   - int8/uint8             → Byte
//   - int16/uint16           → Short
//   - int32/int/uint32/uint  → Int
//   - int64/uint64           → Long
//   - float32                → Float
//   - float64                → Double
//   - string                 → String
//   - []byte                 → ByteArray
//   - []int32                → IntArray
//   - []int64                → LongArray
//   - []T (other)            → List
//   - struct, map[string]T   → Compound
//
// Struct fields take their name from an `nbt:"name"` tag, falling back to
// the Go field name; `nbt:"-"` skips a field and `nbt:"name,omitempty"`
// drops zero values.
//
// The output is the network format Unmarshal reads; for file format with a
// root name, use MarshalFile instead.
func Marshal(v any) ([]byte, error) {
	return MarshalOptions(v, "", true)
}

// MarshalNetwork converts a Go value to NBT bytes in network format (nameless
// root) — the format Minecraft protocol packets use.
func MarshalNetwork(v any) ([]byte, error) {
	return MarshalOptions(v, "", true)
}

// MarshalFile converts a Go value to NBT bytes in file format with the given
// root name.
func MarshalFile(v any, rootName string) ([]byte, error) {
	return MarshalOptions(v, rootName, false)
}

// MarshalOptions converts a Go value to NBT bytes with full control over
// root name and network/file format.
func MarshalOptions(v any, rootName string, network bool) ([]byte, error) {
	tag, err := MarshalTag(v)
	if err != nil {
		return nil, err
	}
	return Encode(tag, rootName, network)
}

// MarshalTag converts a Go value to a Tag without encoding it to bytes.
func MarshalTag(v any) (Tag, error) {
	return marshalValue(reflect.ValueOf(v))
}

// scalarMarshalers dispatches a reflect.Kind directly to the Tag constructor
// for it, covering every kind that needs no further structural decisions
// (unlike Slice/Array/Map/Struct, which recurse).
var scalarMarshalers = map[reflect.Kind]func(reflect.Value) Tag{
	reflect.Bool: func(v reflect.Value) Tag {
		if v.Bool() {
			return Byte(1)
		}
		return Byte(0)
	},
	reflect.Int8:    func(v reflect.Value) Tag { return Byte(v.Int()) },
	reflect.Int16:   func(v reflect.Value) Tag { return Short(v.Int()) },
	reflect.Int32:   func(v reflect.Value) Tag { return Int(v.Int()) },
	reflect.Int:     func(v reflect.Value) Tag { return Int(v.Int()) },
	reflect.Int64:   func(v reflect.Value) Tag { return Long(v.Int()) },
	reflect.Uint8:   func(v reflect.Value) Tag { return Byte(v.Uint()) },
	reflect.Uint16:  func(v reflect.Value) Tag { return Short(v.Uint()) },
	reflect.Uint32:  func(v reflect.Value) Tag { return Int(v.Uint()) },
	reflect.Uint:    func(v reflect.Value) Tag { return Int(v.Uint()) },
	reflect.Uint64:  func(v reflect.Value) Tag { return Long(v.Uint()) },
	reflect.Float32: func(v reflect.Value) Tag { return Float(v.Float()) },
	reflect.Float64: func(v reflect.Value) Tag { return Double(v.Float()) },
	reflect.String:  func(v reflect.Value) Tag { return String(v.String()) },
}

var tagInterface = reflect.TypeOf((*Tag)(nil)).Elem()

func marshalValue(v reflect.Value) (Tag, error) {
	if !v.IsValid() {
		return Compound{}, nil
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Compound{}, nil
		}
		v = v.Elem()
	}

	if v.Type().Implements(tagInterface) {
		return v.Interface().(Tag), nil
	}

	if fn, ok := scalarMarshalers[v.Kind()]; ok {
		return fn(v), nil
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return marshalSlice(v)
	case reflect.Map:
		return marshalMap(v)
	case reflect.Struct:
		return marshalStruct(v)
	default:
		return nil, fmt.Errorf("cannot marshal type %s to NBT", v.Type())
	}
}

func marshalSlice(v reflect.Value) (Tag, error) {
	switch v.Type().Elem().Kind() {
	case reflect.Uint8:
		if v.Kind() == reflect.Slice {
			return ByteArray(v.Bytes()), nil
		}
		data := make([]byte, v.Len())
		for i := range data {
			data[i] = byte(v.Index(i).Uint())
		}
		return ByteArray(data), nil

	case reflect.Int32:
		data := make(IntArray, v.Len())
		for i := range data {
			data[i] = int32(v.Index(i).Int())
		}
		return data, nil

	case reflect.Int64:
		data := make(LongArray, v.Len())
		for i := range data {
			data[i] = v.Index(i).Int()
		}
		return data, nil
	}

	if v.Len() == 0 {
		return List{ElementType: TagEnd}, nil
	}

	elements := make([]Tag, v.Len())
	var elemType byte
	for i := range elements {
		elem, err := marshalValue(v.Index(i))
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		elements[i] = elem
		if i == 0 {
			elemType = elem.ID()
		} else if elem.ID() != elemType {
			return nil, fmt.Errorf("list has mixed types: %s and %s", TagName(elemType), TagName(elem.ID()))
		}
	}
	return List{ElementType: elemType, Elements: elements}, nil
}

func marshalMap(v reflect.Value) (Tag, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("map keys must be strings, got %s", v.Type().Key())
	}

	compound := make(Compound, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		value, err := marshalValue(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("map key %q: %w", key, err)
		}
		compound[key] = value
	}
	return compound, nil
}

func marshalStruct(v reflect.Value) (Tag, error) {
	t := v.Type()
	compound := make(Compound, v.NumField())

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, opts := parseTag(field.Tag.Get("nbt"))
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		fieldValue := v.Field(i)
		if opts.Contains("omitempty") && isEmptyValue(fieldValue) {
			continue
		}

		tag, err := marshalValue(fieldValue)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		compound[name] = tag
	}
	return compound, nil
}

// tagOptions holds everything after the first comma in a struct field's nbt
// tag.
type tagOptions string

// parseTag splits a struct field's nbt tag into its name and option string.
func parseTag(tag string) (string, tagOptions) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, tagOptions(opts)
}

// Contains reports whether the comma-separated option list contains opt.
func (o tagOptions) Contains(opt string) bool {
	for _, part := range strings.Split(string(o), ",") {
		if part == opt {
			return true
		}
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	default:
		return false
	}
}
