package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Value is a decoded JSON value that preserves object field order.
type Value struct {
	Kind   Kind
	Str    string // string contents, or the literal text of a number
	Bool   bool
	Items  []*Value
	Fields []Field
}

// Field is one key/value pair of an object.
type Field struct {
	Key   string
	Value *Value
}

// Get returns the value stored under key, or nil when v is not an object or has no such key.
// Duplicate keys resolve to the last occurrence.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != Object {
		return nil
	}
	var found *Value
	for _, f := range v.Fields {
		if f.Key == key {
			found = f.Value
		}
	}
	return found
}

// Text returns the string contents, or "" for any other kind.
func (v *Value) Text() string {
	if v == nil || v.Kind != String {
		return ""
	}
	return v.Str
}

// List returns the elements of an array, or nil for any other kind.
func (v *Value) List() []*Value {
	if v == nil || v.Kind != Array {
		return nil
	}
	return v.Items
}

// Repr renders any value as text, so identifiers of any kind can be searched as strings.
func (v *Value) Repr() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case String, Number:
		return v.Str
	case Bool:
		return fmt.Sprint(v.Bool)
	case Null:
		return "null"
	}

	var b strings.Builder
	stack := []*Value{v}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch cur.Kind {
		case Array:
			for i := len(cur.Items) - 1; i >= 0; i-- {
				stack = append(stack, cur.Items[i])
			}
		case Object:
			for i := len(cur.Fields) - 1; i >= 0; i-- {
				stack = append(stack, cur.Fields[i].Value, &Value{Kind: String, Str: cur.Fields[i].Key})
			}
		default:
			b.WriteString(cur.Repr())
			b.WriteByte(' ')
		}
	}
	return b.String()
}

type frame struct {
	value     *Value
	key       string
	expectKey bool
}

// Decode parses exactly one JSON value from s.
func Decode(s string) (*Value, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var (
		root  *Value
		stack []*frame
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		var v *Value
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				v = &Value{Kind: Object}
			case '[':
				v = &Value{Kind: Array}
			default:
				stack = stack[:len(stack)-1]
				continue
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].expectKey {
				stack[n-1].key = t
				stack[n-1].expectKey = false
				continue
			}
			v = &Value{Kind: String, Str: t}
		case json.Number:
			v = &Value{Kind: Number, Str: t.String()}
		case bool:
			v = &Value{Kind: Bool, Bool: t}
		case nil:
			v = &Value{Kind: Null}
		default:
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		if n := len(stack); n == 0 {
			if root != nil {
				return nil, fmt.Errorf("unexpected data after top-level value")
			}
			root = v
		} else {
			parent := stack[n-1]
			if parent.value.Kind == Array {
				parent.value.Items = append(parent.value.Items, v)
			} else {
				parent.value.Fields = append(parent.value.Fields, Field{Key: parent.key, Value: v})
				parent.expectKey = true
			}
		}

		if v.Kind == Object || v.Kind == Array {
			stack = append(stack, &frame{value: v, expectKey: v.Kind == Object})
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no JSON value found")
	}
	if len(stack) > 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}
