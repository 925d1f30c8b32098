package prefs

import (
	"fmt"
	"strconv"
)

// Kind identifies the scalar type held by a Value.
type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
)

// Value is a tagged union over the scalar types a preferences backend can hold.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int
	Float  float64
	String string
}

func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int) Value { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value { return Value{Kind: KindString, String: s} }

// Any returns the held scalar as an untyped Go value.
func (v Value) Any() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.String
	default:
		return nil
	}
}

// Encode renders the value as text for storage.
func (v Value) Encode() (string, error) {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool), nil
	case KindInt:
		return strconv.Itoa(v.Int), nil
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case KindString:
		return v.String, nil
	default:
		return "", fmt.Errorf("encode value: unknown kind %q", v.Kind)
	}
}

// Decode parses text produced by Encode back into a Value of the given kind.
func Decode(kind Kind, text string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, fmt.Errorf("decode bool: %w", err)
		}
		return BoolValue(b), nil
	case KindInt:
		i, err := strconv.Atoi(text)
		if err != nil {
			return Value{}, fmt.Errorf("decode int: %w", err)
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("decode float: %w", err)
		}
		return FloatValue(f), nil
	case KindString:
		return StringValue(text), nil
	default:
		return Value{}, fmt.Errorf("decode value: unknown kind %q", kind)
	}
}

// ValueOf wraps a Go scalar. Returns ErrKindMismatch for unsupported types.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case bool:
		return BoolValue(t), nil
	case int:
		return IntValue(t), nil
	case float64:
		return FloatValue(t), nil
	case string:
		return StringValue(t), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T", ErrKindMismatch, x)
	}
}

func (v Value) GoString() string {
	text, err := v.Encode()
	if err != nil {
		return fmt.Sprintf("prefs.Value{Kind: %q}", v.Kind)
	}
	return fmt.Sprintf("prefs.Value{%s: %s}", v.Kind, text)
}
