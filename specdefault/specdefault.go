// Package specdefault is the runtime counterpart of the
// specified-default-derive generator. The generator lets you choose the
// defaults a type is constructed with: annotate struct fields with a
// `default:"..."` tag, or mark one constant of an enum-like type with a
// //specdefault:default directive, and run the generator over the package.
// The emitted Default<Type> constructor behaves exactly as a hand-written
// default would; fields without an override keep the element type's own
// default.
//
// Struct fields:
//
//	//go:generate go run github.com/kwyse/specified-default-derive generate --type Resolution
//	type Resolution struct {
//		Width  uint32 `default:"640"`
//		Height uint32 `default:"480"`
//
//		Scenes uint32
//	}
//
//	r := DefaultResolution()
//	// r.Width == 640, r.Height == 480, r.Scenes == 0
//
// Enum-like types:
//
//	type Codec int
//
//	const (
//		H264 Codec = iota
//		//specdefault:default
//		AV1
//	)
//
//	c := DefaultCodec()
//	// c == AV1
//
// Override literals are stored as text and converted only when the generated
// constructor runs, using the field type's own conversion capability: the
// builtin scalar kinds and time.Duration are parsed with the standard
// conversions, and any type implementing encoding.TextUnmarshaler is asked to
// unmarshal the literal itself. A literal that cannot be converted fails the
// construction with a diagnostic naming the field and the literal; it is
// never silently replaced by a zero value.
package specdefault

import (
	"encoding"
	"fmt"
	"strconv"
	"time"
)

// Defaulter is implemented by types that construct their own defaults.
// Generated code implements it for every processed type, which is how nested
// defaults compose; hand-written implementations participate the same way.
type Defaulter interface {
	SetDefaults()
}

// Of returns the default value of T: the Defaulter-constructed default when
// *T implements Defaulter, and the zero value otherwise.
func Of[T any]() T {
	var v T
	if d, ok := any(&v).(Defaulter); ok {
		d.SetDefaults()
	}
	return v
}

// Parse converts a default literal into a value of T using T's own text
// conversion. Builtin scalar kinds use base-10 strconv parsing; time.Duration
// uses time.ParseDuration; other types must implement
// encoding.TextUnmarshaler.
func Parse[T any](literal string) (T, error) {
	var v T
	var err error
	switch p := any(&v).(type) {
	case *string:
		*p = literal
	case *bool:
		*p, err = strconv.ParseBool(literal)
	case *int:
		var n int64
		n, err = strconv.ParseInt(literal, 10, strconv.IntSize)
		*p = int(n)
	case *int8:
		var n int64
		n, err = strconv.ParseInt(literal, 10, 8)
		*p = int8(n)
	case *int16:
		var n int64
		n, err = strconv.ParseInt(literal, 10, 16)
		*p = int16(n)
	case *int32:
		var n int64
		n, err = strconv.ParseInt(literal, 10, 32)
		*p = int32(n)
	case *int64:
		*p, err = strconv.ParseInt(literal, 10, 64)
	case *uint:
		var n uint64
		n, err = strconv.ParseUint(literal, 10, strconv.IntSize)
		*p = uint(n)
	case *uint8:
		var n uint64
		n, err = strconv.ParseUint(literal, 10, 8)
		*p = uint8(n)
	case *uint16:
		var n uint64
		n, err = strconv.ParseUint(literal, 10, 16)
		*p = uint16(n)
	case *uint32:
		var n uint64
		n, err = strconv.ParseUint(literal, 10, 32)
		*p = uint32(n)
	case *uint64:
		*p, err = strconv.ParseUint(literal, 10, 64)
	case *float32:
		var f float64
		f, err = strconv.ParseFloat(literal, 32)
		*p = float32(f)
	case *float64:
		*p, err = strconv.ParseFloat(literal, 64)
	case *time.Duration:
		*p, err = time.ParseDuration(literal)
	default:
		u, ok := any(&v).(encoding.TextUnmarshaler)
		if !ok {
			return v, fmt.Errorf("type %T cannot be constructed from a literal: implement encoding.TextUnmarshaler", v)
		}
		err = u.UnmarshalText([]byte(literal))
	}
	if err != nil {
		return v, fmt.Errorf("cannot parse %q as %T: %w", literal, v, err)
	}
	return v, nil
}

// MustParse is the conversion called by generated constructors. It panics
// when the literal does not convert, with a message carrying the offending
// literal and the type-qualified field name in where.
func MustParse[T any](literal, where string) T {
	v, err := Parse[T](literal)
	if err != nil {
		panic(fmt.Sprintf("specdefault: %s: %v", where, err))
	}
	return v
}
