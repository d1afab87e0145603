package pure

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ComparableOrStringer is an argument usable in a table key: either comparable at
// runtime or a fmt.Stringer.
type ComparableOrStringer any

// ComparableOrString is a single part of a table key.
type ComparableOrString any

var ErrUnhashableKey = errors.New("unhashable key")

// Kwarg is a named argument.
type Kwarg struct {
	Name  string
	Value ComparableOrStringer
}

// Kwargs keeps keyword arguments in insertion order. The order is part of the key,
// so f(x=1, y=2) and f(y=2, x=1) are tabled separately.
type Kwargs []Kwarg

// Args are the arguments of one call.
type Args struct {
	Pos []ComparableOrStringer
	Kw  Kwargs
}

// A builds Args from positional arguments.
func A(pos ...ComparableOrStringer) Args {
	return Args{Pos: pos}
}

// With returns a copy of a with the keyword argument appended.
func (a Args) With(name string, value ComparableOrStringer) Args {
	kw := make(Kwargs, len(a.Kw), len(a.Kw)+1)
	copy(kw, a.Kw)
	return Args{Pos: a.Pos, Kw: append(kw, Kwarg{Name: name, Value: value})}
}

// Key is the table key of one call: positional parts followed by keyword parts.
type Key []ComparableOrString

type stringerKey struct {
	typ reflect.Type
	s   string
}

type kwKey struct {
	name  string
	value ComparableOrString
}

// NewKey builds the table key for args.
func NewKey(args Args) (Key, error) {
	key := make(Key, 0, len(args.Pos)+len(args.Kw))
	for i, arg := range args.Pos {
		k, err := tableKey(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d of type %T", err, i, arg)
		}
		key = append(key, k)
	}
	for _, kw := range args.Kw {
		k, err := tableKey(kw.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %q of type %T", err, kw.Name, kw.Value)
		}
		key = append(key, kwKey{name: kw.Name, value: k})
	}
	return key, nil
}

func tableKey(i ComparableOrStringer) (ComparableOrString, error) {
	if i == nil {
		return nil, nil
	}
	// String on a nil pointer may dereference it; key it by identity instead
	if v := reflect.ValueOf(i); v.Kind() == reflect.Pointer && v.IsNil() {
		return i, nil
	}
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringerKey{typ: reflect.TypeOf(i), s: stringer.String()}, nil
	}
	if !reflect.ValueOf(i).Comparable() {
		return nil, ErrUnhashableKey
	}
	return i, nil
}

// Equal reports whether both keys have equal parts in the same order.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// Fingerprint renders the key as type-tagged text. Flat stores index entries by it,
// so two keys share an entry only when their fingerprints are identical. Every
// string inside a part is quoted, so the 0x1f separator never appears unescaped.
func (k Key) Fingerprint() string {
	var b strings.Builder
	for i, part := range k {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		writePart(&b, part)
	}
	return b.String()
}

// Hash is the xxhash of the fingerprint.
func (k Key) Hash() uint64 {
	return xxhash.Sum64String(k.Fingerprint())
}

func writePart(b *strings.Builder, part ComparableOrString) {
	switch p := part.(type) {
	case nil:
		b.WriteString("<nil>")
	case kwKey:
		fmt.Fprintf(b, "%q=", p.name)
		writePart(b, p.value)
	case stringerKey:
		fmt.Fprintf(b, "%s(%q)", p.typ, p.s)
	default:
		v := reflect.ValueOf(p)
		switch v.Kind() {
		case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
			// identity, not contents
			fmt.Fprintf(b, "%T@%#x", p, v.Pointer())
		default:
			fmt.Fprintf(b, "%T(%#v)", p, p)
		}
	}
}
