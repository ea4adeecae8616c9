package query

import (
	"cmp"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses the date formats records are stored with
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TextKey compares a string field case-insensitively
func TextKey[T any](get func(*T) string) Compare[T] {
	return func(a, b *T) int {
		return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
	}
}

// NumberKey compares an unsigned integer field
func NumberKey[T any](get func(*T) uint) Compare[T] {
	return func(a, b *T) int {
		return cmp.Compare(get(a), get(b))
	}
}

// DateKey compares a date string field by calendar time. Values that do not
// parse sort before every valid date and tie with each other.
func DateKey[T any](get func(*T) string) Compare[T] {
	return func(a, b *T) int {
		ta, okA := ParseDate(get(a))
		tb, okB := ParseDate(get(b))
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		}
		return ta.Compare(tb)
	}
}

// OptionalNumberKey compares a nullable id; nil sorts before every id
func OptionalNumberKey[T any](get func(*T) *uint) Compare[T] {
	return func(a, b *T) int {
		va, vb := get(a), get(b)
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return -1
		case vb == nil:
			return 1
		}
		return cmp.Compare(*va, *vb)
	}
}

// TimeKey compares a timestamp field
func TimeKey[T any](get func(*T) time.Time) Compare[T] {
	return func(a, b *T) int {
		return get(a).Compare(get(b))
	}
}
