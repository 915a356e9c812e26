package domain

import (
	"fmt"
	"strings"
)

// PhoneFilter restricts person listings by phone presence.
type PhoneFilter string

const (
	PhoneAny PhoneFilter = ""
	PhoneYes PhoneFilter = "YES"
	PhoneNo  PhoneFilter = "NO"
)

// ParsePhoneFilter accepts YES, NO or an empty value.
func ParsePhoneFilter(value string) (PhoneFilter, error) {
	switch f := PhoneFilter(strings.ToUpper(strings.TrimSpace(value))); f {
	case PhoneAny, PhoneYes, PhoneNo:
		return f, nil
	default:
		return PhoneAny, fmt.Errorf("unknown phone filter %q", value)
	}
}

// Match reports whether the person passes the filter.
func (f PhoneFilter) Match(p Person) bool {
	switch f {
	case PhoneYes:
		return p.HasPhone()
	case PhoneNo:
		return !p.HasPhone()
	default:
		return true
	}
}

// Apply returns the persons that pass the filter, preserving order.
func (f PhoneFilter) Apply(persons []Person) []Person {
	if f == PhoneAny {
		return persons
	}
	out := make([]Person, 0, len(persons))
	for _, p := range persons {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
