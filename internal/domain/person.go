package domain

// Person is a directory contact. Phone is nil when the contact has no number,
// which is distinct from an empty string.
type Person struct {
	ID     string
	Name   string
	Phone  *string
	Street string
	City   string
}

// Address is the street/city view of a person. It is never stored.
type Address struct {
	Street string
	City   string
}

// Address projects the person's address fields.
func (p Person) Address() Address {
	return Address{Street: p.Street, City: p.City}
}

// HasPhone reports whether the person carries a non-empty phone number.
func (p Person) HasPhone() bool {
	return p.Phone != nil && *p.Phone != ""
}

// WithPhone returns a copy of the person with the phone replaced.
func (p Person) WithPhone(phone *string) Person {
	p.Phone = clonePhone(phone)
	return p
}

// StringPtr is a convenience for building optional phone values.
func StringPtr(s string) *string {
	return &s
}

func clonePhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	v := *phone
	return &v
}
