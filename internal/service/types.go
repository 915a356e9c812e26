package service

import "github.com/vanshika/phonebook/backend/internal/domain"

// PersonInput is the payload accepted by AddPerson.
type PersonInput struct {
	Name   string  `json:"name"`
	Phone  *string `json:"phone,omitempty"`
	Street string  `json:"street"`
	City   string  `json:"city"`
}

// ToDomain converts the input into an unsaved person.
func (in PersonInput) ToDomain() domain.Person {
	return domain.Person{
		Name:   in.Name,
		Phone:  in.Phone,
		Street: in.Street,
		City:   in.City,
	}
}

// IngestRecord is one entry of a person dataset file. ID may be empty.
type IngestRecord struct {
	ID string `json:"id,omitempty"`
	PersonInput
}
