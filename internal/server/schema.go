package server

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/vanshika/phonebook/backend/internal/directory"
	"github.com/vanshika/phonebook/backend/internal/domain"
	"github.com/vanshika/phonebook/backend/internal/service"
)

// Directory is the resolution contract the schema is built on.
type Directory interface {
	PersonCount(ctx context.Context) int
	AllPersons(ctx context.Context, filter domain.PhoneFilter) ([]domain.Person, error)
	FindPerson(ctx context.Context, name string) *domain.Person
	AddPerson(ctx context.Context, in service.PersonInput) (domain.Person, error)
	EditNumber(ctx context.Context, name string, phone *string) *domain.Person
}

// UserInputError is reported to clients with code BAD_USER_INPUT and the
// offending argument under invalidArgs.
type UserInputError struct {
	Message     string
	InvalidArgs any
}

func (e *UserInputError) Error() string {
	return e.Message
}

// Extensions implements gqlerrors.ExtendedError.
func (e *UserInputError) Extensions() map[string]any {
	return map[string]any{
		"code":        "BAD_USER_INPUT",
		"invalidArgs": e.InvalidArgs,
	}
}

// NewSchema builds the executable schema:
//
//	enum YesNo { YES NO }
//	type Address { street: String! city: String! }
//	type Person { name: String! phone: String address: Address! city: String! id: ID! }
//	type Query {
//	  personCount: Int!
//	  allPersons(phone: YesNo): [Person]!
//	  findPerson(name: String!): Person
//	}
//	type Mutation {
//	  addPerson(name: String!, phone: String, street: String!, city: String!): Person
//	  editNumber(name: String!, phone: String): Person
//	}
func NewSchema(dir Directory) (graphql.Schema, error) {
	yesNo := graphql.NewEnum(graphql.EnumConfig{
		Name: "YesNo",
		Values: graphql.EnumValueConfigMap{
			"YES": &graphql.EnumValueConfig{Value: string(domain.PhoneYes)},
			"NO":  &graphql.EnumValueConfig{Value: string(domain.PhoneNo)},
		},
	})

	addressType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Address",
		Fields: graphql.Fields{
			"street": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Address).Street, nil
				},
			},
			"city": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(domain.Address).City, nil
				},
			},
		},
	})

	personType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Person",
		Fields: graphql.Fields{
			"name": personField(graphql.NewNonNull(graphql.String), func(p domain.Person) any { return p.Name }),
			"phone": personField(graphql.String, func(p domain.Person) any {
				if p.Phone == nil {
					return nil
				}
				return *p.Phone
			}),
			"address": personField(graphql.NewNonNull(addressType), func(p domain.Person) any { return p.Address() }),
			"city":    personField(graphql.NewNonNull(graphql.String), func(p domain.Person) any { return p.City }),
			"id":      personField(graphql.NewNonNull(graphql.ID), func(p domain.Person) any { return p.ID }),
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"personCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return dir.PersonCount(p.Context), nil
				},
			},
			"allPersons": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(personType)),
				Args: graphql.FieldConfigArgument{
					"phone": &graphql.ArgumentConfig{Type: yesNo},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					filter := domain.PhoneAny
					if v, ok := p.Args["phone"].(string); ok {
						filter = domain.PhoneFilter(v)
					}
					return dir.AllPersons(p.Context, filter)
				},
			},
			"findPerson": &graphql.Field{
				Type: personType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return nullablePerson(dir.FindPerson(p.Context, stringArg(p, "name"))), nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addPerson": &graphql.Field{
				Type: personType,
				Args: graphql.FieldConfigArgument{
					"name":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone":  &graphql.ArgumentConfig{Type: graphql.String},
					"street": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"city":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					person, err := dir.AddPerson(p.Context, service.PersonInput{
						Name:   stringArg(p, "name"),
						Phone:  optionalStringArg(p, "phone"),
						Street: stringArg(p, "street"),
						City:   stringArg(p, "city"),
					})
					var dup *directory.DuplicateNameError
					switch {
					case errors.As(err, &dup):
						return nil, &UserInputError{Message: "Person already exists", InvalidArgs: dup.Name}
					case err != nil:
						return nil, err
					}
					return person, nil
				},
			},
			"editNumber": &graphql.Field{
				Type: personType,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return nullablePerson(dir.EditNumber(p.Context, stringArg(p, "name"), optionalStringArg(p, "phone"))), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// personField resolves a Person field; the address is derived here on every read.
func personField(typ graphql.Output, get func(domain.Person) any) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			switch src := p.Source.(type) {
			case domain.Person:
				return get(src), nil
			case *domain.Person:
				if src == nil {
					return nil, nil
				}
				return get(*src), nil
			default:
				return nil, nil
			}
		},
	}
}

func nullablePerson(p *domain.Person) any {
	if p == nil {
		return nil
	}
	return *p
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func optionalStringArg(p graphql.ResolveParams, name string) *string {
	v, ok := p.Args[name].(string)
	if !ok {
		return nil
	}
	return &v
}
