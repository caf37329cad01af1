package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RegisterInput is the payload of POST /users.
type RegisterInput struct {
	Username string `json:"username" validate:"notblank,max=100"`
	Password string `json:"password" validate:"notblank,max=100"`
	Name     string `json:"name" validate:"notblank,max=100"`
}

// LoginInput is the payload of POST /users/login.
type LoginInput struct {
	Username string `json:"username" validate:"notblank,max=100"`
	Password string `json:"password" validate:"notblank,max=100"`
}

// UpdateUserInput is the payload of PATCH /users/current. Absent fields are
// nil and left untouched.
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitnil,notblank,max=100"`
	Password *string `json:"password" validate:"omitnil,notblank,max=100"`
}

// ContactInput is the payload of POST /contacts and PUT /contacts/{id}.
type ContactInput struct {
	FirstName string  `json:"first_name" validate:"notblank,max=50"`
	LastName  *string `json:"last_name" validate:"omitnil,max=50"`
	Email     *string `json:"email" validate:"omitnil,max=200,email"`
	Phone     *string `json:"phone" validate:"omitnil,max=20"`
}

// AddressInput is the payload of the address create and update endpoints.
type AddressInput struct {
	Street     *string `json:"street" validate:"omitnil,max=200"`
	City       *string `json:"city" validate:"omitnil,max=100"`
	Province   *string `json:"province" validate:"omitnil,max=100"`
	Country    string  `json:"country" validate:"notblank,max=100"`
	PostalCode *string `json:"postal_code" validate:"omitnil,max=10"`
}

// inputValidator is safe for concurrent use and caches struct metadata.
var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	default:
		return fe.Field() + " is invalid"
	}
}

// validateInput runs the struct tags of in and converts failures into a
// *common.ValidationError keyed by JSON field name.
func validateInput(in any) error {
	err := inputValidator.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	v := common.NewValidationError()
	for _, fe := range fieldErrs {
		v.Add(fe.Field(), fieldMessage(fe))
	}
	return v.OrNil()
}

// Validate methods check the normalized form of the input, so surrounding
// whitespace and empty optional fields are judged the way they are stored.

func (in RegisterInput) Validate() error {
	return validateInput(in.normalize())
}

func (in LoginInput) Validate() error {
	return validateInput(in.normalize())
}

func (in UpdateUserInput) Validate() error {
	return validateInput(in.normalize())
}

func (in ContactInput) Validate() error {
	return validateInput(in.normalize())
}

func (in AddressInput) Validate() error {
	return validateInput(in.normalize())
}

// normalize trims surrounding whitespace. Passwords are kept verbatim.
func (in RegisterInput) normalize() RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	return in
}

func (in LoginInput) normalize() LoginInput {
	in.Username = strings.TrimSpace(in.Username)
	return in
}

// An empty name stays non-nil so validation rejects it.
func (in UpdateUserInput) normalize() UpdateUserInput {
	in.Name = trimmed(in.Name)
	return in
}

// normalize trims the fields and turns empty optional strings into nil, so
// "" and an absent field are stored the same way.
func (in ContactInput) normalize() ContactInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = nullIfEmpty(in.LastName)
	in.Email = nullIfEmpty(in.Email)
	in.Phone = nullIfEmpty(in.Phone)
	return in
}

func (in AddressInput) normalize() AddressInput {
	in.Street = nullIfEmpty(in.Street)
	in.City = nullIfEmpty(in.City)
	in.Province = nullIfEmpty(in.Province)
	in.Country = strings.TrimSpace(in.Country)
	in.PostalCode = nullIfEmpty(in.PostalCode)
	return in
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func nullIfEmpty(s *string) *string {
	s = trimmed(s)
	if s == nil || *s == "" {
		return nil
	}
	return s
}
