package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input shape rules for the user endpoints. Rules are pure: no I/O, no
// storage lookups. Uniqueness checks belong to the service layer.

var (
	nameRe = regexp.MustCompile(`^[A-Za-z ]+$`)
	// Explicit email pass on top of the validator's own syntax check;
	// both must agree or the field is rejected.
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// CreateUserRequest is the JSON body for registration and user creation.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100,name_chars"`
	Email    string `json:"email" validate:"required,email,email_format,max=120"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Age      *int   `json:"age" validate:"omitnil,min=1,max=150"`
}

// UpdateUserRequest is the JSON body for partial updates. Every field is
// optional; absent fields leave the stored value untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=2,max=100,name_chars"`
	Email    *string `json:"email" validate:"omitnil,email,email_format,max=120"`
	Password *string `json:"password" validate:"omitnil,min=6,max=128"`
	Age      *int    `json:"age" validate:"omitnil,min=1,max=150"`
	IsActive *bool   `json:"is_active"`
}

// LoginRequest is the JSON body for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validator validates user input and reports every failing field.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the custom name and email rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("name_chars", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("email_format", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Validate checks the given request struct and returns a map of field name
// to messages. All failing fields are collected before returning; the map
// is nil when the input is valid.
func (va *Validator) Validate(input any) map[string][]string {
	err := va.v.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_": {err.Error()}}
	}

	details := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		details[field] = append(details[field], message(field, fe.Tag()))
	}
	return details
}

func message(field, tag string) string {
	switch field {
	case "name":
		switch tag {
		case "required":
			return "Name is required"
		case "name_chars":
			return "Name can only contain letters and spaces"
		default:
			return "Name must be between 2 and 100 characters"
		}
	case "email":
		switch tag {
		case "required":
			return "Email is required"
		case "max":
			return "Email must be at most 120 characters"
		default:
			return "Invalid email format"
		}
	case "password":
		if tag == "required" {
			return "Password is required"
		}
		return "Password must be between 6 and 128 characters"
	case "age":
		return "Age must be between 1 and 150"
	}
	return "Invalid value"
}
