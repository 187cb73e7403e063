package checkout

import (
	"regexp"

	"storefront/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Swedish postal codes: three digits, a space, two digits.
var postalCodeRe = regexp.MustCompile(`^\d{3} \d{2}$`)

// customerInfoRules mirrors domain.CustomerInfo with the checkout schema
// attached. Country is a closed set; only "se" ships today.
type customerInfoRules struct {
	Email      string `validate:"required,email"`
	FirstName  string `validate:"required"`
	LastName   string `validate:"required"`
	Address    string `validate:"required"`
	City       string `validate:"required"`
	PostalCode string `validate:"required,postalcode"`
	Country    string `validate:"required,oneof=se"`
}

var fieldMessages = map[string]string{
	"Email":      "Invalid email address",
	"FirstName":  "First name is required",
	"LastName":   "Last name is required",
	"Address":    "Address is required",
	"City":       "City is required",
	"PostalCode": "Invalid postal code",
	"Country":    "Unsupported country",
}

var fieldNames = map[string]string{
	"Email":      "email",
	"FirstName":  "firstName",
	"LastName":   "lastName",
	"Address":    "address",
	"City":       "city",
	"PostalCode": "postalCode",
	"Country":    "country",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalCodeRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateCustomerInfo checks the checkout schema and returns a
// *domain.ValidationError carrying one message per failing field, or nil.
func ValidateCustomerInfo(info domain.CustomerInfo) error {
	err := validate.Struct(customerInfoRules{
		Email:      info.Email,
		FirstName:  info.FirstName,
		LastName:   info.LastName,
		Address:    info.Address,
		City:       info.City,
		PostalCode: info.PostalCode,
		Country:    info.Country,
	})
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fieldNames[fe.StructField()]
		if name == "" {
			name = fe.StructField()
		}
		msg := fieldMessages[fe.StructField()]
		if msg == "" {
			msg = "Invalid value"
		}
		fields[name] = msg
	}
	return &domain.ValidationError{Fields: fields}
}
