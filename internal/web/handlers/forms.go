package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single inline validation message, rendered next to the
// offending form field.
type FieldError struct {
	Field       string
	Description string
}

var validate = validator.New()

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type registerForm struct {
	Username string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=customer admin"`
}

type productForm struct {
	Name          string `validate:"required"`
	SKU           string
	Category      string
	Description   string
	Price         float64 `validate:"gte=0"`
	Quantity      int     `validate:"gte=0"`
	MinStockLevel int     `validate:"gte=0"`
	Supplier      string
	FormToken     string
}

// parseProductForm decodes the posted product fields. Numeric fields that do
// not parse come back as field errors rather than aborting the request.
func parseProductForm(r *http.Request) (productForm, []FieldError) {
	r.ParseForm()
	form := productForm{
		Name:          r.PostFormValue("name"),
		SKU:           r.PostFormValue("sku"),
		Category:      r.PostFormValue("category"),
		Description:   r.PostFormValue("description"),
		Supplier:      r.PostFormValue("supplier"),
		MinStockLevel: 10,
		FormToken:     r.PostFormValue("form_token"),
	}

	var errs []FieldError
	if raw := r.PostFormValue("price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: "Price", Description: "Price must be a number"})
		} else {
			form.Price = v
		}
	}
	if raw := r.PostFormValue("quantity"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, FieldError{Field: "Quantity", Description: "Quantity must be a whole number"})
		} else {
			form.Quantity = v
		}
	}
	if raw := r.PostFormValue("min_stock_level"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, FieldError{Field: "MinStockLevel", Description: "Minimum stock level must be a whole number"})
		} else {
			form.MinStockLevel = v
		}
	}
	return form, errs
}

// check validates the form. SKU is only required on create; the edit form
// never posts one.
func (f productForm) check(requireSKU bool) []FieldError {
	errs := describe(validate.Struct(f))
	if requireSKU && f.SKU == "" {
		errs = append(errs, FieldError{Field: "SKU", Description: "SKU is required"})
	}
	return errs
}

func describe(err error) []FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Description: "invalid input"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Description: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "email":
		return "Email must be a valid address"
	case "gte":
		return fe.Field() + " cannot be negative"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	}
	return fe.Field() + " is invalid"
}
