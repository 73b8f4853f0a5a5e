package checkout

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Step names the checkout page a form belongs to.
type Step string

const (
	StepTrip      Step = "trip"
	StepContact   Step = "contact"
	StepTravelers Step = "travelers"
	StepReview    Step = "review"
)

// ValidationResult is returned, never raised. Errors is keyed by the json
// path of the offending field.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

type TripForm struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Adults    int    `json:"adults" validate:"min=1"`
	Children  int    `json:"children" validate:"min=0"`
	Infants   int    `json:"infants" validate:"min=0"`
}

type ContactForm struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	Country   string `json:"country" validate:"required"`
}

type TravelerForm struct {
	FullName    string `json:"full_name" validate:"required"`
	Nationality string `json:"nationality" validate:"required"`
	PassportNo  string `json:"passport_no"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type TravelersForm struct {
	Travelers []TravelerForm `json:"travelers" validate:"required,min=1,dive"`
}

type ReviewForm struct {
	AcceptTerms bool `json:"accept_terms" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStep decodes form as the step's schema and checks it.
func ValidateStep(step Step, form json.RawMessage) ValidationResult {
	var target any
	switch step {
	case StepTrip:
		target = &TripForm{}
	case StepContact:
		target = &ContactForm{}
	case StepTravelers:
		target = &TravelersForm{}
	case StepReview:
		target = &ReviewForm{}
	default:
		return invalid("step", "unknown checkout step")
	}

	if len(form) == 0 {
		form = json.RawMessage("{}")
	}
	if err := json.Unmarshal(form, target); err != nil {
		return invalid("form", "malformed form")
	}
	return check(target)
}

func check(form any) ValidationResult {
	res := ValidationResult{IsValid: true, Errors: map[string]string{}}

	err := validate.Struct(form)
	if err == nil {
		return res
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return invalid("form", "malformed form")
	}

	res.IsValid = false
	for _, fe := range errs {
		res.Errors[fieldPath(fe.Namespace())] = message(fe)
	}
	return res
}

// fieldPath drops the struct name validator puts in front.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Bool {
			return "must be accepted"
		}
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "needs at least " + fe.Param()
		}
		if fe.Kind() == reflect.String {
			return "is too short"
		}
		return "must be at least " + fe.Param()
	case "max":
		return "is too long"
	}
	return "is invalid"
}

func invalid(field, msg string) ValidationResult {
	return ValidationResult{IsValid: false, Errors: map[string]string{field: msg}}
}

// validateSubmission runs every step against a full submission and merges
// the results.
func validateSubmission(req *SubmitRequest) ValidationResult {
	travelers := make([]TravelerForm, len(req.Travelers))
	for i, t := range req.Travelers {
		travelers[i] = TravelerForm(t)
	}

	forms := []any{
		&TripForm{
			StartDate: req.Selection.StartDate,
			Adults:    req.Selection.Adults,
			Children:  req.Selection.Children,
			Infants:   req.Selection.Infants,
		},
		&ContactForm{
			FirstName: req.Contact.FirstName,
			LastName:  req.Contact.LastName,
			Email:     req.Contact.Email,
			Phone:     req.Contact.Phone,
			Country:   req.Contact.Country,
		},
		&TravelersForm{Travelers: travelers},
		&ReviewForm{AcceptTerms: req.AcceptTerms},
	}

	res := ValidationResult{IsValid: true, Errors: map[string]string{}}
	for _, f := range forms {
		r := check(f)
		for k, v := range r.Errors {
			res.Errors[k] = v
		}
		res.IsValid = res.IsValid && r.IsValid
	}
	return res
}
