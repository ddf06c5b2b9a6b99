package auth

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"userauth/internal/domain"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

const (
	MsgUsernameRequired = "Username required"
	MsgEmailRequired    = "Email required"
	MsgPasswordRequired = "Password required"
	MsgPasswordShort    = "Password too short"
	MsgPasswordLong     = "Password too long"
	MsgInvalidEmail     = "Invalid email"
	MsgUserTooYoung     = "User too young"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// The stock "email" tag is stricter than the address shape accepted here.
	_ = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

type rule struct {
	applies func() bool
	value   any
	tag     string
	message string
}

func always() bool { return true }

// check runs every applicable rule and keeps the message of each that fails.
func check(rules []rule) domain.ValidationResult {
	var errs []string
	for _, r := range rules {
		if !r.applies() {
			continue
		}
		if err := validate.Var(r.value, r.tag); err != nil {
			errs = append(errs, r.message)
		}
	}
	return domain.NewValidationResult(errs)
}

func ValidateRegistration(req domain.RegisterRequest) domain.ValidationResult {
	hasPassword := func() bool { return req.Password != "" }
	hasEmail := func() bool { return req.Email != "" }
	hasAge := func() bool { return req.Age != nil }

	var age int
	if req.Age != nil {
		age = *req.Age
	}

	return check([]rule{
		{always, req.Username, "required", MsgUsernameRequired},
		{always, req.Email, "required", MsgEmailRequired},
		{always, req.Password, "required", MsgPasswordRequired},
		{hasPassword, req.Password, "min=6", MsgPasswordShort},
		{hasPassword, req.Password, "maxbytes", MsgPasswordLong},
		{hasEmail, req.Email, "address", MsgInvalidEmail},
		{hasAge, age, "gte=13", MsgUserTooYoung},
	})
}

func ValidateLogin(req domain.LoginRequest) domain.ValidationResult {
	return check([]rule{
		{always, req.Username, "required", MsgUsernameRequired},
		{always, req.Password, "required", MsgPasswordRequired},
	})
}
