package usecase

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phenrril/fightshop/internal/domain"
)

var (
	// \p{Z} covers non-ASCII spaces such as U+00A0, which \s does not.
	emailRe = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s+()-]{10,}$`)
)

// checkoutInput mirrors the checkout form after trimming. Field names follow the JSON form
// keys so errors can be reported per form field.
type checkoutInput struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,mailbox"`
	Phone          string `json:"phone" validate:"required,phone"`
	DeliveryMethod string `json:"deliveryMethod"`
	City           string `json:"city" validate:"required_unless=DeliveryMethod pickup"`
	Address        string `json:"address" validate:"required_unless=DeliveryMethod pickup"`
	ZipCode        string `json:"zipCode" validate:"required_unless=DeliveryMethod pickup"`
	Terms          bool   `json:"terms" validate:"required"`
}

var checkoutMessages = map[string]string{
	"firstName.required": "Введите имя",
	"lastName.required":  "Введите фамилию",
	"email.required":     "Введите email",
	"email.mailbox":      "Некорректный email",
	"phone.required":     "Введите телефон",
	"phone.phone":        "Некорректный номер телефона",
	"city.required":      "Введите город",
	"address.required":   "Введите адрес",
	"zipCode.required":   "Введите индекс",
	"terms.required":     "Необходимо согласие с условиями",
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// NormalizeForm trims every text field of the contact form.
func NormalizeForm(f domain.ContactForm) domain.ContactForm {
	return domain.ContactForm{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		City:      strings.TrimSpace(f.City),
		Address:   strings.TrimSpace(f.Address),
		ZipCode:   strings.TrimSpace(f.ZipCode),
		Comment:   strings.TrimSpace(f.Comment),
	}
}

// ValidateCheckout checks the whole form and reports every failing field at once.
// City, address and zip code are not needed for pickup.
func ValidateCheckout(req domain.CheckoutRequest) error {
	f := NormalizeForm(req.Form)
	in := checkoutInput{
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		Email:          f.Email,
		Phone:          f.Phone,
		DeliveryMethod: string(req.DeliveryMethod),
		City:           f.City,
		Address:        f.Address,
		ZipCode:        f.ZipCode,
		Terms:          req.AgreeTerms,
	}
	err := formValidator.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := domain.ValidationErrors{}
	for _, fe := range verrs {
		tag := fe.Tag()
		if tag == "required_unless" {
			tag = "required"
		}
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := checkoutMessages[field+"."+tag]
		if !ok {
			msg = fe.Error()
		}
		out[field] = msg
	}
	return out
}
