package workflow

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/secondhand-shop/internal/apperr"
)

// мобильный номер: 11 цифр, первая 1, вторая 3..9
var mobileRe = regexp.MustCompile(`^1[3-9]\d{9}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobileRe.MatchString(fl.Field().String())
	})
	return v
}

// ValidPhone сообщает, подходит ли номер под формат мобильного.
func ValidPhone(phone string) bool {
	return mobileRe.MatchString(phone)
}

// validationError переводит ошибки validator в apperr.ErrValidation с понятным текстом.
func validationError(op string, err error, messages map[string]string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(op, err.Error())
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := messages[fe.Field()]; ok {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
	}
	return apperr.Validation(op, strings.Join(parts, "; "))
}
