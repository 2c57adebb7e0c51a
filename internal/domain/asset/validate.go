package asset

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("asset_type", func(fl validator.FieldLevel) bool {
			return Type(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Validate checks that a loaded record is usable: a known type, a positive
// serial and a name.
func (a *Asset) Validate() error {
	err := recordValidator().Struct(a)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid record: %s", strings.Join(msgs, ", "))
}
