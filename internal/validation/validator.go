package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the project's custom rules
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		configure(validate)
	})
	return validate
}

// Init applies the same configuration to the validator gin uses for binding
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

func configure(v *validator.Validate) {
	// Report JSON field names rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return !field.IsZero()
		}
		return strings.TrimSpace(field.String()) != ""
	})
}

// Struct validates s and returns the names of the failing fields, sorted
func Struct(s interface{}) ([]string, error) {
	err := Validator().Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	sort.Strings(fields)
	return fields, nil
}
