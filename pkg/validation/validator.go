package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Init configures the global validator used by Gin's binding so error
// messages refer to JSON field names rather than Go struct fields.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// Email validates a single email value outside struct binding. Resource
// documents are schemaless, so the few contract fields are checked this way.
func Email(value string) error {
	return validate.Var(value, "required,email")
}

// ToDetails converts binding/validation errors into a field→message map
// suitable for the envelope's error payload.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			switch fe.Tag() {
			case "required":
				details[field] = "is required"
			case "email":
				details[field] = "must be a valid email"
			case "min":
				details[field] = fmt.Sprintf("must be at least %s characters", fe.Param())
			case "max":
				details[field] = fmt.Sprintf("must be at most %s characters", fe.Param())
			default:
				details[field] = "is invalid"
			}
		}
		return details
	}

	return map[string]string{"payload": err.Error()}
}
