package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/abimath/internal/app/models/dto"
	"github.com/yigit/abimath/internal/pkg/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their JSON name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FormBinder is implemented by request bodies that accept form posts
type FormBinder interface {
	BindForm(get dto.FormLookup) error
}

// BindRequest decodes the request body into obj according to its content
// type and validates the result. JSON is decoded directly; urlencoded and
// multipart forms go through obj's BindForm. An empty body leaves obj
// untouched. Any other content type is rejected.
func BindRequest(c *gin.Context, obj interface{}) error {
	switch c.ContentType() {
	case binding.MIMEJSON:
		if err := c.ShouldBindJSON(obj); err != nil {
			return apperrors.NewBadRequestError("Invalid input data. The body is not valid JSON for this request.")
		}
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		binder, ok := obj.(FormBinder)
		if !ok {
			return apperrors.NewBadRequestError("Form bodies are not accepted by this endpoint.")
		}
		if err := binder.BindForm(c.GetPostForm); err != nil {
			return apperrors.NewBadRequestError("Invalid input data. " + err.Error() + ".")
		}
	case "":
		if c.Request.ContentLength != 0 {
			return apperrors.NewBadRequestError("Missing Content-Type header.")
		}
	default:
		return apperrors.NewBadRequestError(fmt.Sprintf("Unsupported content type %q.", c.ContentType()))
	}

	return validateRequest(obj)
}

func validateRequest(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.NewValidationError(formatValidationError(fieldErrs[0]))
	}
	return apperrors.NewValidationError("Invalid input data.")
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "len":
		// grid rows are reported as "addresults[3]"
		if base, _, isRow := strings.Cut(field, "["); isRow {
			return fmt.Sprintf("Each row in %s must have %s columns.", base, e.Param())
		}
		return fmt.Sprintf("There must be %s rows in %s.", e.Param(), field)
	case "required":
		return field + " is required."
	case "min":
		return field + " must be at least " + e.Param() + "."
	case "max":
		return field + " must be at most " + e.Param() + "."
	default:
		return field + " validation failed: " + e.Tag()
	}
}
