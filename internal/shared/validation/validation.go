package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"recruitedge-api/internal/shared/server/respond"
)

// ErrInvalid is the sentinel every FieldError unwraps to.
var ErrInvalid = errors.New("invalid input")

// FieldError reports a single invalid field detected outside of struct tags.
type FieldError struct {
	Field string
	Issue string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Issue)
}

func (e *FieldError) Unwrap() error { return ErrInvalid }

// Invalid builds a FieldError.
func Invalid(field, issue string) error {
	return &FieldError{Field: field, Issue: issue}
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// BindJSON decodes and validates the request body into dst. On failure it
// writes a 400 response and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) {
		respond.Error(c, 400, "validation_error", "request body is required", nil)
		return false
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := Issues(verrs)
		respond.Error(c, 400, "validation_error", summary(issues), issues)
		return false
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		issues := []respond.FieldIssue{{Field: field, Issue: "invalid type"}}
		respond.Error(c, 400, "validation_error", summary(issues), issues)
	case errors.As(err, &syntaxErr):
		respond.Error(c, 400, "validation_error", "invalid request body", nil)
	default:
		respond.Error(c, 400, "validation_error", "invalid request body", nil)
	}
	return false
}

// Issues converts validator errors into field issues keyed by JSON path.
func Issues(verrs validator.ValidationErrors) []respond.FieldIssue {
	out := make([]respond.FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, respond.FieldIssue{Field: fieldPath(fe), Issue: issueFor(fe)})
	}
	return out
}

// Details returns field issues for a service-level validation error, or nil.
func Details(err error) []respond.FieldIssue {
	var fe *FieldError
	if errors.As(err, &fe) {
		return []respond.FieldIssue{{Field: fe.Field, Issue: fe.Issue}}
	}
	return nil
}

// Write responds 400 for a service-level validation error.
func Write(c *gin.Context, err error) {
	details := Details(err)
	msg := err.Error()
	if len(details) > 0 {
		msg = summary(details)
	}
	respond.Error(c, 400, "validation_error", msg, details)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func issueFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gtefield":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "uuid":
		return "must be a uuid"
	default:
		return "invalid (" + fe.Tag() + ")"
	}
}

func summary(issues []respond.FieldIssue) string {
	if len(issues) == 0 {
		return "invalid request body"
	}
	if issues[0].Issue == "required" {
		return issues[0].Field + " is required"
	}
	return issues[0].Field + " " + issues[0].Issue
}
