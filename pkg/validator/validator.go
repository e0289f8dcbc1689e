package validator

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	strict    *bluemonday.Policy
	initOnce  sync.Once

	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	spacePattern = regexp.MustCompile(`\s+`)
)

func Init() {
	initOnce.Do(func() {
		validate = validator.New()

		sanitizer = bluemonday.UGCPolicy()
		sanitizer.AllowAttrs("class").Globally()
		strict = bluemonday.StrictPolicy()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("slug", validateSlug)
	_ = v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

// SanitizeHTML keeps user-generated-content markup and drops scripts,
// event handlers and unsafe URLs.
func SanitizeHTML(html string) string {
	Init()
	return sanitizer.Sanitize(html)
}

func SanitizeString(s string) string {
	Init()
	return strict.Sanitize(s)
}

func IsSlug(value string) bool {
	return slugPattern.MatchString(value)
}

func validateSlug(fl validator.FieldLevel) bool {
	return IsSlug(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

func NormalizeSpaces(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}
