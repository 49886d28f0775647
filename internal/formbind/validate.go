package formbind

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	dErrors "veriadmin/pkg/domain-errors"
)

const notBlankTag = "notblank"

// FieldErrors maps a form field's JSON name to its message.
type FieldErrors map[string]string

type formValidator struct {
	validate  *validator.Validate
	trans     ut.Translator
	jsonNames map[string]string
	goNames   map[string]string
}

var std = newFormValidator()

func newFormValidator() *formValidator {
	v := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(v, trans)

	// messages use the human label, e.g. "City is required"
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	_ = v.RegisterValidation(notBlankTag, notBlank)
	for _, tag := range []string{"required", notBlankTag} {
		_ = v.RegisterTranslation(tag, trans, func(t ut.Translator) error {
			return t.Add(tag, "{0} is required", true)
		}, translate(tag))
	}

	fv := &formValidator{
		validate:  v,
		trans:     trans,
		jsonNames: map[string]string{},
		goNames:   map[string]string{},
	}
	typ := reflect.TypeOf(Form{})
	for i := range typ.NumField() {
		f := typ.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		fv.jsonNames[f.Name] = name
		fv.goNames[name] = f.Name
	}
	return fv
}

func translate(tag string) validator.TranslationFunc {
	return func(t ut.Translator, fe validator.FieldError) string {
		msg, err := t.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

// Validate checks f against the profile: required fields must be filled in
// and every filled-in field must be well formed. It returns nil or a
// validation error whose fields map JSON names to messages.
func Validate(p Profile, f Form) error {
	f = f.Normalize()
	fields := std.fieldsToCheck(p, f)
	if len(fields) == 0 {
		return nil
	}
	err := std.validate.StructPartial(f, fields...)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "form validation failed")
	}
	out := FieldErrors{}
	var first string
	for _, fe := range verrs {
		name := std.jsonNames[fe.StructField()]
		if _, dup := out[name]; dup {
			continue
		}
		out[name] = fe.Translate(std.trans)
		if first == "" {
			first = out[name]
		}
	}
	return dErrors.NewValidation(first, out)
}

// fieldsToCheck is the Go names of the required fields plus every optional
// field that has a value.
func (fv *formValidator) fieldsToCheck(p Profile, f Form) []string {
	present := f.present()
	var out []string
	for json, goName := range fv.goNames {
		if p.requires(json) || present[json] {
			out = append(out, goName)
		}
	}
	return out
}
