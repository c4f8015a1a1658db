// Package bind decodes and validates JSON request bodies into project errors
package bind

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "yukbul/internal/platform/errors"
	"yukbul/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom tags
type FieldLevel = validator.FieldLevel

// ValidatorSvc holds the validator with its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce    sync.Once
	vSvc     *ValidatorSvc
	jsonMore = func(dec *json.Decoder) bool { return dec.More() } // seam
)

// Get returns the validator, building it on first use. Messages use json
// field names.
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
		translate(vSvc, "min", "{0} must be at least {1}")
		translate(vSvc, "max", "{0} must be at most {1}")
	})
	return vSvc
}

// RegisterValidation adds a custom tag; msg is its english message with {0}
// for the field name
func RegisterValidation(tag string, fn func(FieldLevel) bool, msg string) error {
	s := Get()
	if err := s.Validator.RegisterValidation(tag, fn); err != nil {
		return err
	}
	translate(s, tag, msg)
	return nil
}

func translate(s *ValidatorSvc, tag, msg string) {
	_ = s.Validator.RegisterTranslation(tag, s.Translator,
		func(t ut.Translator) error { return t.Add(tag, msg, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			out, _ := t.T(tag, fe.Field(), fe.Param())
			return out
		},
	)
}

// JSONOptions controls parsing
type JSONOptions struct {
	MaxBytes       int64 // 1MB when zero
	AllowUnknown   bool
	AllowEmptyBody bool
}

// ParseJSON decodes the body into T and validates it. Decoding failures are
// ErrorCodeJSON, rule failures ErrorCodeValidation naming the field. GET and
// DELETE tolerate an empty body.
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	var o JSONOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 1 << 20
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	var peek [1]byte
	n, _ := io.ReadFull(r.Body, peek[:])
	if n == 0 {
		switch {
		case o.AllowEmptyBody, r.Method == http.MethodGet, r.Method == http.MethodDelete:
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}
	body := io.LimitReader(io.MultiReader(bytes.NewReader(peek[:n]), r.Body), o.MaxBytes)

	dec := json.NewDecoder(body)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Get().Validator.Struct(dst); err != nil {
		if inv, ok := err.(*validator.InvalidValidationError); ok {
			logger.C(r.Context()).Error().Err(inv).Msg("validator misuse")
			return zero, perr.JSONErrf("validation error")
		}
		field, msg := ValidationFieldAndMessage(err)
		return zero, perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
	}
	return dst, nil
}

// ValidationFieldAndMessage returns the first failing field and its message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}
