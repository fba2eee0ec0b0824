package validators

import (
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/form/v4"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

var formDecoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := fieldName(f); name != "" {
			return name
		}
		return "-"
	})
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return checked(vals), nil
	}, false)
	return d
}

// DecodeForm resets dest to its zero value and fills it from the posted
// form. Absent checkboxes stay false; "on", "true", "1" and "yes" are checked.
func DecodeForm(r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return pkgerrors.New(pkgerrors.CodeInternal, "form destination must be a struct pointer")
	}
	rv.Elem().SetZero()

	values := make(url.Values, len(r.PostForm))
	for key, vals := range r.PostForm {
		clean := make([]string, len(vals))
		for i, v := range vals {
			clean[i] = SanitizeString(v, 0)
		}
		values[key] = clean
	}

	if err := formDecoder.Decode(dest, values); err != nil {
		return formDecodeError(err)
	}
	return nil
}

func formDecodeError(err error) error {
	errs, ok := err.(form.DecodeErrors)
	if !ok || len(errs) == 0 {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	return pkgerrors.Validation(names[0], names[0]+" is invalid")
}

func checked(values []string) bool {
	for _, v := range values {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "true", "1", "yes":
			return true
		}
	}
	return false
}
