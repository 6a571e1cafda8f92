// Package bind decodes and validates request input for handlers
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	perr "domamarket/internal/platform/errors"
	"domamarket/internal/platform/logger"
	str "domamarket/internal/platform/strings"
	"domamarket/internal/platform/validate"
)

// seam
var jsonMore = func(dec *json.Decoder) bool { return dec.More() }

// JSONOptions controls body parsing
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// ParseJSON decodes the body into T, validates it and maps failures to perr codes
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("close request body")
		}
	}()

	var reader io.Reader = r.Body
	if !o.AllowEmptyBody {
		peek := make([]byte, 1)
		n, _ := r.Body.Read(peek)
		if n == 0 {
			return zero, perr.JSONErrf("empty body")
		}
		reader = io.MultiReader(bytes.NewReader(peek[:n]), r.Body)
	}
	if o.MaxBytes > 0 {
		reader = io.LimitReader(reader, o.MaxBytes)
	}

	dec := json.NewDecoder(reader)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := validate.Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// QueryInt reads an integer query param, returning def when absent.
// Values outside [min, max] are a validation error; max <= 0 means unbounded.
func QueryInt(r *http.Request, key string, def, min, max int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, perr.WithField(perr.Validationf("%s must be an integer", key), key)
	}
	if n < min {
		return 0, perr.WithField(perr.Validationf("%s must be at least %d", key, min), key)
	}
	if max > 0 && n > max {
		return 0, perr.WithField(perr.Validationf("%s must be at most %d", key, max), key)
	}
	return n, nil
}

// QueryIntClamp reads an integer query param and clamps it into [min, max] instead of failing
func QueryIntClamp(r *http.Request, key string, def, min, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// QueryCSV reads a comma separated query param, also accepting repeated keys
func QueryCSV(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		out = append(out, str.SplitCSV(v)...)
	}
	return out
}

// Required returns the trimmed query param or a validation error naming it
func Required(r *http.Request, key string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return "", perr.WithField(perr.Validationf("%s is required", key), key)
	}
	return v, nil
}
