package core

import (
	"math"
	"net/url"
	"slices"
	"strings"
)

// All is the filter sentinel that bypasses an enum filter.
const All = "all"

func parseEnum[E ~string](field, s string, allowed []E) (E, error) {
	v := E(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(allowed, v) {
		return v, nil
	}
	return "", enumError(field, s, allowed)
}

func enumError[E ~string](field, s string, allowed []E) error {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return invalid(field, "%q is not one of %s", s, strings.Join(names, ", "))
}

func checkEnum[E ~string](field string, v E, allowed []E) error {
	if slices.Contains(allowed, v) {
		return nil
	}
	return enumError(field, string(v), allowed)
}

func checkLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return invalid("name", "must not be empty")
	}
	return nil
}

func checkPrice(field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a non-negative amount, got %v", v)
	}
	return nil
}

// checkRating accepts values in [1, 5] that are multiples of step.
func checkRating(field string, v, step float64) error {
	if v < 1 || v > 5 {
		return invalid(field, "must be between 1 and 5, got %v", v)
	}
	if q := v / step; q != math.Trunc(q) {
		return invalid(field, "must be a multiple of %v, got %v", step, v)
	}
	return nil
}

func checkURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(field, "%q is not an absolute URL", raw)
	}
	return nil
}
