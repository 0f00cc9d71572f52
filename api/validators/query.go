package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/assettrack-backend/pkg/errors"
)

// ParseQueryInt reads an integer query parameter, rejecting values outside
// [min, max].
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	value, set, err := queryInt(r, key)
	if err != nil || !set {
		return defaultVal, err
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid "+key).
			WithDetails(map[string]any{key: "out of range", "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryIntClamped is ParseQueryInt for soft ceilings: values above max
// become max, values below min are still rejected.
func ParseQueryIntClamped(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	value, set, err := queryInt(r, key)
	if err != nil || !set {
		return defaultVal, err
	}
	if value < min {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid "+key).
			WithDetails(map[string]any{key: "must be at least " + strconv.Itoa(min)})
	}
	if value > max {
		return max, nil
	}
	return value, nil
}

func queryInt(r *http.Request, key string) (int, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, pkgerrors.New(pkgerrors.CodeValidation, "Invalid "+key).
			WithDetails(map[string]any{key: "must be a whole number"})
	}
	return value, true, nil
}

// ParseQueryBool treats only the literal "true" (any case) as set.
func ParseQueryBool(r *http.Request, key string) bool {
	return strings.EqualFold(strings.TrimSpace(r.URL.Query().Get(key)), "true")
}
