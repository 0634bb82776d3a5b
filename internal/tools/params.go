package tools

import (
	"math"

	apperrors "github.com/cloud-ru/mcp-wealth-sim/internal/errors"
)

// Параметры приходят из JSON, поэтому числа обычно float64.
// Вызовы из Go могут передавать int.

func getFloat(params map[string]interface{}, key string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, apperrors.InvalidInput("invalid parameter: %s is required", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, apperrors.InvalidInput("invalid parameter: %s must be a number", key)
	}
}

func getFloatOr(params map[string]interface{}, key string, def float64) (float64, error) {
	if _, ok := params[key]; !ok {
		return def, nil
	}
	return getFloat(params, key)
}

func getInt(params map[string]interface{}, key string) (int, error) {
	v, err := getFloat(params, key)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, apperrors.InvalidInput("invalid parameter: %s must be an integer", key)
	}
	return int(v), nil
}

func getIntOr(params map[string]interface{}, key string, def int) (int, error) {
	if _, ok := params[key]; !ok {
		return def, nil
	}
	return getInt(params, key)
}

func getFloatSlice(params map[string]interface{}, key string) ([]float64, error) {
	raw, ok := params[key]
	if !ok {
		return nil, apperrors.InvalidInput("invalid parameter: %s is required", key)
	}
	switch v := raw.(type) {
	case []float64:
		return append([]float64(nil), v...), nil
	case []interface{}:
		out := make([]float64, len(v))
		for i, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, apperrors.InvalidInput("invalid parameter: %s[%d] must be a number", key, i)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, apperrors.InvalidInput("invalid parameter: %s must be an array of numbers", key)
	}
}
