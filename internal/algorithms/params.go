package algorithms

import "fmt"

// Parameters arrive either from Go literals (float64, as in the defaults) or
// from YAML, which decodes whole numbers as int.

func numberParam(params map[string]interface{}, key string) (float64, bool, error) {
	val, ok := params[key]
	if !ok {
		return 0, false, nil
	}
	switch v := val.(type) {
	case float64:
		return v, true, nil
	case float32:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("parameter %s has unsupported type %T", key, val)
	}
}

func intParam(params map[string]interface{}, key string, def int) int {
	v, ok, err := numberParam(params, key)
	if !ok || err != nil {
		return def
	}
	return int(v)
}

func floatParam(params map[string]interface{}, key string, def float64) float64 {
	v, ok, err := numberParam(params, key)
	if !ok || err != nil {
		return def
	}
	return v
}

// checkRange validates an optional numeric parameter.
func checkRange(params map[string]interface{}, key string, min, max float64) error {
	v, ok, err := numberParam(params, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if v < min || v > max {
		return fmt.Errorf("%s must be between %g and %g", key, min, max)
	}
	return nil
}
