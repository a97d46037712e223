package enum

import "fmt"

// scanString reads a string-backed enum value coming from the database driver
func scanString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("enum: cannot scan %T", value)
	}
}
