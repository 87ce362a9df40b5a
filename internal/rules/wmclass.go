package rules

import "strings"

// ParseWMClass splits a raw WM_CLASS property value, two NUL-terminated
// strings, into its instance and class.
func ParseWMClass(raw string) (instance, class string) {
	parts := strings.SplitN(raw, "\x00", 3)
	instance = parts[0]
	if len(parts) > 1 {
		class = parts[1]
	}
	return instance, class
}
