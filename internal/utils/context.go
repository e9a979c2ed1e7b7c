package utils

import "context"

// GetString reads a string value stored under key; ok is false when the
// value is missing or of another type.
func GetString(ctx context.Context, key any) (string, bool) {
	s, ok := ctx.Value(key).(string)
	return s, ok && s != ""
}
