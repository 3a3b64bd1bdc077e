package model

import "fmt"

// String returns a pointer to s. Optional string fields are pointers.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int32 returns a pointer to i.
func Int32(i int32) *int32 { return &i }

func deref(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

func derefAny[T any](v *T) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(*v)
}
