package utils

func StringPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NilIfEmpty returns nil for the empty string so the column is stored as NULL.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
