package utils

// StringPtrOrNil возвращает nil для пустой строки.
func StringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
