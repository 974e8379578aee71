package middleware

import (
	"net/http"
	"strings"
	"unicode"
)

// CaseInsensitive lowercases request paths so routes match the upper case
// URLs printed in label QR codes (alphanumeric QR mode only encodes upper
// case), e.g. /API/LOCATIONS/4-016-0026-30
func CaseInsensitive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.IndexFunc(r.URL.Path, unicode.IsUpper) >= 0 {
			r.URL.Path = strings.ToLower(r.URL.Path)
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}
