package http

import (
	"net"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/light-bringer/pricing-service/internal/pkg/locale"
)

const visitorKeyHeader = "X-Visitor-Key"

// NewValidator returns a validator that names fields by their json tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// requestLocale reads ?locale= and falls back to Accept-Language.
func requestLocale(r *http.Request) locale.Locale {
	if tag := r.URL.Query().Get("locale"); tag != "" {
		return locale.Parse(tag)
	}
	return locale.Parse(r.Header.Get("Accept-Language"))
}

// clientIP returns the caller's public address, or "" when it is loopback or private so the
// IP provider falls back to the address it sees.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
