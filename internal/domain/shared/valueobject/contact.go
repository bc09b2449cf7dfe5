package valueobject

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10,15}$`)
	imageURLPattern = regexp.MustCompile(`^(https?://).+\.(jpg|jpeg|png|webp)$`)
)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhoneNumber reports whether s is 10 to 15 digits.
func IsPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// IsImageURL reports whether s is an http(s) URL ending in a supported image extension.
func IsImageURL(s string) bool {
	return imageURLPattern.MatchString(s)
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
