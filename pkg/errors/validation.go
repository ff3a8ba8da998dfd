package errors

import (
	"net/url"
	"regexp"
)

// MaxNameLength caps graph names so they stay usable as file names and
// MongoDB document ids.
const MaxNameLength = 128

var graphName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName checks a graph name before it is used as a storage key.
// Names start with a letter or digit and contain only letters, digits,
// '.', '_' and '-', which keeps them inside the store directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidName, "graph name cannot be empty")
	case len(name) > MaxNameLength:
		return New(ErrCodeInvalidName, "graph name too long (max %d characters)", MaxNameLength)
	case !graphName.MatchString(name):
		return New(ErrCodeInvalidName, "invalid graph name: %q", name)
	}
	return nil
}

// ValidateURL checks a graph server base URL: it must parse, use http or
// https and name a host.
func ValidateURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "server URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid server URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "server URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "server URL has no host: %q", raw)
	}
	return nil
}
