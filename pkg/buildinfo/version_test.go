package buildinfo

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := UserAgent(); got != "spiderweb/v9.9.9" {
		t.Errorf("UserAgent = %q", got)
	}
	if !strings.Contains(String(), "version: v9.9.9") {
		t.Errorf("String = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v9.9.9") {
		t.Errorf("Template = %q", Template())
	}
}
