package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.4.0"
	if got := UserAgent(); got != "eleitos/v1.4.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "commit: "+Commit) {
		t.Errorf("Template() missing commit: %q", Template())
	}
}
