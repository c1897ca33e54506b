package buildinfo

import (
	"strings"
	"testing"

	"github.com/matzehuels/hovercard/pkg/integrations"
)

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != integrations.DefaultUserAgent {
		t.Errorf("UserAgent() = %q for a dev build", got)
	}

	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()
	if got := UserAgent(); !strings.HasPrefix(got, "hovercard/v1.2.3 ") {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", Template())
	}
}
