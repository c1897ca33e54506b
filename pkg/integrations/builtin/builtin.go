// Package builtin assembles the default provider registry.
package builtin

import (
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/integrations/amo"
	"github.com/matzehuels/hovercard/pkg/integrations/crates"
	"github.com/matzehuels/hovercard/pkg/integrations/datagouv"
	"github.com/matzehuels/hovercard/pkg/integrations/dockerhub"
	"github.com/matzehuels/hovercard/pkg/integrations/github"
	"github.com/matzehuels/hovercard/pkg/integrations/homebrew"
	"github.com/matzehuels/hovercard/pkg/integrations/npm"
	"github.com/matzehuels/hovercard/pkg/integrations/openlibrary"
	"github.com/matzehuels/hovercard/pkg/integrations/packagist"
)

// Definitions returns the built-in providers in precedence order.
func Definitions() []integrations.Definition {
	return []integrations.Definition{
		github.Definition,
		npm.Definition,
		crates.Definition,
		packagist.Definition,
		homebrew.Definition,
		dockerhub.Definition,
		amo.Definition,
		openlibrary.Definition,
		datagouv.Definition,
	}
}

// Registry returns a new registry of the built-in providers.
func Registry() *integrations.Registry {
	return integrations.MustNewRegistry(Definitions()...)
}
