// Package integrations routes links to the remote APIs that describe them.
//
// # Overview
//
// A provider is data plus two pure functions: a [Descriptor] (name, domain
// hint, URL pattern, rate-limit header) and a [Handler] that builds the API
// endpoint from the pattern's submatches and normalizes the JSON response
// into [preview.Data]. Each built-in provider lives in its own subpackage and
// exports a single Definition:
//
//   - [github]: GitHub repositories
//   - [npm]: npm packages via api.npms.io
//   - [crates]: Rust crates.io
//   - [packagist]: PHP Composer packages
//   - [homebrew]: Homebrew formulae
//   - [dockerhub]: Docker Hub images
//   - [amo]: Mozilla Add-ons
//   - [openlibrary]: Open Library works
//   - [datagouv]: data.gouv.fr datasets
//
// # Registry
//
// A [Registry] is an ordered list of providers. Declaration order is a
// precedence policy: [Registry.Resolve] returns the first provider whose
// pattern matches the link.
//
//	reg := integrations.MustNewRegistry(github.Definition, npm.Definition)
//	m, ok := reg.Resolve("https://github.com/octocat/Hello-World")
//	// m.Provider.Name == "github", m.Captures[1:] == ["octocat", "Hello-World"]
//
// # Shared Infrastructure
//
// The [Client] type performs the GETs for every provider. It never retries
// and never authenticates; non-2xx responses become [errors.NetworkError],
// and a 403 with an exhausted quota header becomes [errors.RateLimitedError].
//
// # Adding a New Provider
//
//  1. Create a subpackage: pkg/integrations/<provider>/
//  2. Define response structs matching the API schema
//  3. Export a Definition with a pattern, RequestURL and Normalize
//  4. Add it to [builtin] in the desired precedence position
//
// [github]: github.com/matzehuels/hovercard/pkg/integrations/github
// [npm]: github.com/matzehuels/hovercard/pkg/integrations/npm
// [crates]: github.com/matzehuels/hovercard/pkg/integrations/crates
// [packagist]: github.com/matzehuels/hovercard/pkg/integrations/packagist
// [homebrew]: github.com/matzehuels/hovercard/pkg/integrations/homebrew
// [dockerhub]: github.com/matzehuels/hovercard/pkg/integrations/dockerhub
// [amo]: github.com/matzehuels/hovercard/pkg/integrations/amo
// [openlibrary]: github.com/matzehuels/hovercard/pkg/integrations/openlibrary
// [datagouv]: github.com/matzehuels/hovercard/pkg/integrations/datagouv
// [builtin]: github.com/matzehuels/hovercard/pkg/integrations/builtin
// [preview.Data]: github.com/matzehuels/hovercard/pkg/preview.Data
// [errors.NetworkError]: github.com/matzehuels/hovercard/pkg/errors.NetworkError
// [errors.RateLimitedError]: github.com/matzehuels/hovercard/pkg/errors.RateLimitedError
package integrations
