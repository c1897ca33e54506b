package integrations_test

import (
	"fmt"
	"regexp"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

func ExampleRegistry_Resolve() {
	reg := integrations.MustNewRegistry(integrations.Definition{
		Descriptor: integrations.Descriptor{
			Name:    "example",
			Pattern: regexp.MustCompile(`example\.com/items/([0-9]+)`),
		},
		Handler: integrations.Handler{
			RequestURL: func(c []string) string { return "https://api.example.com/items/" + c[1] },
			Normalize:  func([]byte) (preview.Data, error) { return preview.Data{}, nil },
		},
	})

	m, ok := reg.Resolve("https://example.com/items/42")
	fmt.Println(ok, m.Provider.Name)
	fmt.Println(m.RequestURL())
	fmt.Println(m.CacheKey())
	// Output:
	// true example
	// https://api.example.com/items/42
	// example:https://api.example.com/items/42
}
