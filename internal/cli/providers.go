package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hovercard/pkg/integrations/builtin"
)

// providersCommand creates the providers command.
func (c *CLI) providersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the built-in providers in precedence order",
		Long: `List the built-in providers. A link is served by the first provider whose
pattern matches it, so the order shown is the order links are tried in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := builtin.Registry()
			rows := make([][]string, 0, reg.Len())
			for i, p := range reg.Providers() {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					string(p.Name),
					p.DisplayName,
					p.Domain,
					p.Pattern.String(),
				})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"#", "Name", "Provider", "Domain", "Pattern"}, rows))
			return err
		},
	}
}
