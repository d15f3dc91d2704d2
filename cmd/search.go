package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hdt3213/goldap/ldap/protocol"
)

var flagAttrs []string

var searchCmd = &cobra.Command{
	Use:   "search <attribute[=value]>...",
	Short: "search entries below the base DN",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()
		cli, err := dial(ctx)
		if err != nil {
			return err
		}
		defer cli.Unbind(ctx)

		filters := make([]protocol.Filter, 0, len(args))
		for _, arg := range args {
			filters = append(filters, parseFilterArg(arg))
		}
		filter := filters[0]
		if len(filters) > 1 {
			filter = protocol.And(filters...)
		}
		req := protocol.MakeSearchRequest(flagBaseDN, filter, flagAttrs...)
		result, err := cli.Search(ctx, req)
		if err != nil {
			return err
		}
		for _, entry := range result.Entries {
			fmt.Println("dn:", entry.DN)
			for _, attr := range entry.Attributes {
				for _, value := range attr.Values {
					fmt.Printf("%s: %s\n", attr.Name, value)
				}
			}
			fmt.Println()
		}
		fmt.Printf("# %d entries\n", len(result.Entries))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSliceVar(&flagAttrs, "attr", nil, "attributes to return (default: all)")
}

// parseFilterArg turns "attr=value" into an equality filter and a bare
// "attr" (or "attr=*") into a presence filter
func parseFilterArg(arg string) protocol.Filter {
	name, value, found := strings.Cut(arg, "=")
	if !found || value == "*" {
		return protocol.Present(name)
	}
	return protocol.Equal(name, value)
}
