package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var delCmd = &cobra.Command{
	Use:   "del <dn>",
	Short: "delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()
		cli, err := dial(ctx)
		if err != nil {
			return err
		}
		defer cli.Unbind(ctx)
		if err := cli.Del(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("deleted:", args[0])
		return nil
	},
}
