package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "verify the configured bind credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()
		cli, err := dial(ctx)
		if err != nil {
			return err
		}
		defer cli.Unbind(ctx)
		fmt.Println("bind ok:", flagBindDN)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <dn> <attribute> <value>",
	Short: "check whether an entry carries an attribute value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()
		cli, err := dial(ctx)
		if err != nil {
			return err
		}
		defer cli.Unbind(ctx)
		matches, err := cli.Compare(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Println(matches)
		return nil
	},
}
