// Command goldap is a small diagnostic front end for the client library:
// bind, search, compare and delete against a directory server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hdt3213/goldap/config"
	"github.com/hdt3213/goldap/ldap/client"
	"github.com/hdt3213/goldap/lib/logger"
)

var (
	flagAddr     string
	flagBindDN   string
	flagPassword string
	flagBaseDN   string
	flagTimeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "goldap",
	Short:         "LDAP client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		props, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		logger.Setup(&props.Log)
		if flagAddr == "" {
			flagAddr = props.Address
		}
		if flagBindDN == "" {
			flagBindDN = props.BindDN
		}
		if flagPassword == "" {
			flagPassword = props.BindPassword
		}
		if flagBaseDN == "" {
			flagBaseDN = props.BaseDN
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "server address (host:port)")
	rootCmd.PersistentFlags().StringVar(&flagBindDN, "bind-dn", "", "DN to bind as")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "bind password")
	rootCmd.PersistentFlags().StringVar(&flagBaseDN, "base", "", "search base DN")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "per-command timeout")
	rootCmd.AddCommand(bindCmd, searchCmd, compareCmd, delCmd)
}

// dial connects and, with a bind DN configured, authenticates
func dial(ctx context.Context) (*client.Client, error) {
	cli := client.MakeClient(flagAddr)
	cli.SetLogger(logger.L())
	if err := cli.Connect(); err != nil {
		return nil, err
	}
	if flagBindDN != "" {
		if err := cli.Bind(ctx, flagBindDN, flagPassword); err != nil {
			cli.Close(true)
			return nil, err
		}
	}
	return cli, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
