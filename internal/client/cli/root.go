package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// Значения по умолчанию глобальных флагов
const (
	DefaultServerURL = "http://localhost:8080"
	DefaultDBPath    = "passvault-client.db"
)

// NewRootCommand builds the command tree bound to c
func (c *Cli) NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "passvault",
		Short:         "PassVault command-line client",
		Long:          `Stores website credentials in a PassVault server and generates passwords.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(c.io)
	root.SetErr(c.io)

	root.PersistentFlags().StringVar(&c.serverURL, "server", DefaultServerURL, "server URL")
	root.PersistentFlags().StringVar(&c.dbPath, "db", DefaultDBPath, "path to local session database")
	root.PersistentFlags().StringVar(&c.passwordFile, "password-file", "", "read account password from file")

	root.AddCommand(
		c.signupCmd(),
		c.signinCmd(),
		c.signoutCmd(),
		c.statusCmd(),
		c.listCmd(),
		c.addCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.generateCmd(),
	)

	return root
}

// Execute runs the command line and releases opened resources
func (c *Cli) Execute(ctx context.Context, version string, args []string) error {
	root := c.NewRootCommand(version)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if closeErr := c.close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}
