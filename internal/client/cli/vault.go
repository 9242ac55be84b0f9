package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iudanet/passvault/internal/client/iocli"
	"github.com/iudanet/passvault/internal/generator"
	pkgapi "github.com/iudanet/passvault/pkg/api"
)

const maskedPassword = "••••••••"

func (c *Cli) listCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, _, err := c.requireSession(ctx)
			if err != nil {
				return err
			}

			entries, err := s.Vault.ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			if len(entries) == 0 {
				c.io.Println("No entries found.")
				c.io.Printf("Use %s to add your first entry.\n", iocli.Code.Sprint("passvault add"))
				return nil
			}

			tw := tabwriter.NewWriter(c.io, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tPASSWORD\tURL\tCREATED")
			for _, e := range entries {
				password := maskedPassword
				if show {
					password = e.Password
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Title, e.Username, password, e.URL, e.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			c.io.Printf("\n%d entr%s\n", len(entries), plural(len(entries), "y", "ies"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "show passwords in clear text")
	return cmd
}

// entryFlags поля записи из флагов команд add и edit
type entryFlags struct {
	title    string
	username string
	url      string
	notes    string
	password bool
	generate bool
	length   int
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "entry title")
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "login for the site")
	cmd.Flags().StringVar(&f.url, "url", "", "site URL")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVarP(&f.generate, "generate", "g", false, "generate a random password")
	cmd.Flags().IntVar(&f.length, "length", generator.DefaultLength, "generated password length")
}

// secret возвращает сгенерированный или введенный пароль записи
func (c *Cli) secret(f *entryFlags) (string, error) {
	if f.generate {
		opts := generator.DefaultOptions()
		opts.Length = f.length
		pwd, err := generator.Generate(opts)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		c.io.Printf("Generated password %s\n", iocli.Muted.Sprintf("strength: %s", generator.Rate(pwd)))
		return pwd, nil
	}

	pwd, err := c.io.ReadPassword("Entry password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if pwd == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return pwd, nil
}

func (c *Cli) addCmd() *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, _, err := c.requireSession(ctx)
			if err != nil {
				return err
			}

			title, err := c.readRequired(f.title, "Title: ")
			if err != nil {
				return err
			}
			username, err := c.readRequired(f.username, "Username: ")
			if err != nil {
				return err
			}
			password, err := c.secret(&f)
			if err != nil {
				return err
			}

			entry, err := s.Vault.CreateEntry(ctx, pkgapi.EntryRequest{
				Title:    title,
				Username: username,
				Password: password,
				URL:      f.url,
				Notes:    f.notes,
			})
			if err != nil {
				return fmt.Errorf("failed to add entry: %w", err)
			}

			c.io.Printf("%s Added %s\n", iocli.Success.Sprint("✓"), iocli.Highlight.Sprint(entry.Title))
			c.io.Printf("ID: %s\n", entry.ID)
			return nil
		},
	}

	f.bind(cmd)
	return cmd
}

func (c *Cli) editCmd() *cobra.Command {
	var f entryFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace fields of an entry",
		Long: `Replaces the entry with the current values merged with the given flags.
Fields without a flag keep their value; pass --url "" or --notes "" to clear them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, _, err := c.requireSession(ctx)
			if err != nil {
				return err
			}

			current, err := findEntry(ctx, s.Vault, args[0])
			if err != nil {
				return err
			}

			req := pkgapi.EntryRequest{
				ID:       current.ID,
				Title:    current.Title,
				Username: current.Username,
				Password: current.Password,
				URL:      current.URL,
				Notes:    current.Notes,
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = f.title
			}
			if flags.Changed("username") {
				req.Username = f.username
			}
			if flags.Changed("url") {
				req.URL = f.url
			}
			if flags.Changed("notes") {
				req.Notes = f.notes
			}
			if f.password || f.generate {
				if req.Password, err = c.secret(&f); err != nil {
					return err
				}
			}

			entry, err := s.Vault.UpdateEntry(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to update entry: %w", err)
			}

			c.io.Printf("%s Updated %s\n", iocli.Success.Sprint("✓"), iocli.Highlight.Sprint(entry.Title))
			return nil
		},
	}

	f.bind(cmd)
	cmd.Flags().BoolVarP(&f.password, "password", "p", false, "prompt for a new password")
	return cmd
}

func (c *Cli) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, _, err := c.requireSession(ctx)
			if err != nil {
				return err
			}

			id := args[0]
			if !yes {
				answer, err := c.io.ReadInput(fmt.Sprintf("Delete entry %s? [y/N]: ", id))
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					c.io.Println(iocli.Muted.Sprint("Cancelled"))
					return nil
				}
			}

			if err := s.Vault.DeleteEntry(ctx, id); err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}

			c.io.Printf("%s Deleted %s\n", iocli.Success.Sprint("✓"), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// findEntry ищет запись по ID в списке пользователя
func findEntry(ctx context.Context, vault VaultAPI, id string) (*pkgapi.Entry, error) {
	entries, err := vault.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("entry %s not found", id)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
