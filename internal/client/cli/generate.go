package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/passvault/internal/client/iocli"
	"github.com/iudanet/passvault/internal/generator"
)

const defaultClearAfter = 15 * time.Second

func (c *Cli) generateCmd() *cobra.Command {
	var (
		length         int
		noUpper        bool
		noLower        bool
		noNumbers      bool
		noSymbols      bool
		excludeSimilar bool
		copyToClip     bool
		clearAfter     time.Duration
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a random password",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generator.Options{
				Length:         length,
				Uppercase:      !noUpper,
				Lowercase:      !noLower,
				Numbers:        !noNumbers,
				Symbols:        !noSymbols,
				ExcludeSimilar: excludeSimilar,
			}

			pwd, err := generator.Generate(opts)
			if err != nil {
				return err
			}

			c.io.Println(pwd)
			c.io.Printf("Strength: %s\n", strengthLabel(generator.Rate(pwd)))

			if !copyToClip {
				return nil
			}
			return c.copyAndClear(pwd, clearAfter)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&length, "length", "l", generator.DefaultLength, "password length")
	flags.BoolVar(&noUpper, "no-upper", false, "exclude uppercase letters")
	flags.BoolVar(&noLower, "no-lower", false, "exclude lowercase letters")
	flags.BoolVar(&noNumbers, "no-numbers", false, "exclude digits")
	flags.BoolVar(&noSymbols, "no-symbols", false, "exclude symbols")
	flags.BoolVar(&excludeSimilar, "exclude-similar", false, "exclude look-alike characters ("+generator.SimilarChars+")")
	flags.BoolVarP(&copyToClip, "copy", "c", false, "copy the password to the clipboard")
	flags.DurationVar(&clearAfter, "clear-after", defaultClearAfter, "clear the clipboard after this delay (0 keeps it)")

	return cmd
}

// copyAndClear копирует пароль и очищает буфер по истечении задержки,
// если в нем все еще этот пароль
func (c *Cli) copyAndClear(pwd string, clearAfter time.Duration) error {
	if err := c.clipboard.WriteAll(pwd); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	if clearAfter <= 0 {
		c.io.Println(iocli.Success.Sprint("✓ Copied to clipboard"))
		return nil
	}

	c.io.Printf("%s %s\n", iocli.Success.Sprint("✓ Copied to clipboard"),
		iocli.Muted.Sprintf("clears in %s", clearAfter))
	c.sleep(clearAfter)

	current, err := c.clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	if current != pwd {
		return nil
	}
	if err := c.clipboard.WriteAll(""); err != nil {
		return fmt.Errorf("failed to clear clipboard: %w", err)
	}
	c.io.Println(iocli.Muted.Sprint("Clipboard cleared"))
	return nil
}

func strengthLabel(s generator.Strength) string {
	switch s {
	case generator.Weak:
		return iocli.Error.Sprint(string(s))
	case generator.Medium:
		return iocli.Warning.Sprint(string(s))
	default:
		return iocli.Success.Sprint(string(s))
	}
}
