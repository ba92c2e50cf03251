package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/prefs"
)

func (c *CLI) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage the preferred layout of each steno system",
		Long: `Manage the preferred layout of each steno system.

The display loads a system's preferred layout whenever the engine switches
to that system. Loading a layout stores it as the preference; resetting
the display clears it.`,
	}

	cmd.AddCommand(c.prefsListCommand())
	cmd.AddCommand(c.prefsGetCommand())
	cmd.AddCommand(c.prefsSetCommand())
	cmd.AddCommand(c.prefsClearCommand())

	return cmd
}

// withPrefs runs fn with the configured store open.
func (c *CLI) withPrefs(ctx context.Context, fn func(prefs.Store) error) error {
	s, err := c.openPrefs(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func (c *CLI) prefsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withPrefs(cmd.Context(), func(s prefs.Store) error {
				all, err := s.All(cmd.Context())
				if err != nil {
					return err
				}
				if len(all) == 0 {
					printInfo("No preferred layouts stored")
					return nil
				}
				systems := make([]string, 0, len(all))
				for sys := range all {
					systems = append(systems, sys)
				}
				sort.Strings(systems)
				rows := make([][]string, len(systems))
				for i, sys := range systems {
					rows[i] = []string{sys, all[sys]}
				}
				fmt.Println(renderTable([]string{"System", "Layout"}, rows))
				return nil
			})
		},
	}
}

func (c *CLI) prefsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SYSTEM",
		Short: "Print a system's preferred layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withPrefs(cmd.Context(), func(s prefs.Store) error {
				path, ok, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "no preferred layout for %q", args[0])
				}
				fmt.Println(path)
				return nil
			})
		},
	}
}

func (c *CLI) prefsSetCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "set SYSTEM PATH",
		Short: "Set a system's preferred layout",
		Long:  "Set a system's preferred layout. The layout is validated first unless --force is given.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			system := args[0]
			if err := errors.ValidateSystemName(system); err != nil {
				return err
			}
			path, err := filepath.Abs(args[1])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidLayoutPath, err, "resolve %s", args[1])
			}
			if !force {
				if _, err := validateFile(path); err != nil {
					return err
				}
			}
			return c.withPrefs(cmd.Context(), func(s prefs.Store) error {
				if err := s.Set(cmd.Context(), system, path); err != nil {
					return err
				}
				printSuccess("Preferred layout for %s", StyleHighlight.Render(system))
				printFile(path)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "store the path without validating the layout")
	return cmd
}

func (c *CLI) prefsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear SYSTEM",
		Short: "Forget a system's preferred layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withPrefs(cmd.Context(), func(s prefs.Store) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Cleared preferred layout for %s", StyleHighlight.Render(args[0]))
				return nil
			})
		},
	}
}
