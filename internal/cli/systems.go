package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stenoboard/pkg/steno"
)

func (c *CLI) systemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "systems [name]",
		Short: "List known steno systems, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				sys, err := c.registry.Get(args[0])
				if err != nil {
					return err
				}
				printSystem(sys)
				return nil
			}

			var rows [][]string
			for _, name := range c.registry.Names() {
				sys, _ := c.registry.Lookup(name)
				def := ""
				if name == c.cfg.DefaultSystem {
					def = iconSuccess
				}
				rows = append(rows, []string{name, fmt.Sprint(len(sys.Keys)), fmt.Sprint(len(sys.Numbers)), sys.NumberKey, def})
			}
			fmt.Println(renderTable([]string{"System", "Keys", "Numbers", "Number key", "Default"}, rows))
			return nil
		},
	}
}

func printSystem(sys steno.System) {
	fmt.Println(StyleTitle.Render(sys.Name))
	printKeyValue("Keys", strings.Join(sys.Keys, " "))
	printKeyValue("Number key", sys.NumberKey)

	digits := make([]string, 0, len(sys.Numbers))
	for d := range sys.Numbers {
		digits = append(digits, d)
	}
	sort.Strings(digits)
	pairs := make([]string, len(digits))
	for i, d := range digits {
		pairs[i] = d + "=" + sys.Numbers[d]
	}
	printKeyValue("Numbers", strings.Join(pairs, " "))
}
