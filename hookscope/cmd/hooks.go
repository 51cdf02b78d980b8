package cmd

import (
	"fmt"

	"github.com/sarchlab/hookscope/correlation"
	"github.com/spf13/cobra"
)

func newHooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hooks",
		Short: "List the hooks of a capability set and which ones a demo class implements.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFor(cmd)
			if err != nil {
				return err
			}

			class, set, err := pickClass(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := correlation.Rows(class, set, nil)

			fmt.Fprintf(out, "%s, %s set, %d of %d implemented\n",
				class.Name(), set, correlation.ImplementedCount(rows), len(rows))

			for _, row := range rows {
				mark := " "
				if row.Implemented {
					mark = "x"
				}

				fmt.Fprintf(out, "  [%s] %s\n", mark, row.Hook)
			}

			return nil
		},
	}
}
