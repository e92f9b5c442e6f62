package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/mapping"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

func init() {
	labelsCmd.Flags().Bool("validate", false, "only check that the figure tests have distinct styles")
	RootCmd.AddCommand(labelsCmd)
}

// labelsCmd prints the label registry, or the labels of the identifiers given as
// arguments.
var labelsCmd = &cobra.Command{
	Use:          "labels [identifier...]",
	Short:        "show the backtest labels and their styles",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		validate, err := cmd.Flags().GetBool("validate")
		if err != nil {
			return err
		}

		registry := mapping.Default
		if err := registry.Validate(mapping.FigureTests()...); err != nil {
			return err
		}
		if validate {
			return nil
		}

		ids := args
		if len(ids) == 0 {
			ids = registry.Identifiers()
		}

		labels, err := registry.RemapAll(ids)
		if err != nil {
			return err
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(*style.NewDefaultTableStyle())
		tw.AppendHeader(table.Row{"identifier", "label", "style"})
		for i, id := range ids {
			styleText := "-"
			if s, err := registry.StyleFor(labels[i]); err == nil {
				styleText = s.String()
			}
			tw.AppendRow(table.Row{id, labels[i], styleText})
		}
		tw.Render()
		return nil
	},
}
