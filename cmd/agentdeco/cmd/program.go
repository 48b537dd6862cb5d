package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/psantana5/agentdeco/internal/program"
)

var programOutput string

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Show the steps a run executes",
	Long:  `Lists the configured steps, or the five built-in ones when the config has none.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSteps(cmd.OutOrStdout(), cfg.Steps(), programOutput)
	},
}

func init() {
	rootCmd.AddCommand(programCmd)
	programCmd.Flags().StringVarP(&programOutput, "output", "o", "table", "Output format: table, json, yaml")
}

func writeSteps(w io.Writer, steps []program.Step, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(steps)

	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(steps); err != nil {
			return err
		}
		return encoder.Close()

	case "table":
		table := tablewriter.NewWriter(w)
		table.Header("#", "Define", "Target", "Agent", "Payment", "Args")
		for i, s := range steps {
			args := make([]string, len(s.Args))
			for j, a := range s.Args {
				args[j] = fmt.Sprint(a)
			}
			table.Append([]string{
				fmt.Sprintf("%d", i+1),
				fmt.Sprintf("%d", s.Define),
				s.Target,
				s.Agent,
				s.PaymentString(),
				strings.Join(args, ", "),
			})
		}
		return table.Render()

	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}
