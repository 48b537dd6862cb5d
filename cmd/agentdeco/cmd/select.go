package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psantana5/agentdeco/internal/program"
)

var (
	selectAgent   string
	selectPayment int64
	selectTarget  string
)

var selectCmd = &cobra.Command{
	Use:   "select --agent <ID> [--payment N] [--target NAME]",
	Short: "Ask one agent which wrapper it hands out",
	Long: `Select pays an agent and prints the chain of agents it went through and
the kind of wrapper that came back. With --target the wrapper is applied to
that built-in function and the function is called once with no arguments.

Agents: 0, 1, 2 take a payment (defaults from config); 3 and kekw take none.

Example:
  agentdeco select --agent 1 --payment 90000
  agentdeco select --agent 2 --payment 6900000 --target gachiBASS`,
	Args: cobra.NoArgs,
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().StringVar(&selectAgent, "agent", "", "agent id: 0, 1, 2, 3 or kekw")
	selectCmd.Flags().Int64Var(&selectPayment, "payment", 0, "payment handed to the agent (default from config)")
	selectCmd.Flags().StringVar(&selectTarget, "target", "", "built-in function to decorate and call")
	selectCmd.MarkFlagRequired("agent")
}

func runSelect(cmd *cobra.Command, args []string) error {
	s := newSession(cmd)
	out := cmd.OutOrStdout()

	var payment *int64
	if cmd.Flags().Changed("payment") {
		payment = &selectPayment
	}

	sel, err := s.dispatcher.Resolve(selectAgent, payment)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Selected %s via %s\n", sel.Kind, sel.PathString())

	if selectTarget == "" {
		return nil
	}

	target, err := program.NewBuiltins(out, cfg.Nap).Target(selectTarget)
	if err != nil {
		return err
	}
	decorated, err := s.dispatcher.Decorate(sel, target)
	if err != nil {
		return err
	}
	s.rec.Scope(sel.Kind.String(), sel.PathString())
	_, err = decorated.Call()
	return err
}
