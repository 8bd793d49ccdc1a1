package main

import (
	"fmt"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/teatak/pos/hmm"
)

func newInspectCmd(f *rootFlags) *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Train, then print a summary of the model tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, t, err := f.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			m := t.Model()
			trans := m.Transitions()
			obs := m.Observations()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "tags: %d\n", len(m.Tags()))
			for _, tag := range m.Tags() {
				fmt.Fprintf(out, "  %-8s successors=%-4d words=%d\n", tag, len(trans[tag]), len(obs[tag]))
			}
			starts := make([]string, 0, len(trans[hmm.Start]))
			for tag := range trans[hmm.Start] {
				starts = append(starts, string(tag))
			}
			sort.Strings(starts)
			fmt.Fprintf(out, "sentence-initial tags: %v\n", starts)

			if dump {
				cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
				cfg.Fdump(out, trans, obs)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the full transition and observation tables")
	return cmd
}
