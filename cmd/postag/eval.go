package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teatak/pos/pipeline"
)

func newEvalCmd(f *rootFlags) *cobra.Command {
	var testText, testTags string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Train, then report tagging accuracy on a test corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, t, err := f.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if testText != "" {
				cfg.Test.Text = testText
			}
			if testTags != "" {
				cfg.Test.Tags = testTags
			}
			score, err := pipeline.Evaluate(t, cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d correct vs %d wrong (%.2f%%)\n", score.Correct, score.Wrong, score.Accuracy()*100)
			if score.PassThrough > 0 {
				fmt.Fprintf(out, "%d period tokens passed through; model-only accuracy %.2f%%\n",
					score.PassThrough, score.ModelAccuracy()*100)
			}
			if score.Failed > 0 {
				fmt.Fprintf(out, "%d sentences had no viable path\n", score.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&testText, "test-text", "", "Test sentences file (overrides config)")
	cmd.Flags().StringVar(&testTags, "test-tags", "", "Test tags file (overrides config)")
	return cmd
}
