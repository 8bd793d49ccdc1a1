package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teatak/pos/hmm"
	"github.com/teatak/pos/tagger"
)

func newTagCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tag [words...]",
		Short: "Tag the given words, or read sentences from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, t, err := f.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				return tagLine(out, t, strings.Join(args, " "))
			}

			// Otherwise interactive mode
			fmt.Fprintln(out, "Enter text for predictions (Ctrl+D to exit):")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				text := scanner.Text()
				if strings.TrimSpace(text) == "" {
					continue
				}
				if err := tagLine(out, t, text); err != nil {
					logger.Warn("cannot tag sentence", zap.String("text", text), zap.Error(err))
				}
			}
			return scanner.Err()
		},
	}
}

func tagLine(w io.Writer, t *tagger.Tagger, text string) error {
	words, tags, err := t.TagText(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, formatTagged(words, tags))
	return nil
}

func formatTagged(words []string, tags []hmm.Tag) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w + "/" + string(tags[i])
	}
	return strings.Join(parts, " ")
}
