package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"astroinsight/internal/answer"
	"astroinsight/internal/domain"
	"astroinsight/internal/service"
)

var (
	askSummary    bool
	askHighlights bool
	askTimeout    time.Duration
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answer",
	Long: `Ask a single question and print the answer with its sources.

Example:
  astroinsight ask how does radiation affect immune cells
  astroinsight ask "bone loss in microgravity" --summary --highlights`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askSummary, "summary", false, "also print an extractive summary")
	askCmd.Flags().BoolVar(&askHighlights, "highlights", false, "also print keywords and key sentences")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", time.Minute, "timeout for the whole request")
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := service.FromConfig(appCfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
	defer cancel()

	out := cmd.OutOrStdout()
	ans, err := svc.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(out, answer.Placeholder)
		return err
	}
	analysis := svc.Analyze(ans.Text)
	printAnswer(out, ans, analysis.Confidence)
	if askSummary {
		fmt.Fprintf(out, "\nSummary:\n%s\n", analysis.Summary)
	}
	if askHighlights {
		fmt.Fprintln(out)
		printHighlights(out, analysis.Highlights)
	}
	return nil
}

func printAnswer(w io.Writer, ans *domain.Answer, conf domain.Confidence) {
	fmt.Fprintf(w, "%s\n\n%s\n", ans.Title, ans.Text)
	if len(ans.Citations) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, c := range ans.Citations {
			line := "  - " + c.Title
			if c.Year > 0 {
				line += fmt.Sprintf(" (%d)", c.Year)
			}
			if c.URL != "" {
				line += " " + c.URL
			}
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintf(w, "\nConfidence: %s\n", conf.Level)
}

func printHighlights(w io.Writer, h domain.Highlights) {
	fmt.Fprintf(w, "Keywords: %s\n", strings.Join(h.Keywords, ", "))
	fmt.Fprintln(w, "Key sentences:")
	for i, s := range h.Sentences {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s)
	}
}
