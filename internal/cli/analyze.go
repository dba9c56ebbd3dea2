package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"astroinsight/internal/highlight"
	"astroinsight/internal/summarizer"
)

var (
	analyzeSentences int
	analyzeKeywords  int
	analyzeWorkers   int
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file...]",
	Short: "Print the key sentences of text files or stdin",
	Long: `Print an extractive summary of each file, or of stdin when no file is given.
Sentences keep their original order.

Example:
  astroinsight summarize paper.txt notes.txt --sentences 3
  curl -s https://example.org/abstract.txt | astroinsight summarize`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sum := summarizer.NewFrequencySummarizer(summarizer.WithStopwords(appCfg.Stopwords()))
		n := pick(analyzeSentences, appCfg.Analysis.SummarySentences)
		return runTexts(cmd, args, func(w io.Writer, text string) {
			fmt.Fprintln(w, sum.Summarize(text, n))
		})
	},
}

var highlightsCmd = &cobra.Command{
	Use:   "highlights [file...]",
	Short: "Print the top keywords and key sentences of text files or stdin",
	Long: `Print the most frequent keywords of each file, or of stdin when no file is
given, followed by the sentences containing most of them, best first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ext := highlight.NewExtractor(highlight.WithStopwords(appCfg.Stopwords()))
		k := pick(analyzeKeywords, appCfg.Analysis.Keywords)
		n := pick(analyzeSentences, appCfg.Analysis.HighlightSentences)
		return runTexts(cmd, args, func(w io.Writer, text string) {
			printHighlights(w, ext.Extract(text, k, n))
		})
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd, highlightsCmd)

	for _, c := range []*cobra.Command{summarizeCmd, highlightsCmd} {
		c.Flags().IntVarP(&analyzeSentences, "sentences", "n", 0, "number of sentences (default from config)")
		c.Flags().IntVar(&analyzeWorkers, "workers", runtime.NumCPU(), "number of files processed in parallel")
	}
	highlightsCmd.Flags().IntVarP(&analyzeKeywords, "keywords", "k", 0, "number of keywords (default from config)")
}

func pick(flag, fallback int) int {
	if flag > 0 {
		return flag
	}
	return fallback
}

// runTexts applies render to stdin or to every file in args. Files are
// processed on a worker pool and printed in argument order.
func runTexts(cmd *cobra.Command, args []string, render func(w io.Writer, text string)) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		render(out, string(data))
		return nil
	}

	workers := analyzeWorkers
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	results := make([]bytes.Buffer, len(args))
	errs := make([]error, len(args))
	var wg sync.WaitGroup
	for i, path := range args {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			data, err := os.ReadFile(path)
			if err != nil {
				errs[i] = err
				return
			}
			render(&results[i], string(data))
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for i, path := range args {
		if errs[i] != nil {
			continue
		}
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", path)
		}
		_, _ = results[i].WriteTo(out)
	}
	return errors.Join(errs...)
}
