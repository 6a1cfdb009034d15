package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/readability/internal/config"
	"github.com/okian/readability/internal/domain/model"
	"github.com/okian/readability/internal/domain/scoring"
	"github.com/okian/readability/pkg/logger"
	"github.com/okian/readability/pkg/metrics"
)

const scorePrompt = "Enter the score you want to calculate (ARI, FK, SMOG, CL, all): "

var errNoSelection = errors.New("no score selected")

var (
	analyzeScore string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Score one or more text files",
	Long: `Reads each file as plain text and prints its counts, the selected
readability scores with their reader ages and the average age over all
four formulas.

Without --score the default_score setting is used. When that is empty too,
the score is asked for on standard input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeScore, "score", "s", "", "score to print: ARI, FK, SMOG, CL or all")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output reports as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if svc == nil {
		return errors.New("analysis service not configured")
	}
	ctx := cmd.Context()

	selection := strings.TrimSpace(analyzeScore)
	if selection == "" {
		selection = strings.TrimSpace(cfg.DefaultScore)
	}
	// A selection given up front fails fast; one typed at the prompt does not.
	if selection != "" {
		if _, err := parseSelection(selection); err != nil {
			return err
		}
	}

	var errs []error
	docs := make([]model.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			_ = mgr.RecordAnalysisError(metrics.ErrorKindUnreadableSource)
			logger.Get().Warn(ctx, "cannot read document", logger.String("path", path), logger.Error(err))
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}
		docs = append(docs, model.NewDocument(path, string(data)))
	}

	outcomes, err := svc.AnalyzeAll(ctx, docs)
	if err != nil {
		return err
	}

	if analyzeJSON {
		reports := make([]model.Report, 0, len(outcomes))
		for _, o := range outcomes {
			if o.Err != nil {
				errs = append(errs, o.Err)
				continue
			}
			reports = append(reports, o.Report)
		}
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal reports: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return errors.Join(errs...)
	}

	p := &printer{out: cmd.OutOrStdout(), in: bufio.NewScanner(cmd.InOrStdin()), selection: selection}
	p.in.Split(bufio.ScanWords)
	printed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
			continue
		}
		if printed > 0 {
			fmt.Fprintln(p.out)
		}
		printed++
		if err := p.printReport(o.Document, o.Report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// parseSelection turns ARI, FK, SMOG, CL or all into the formulas to print.
func parseSelection(s string) ([]scoring.Kind, error) {
	if strings.EqualFold(s, config.ScoreAll) {
		return scoring.Kinds, nil
	}
	k, err := scoring.ParseKind(s)
	if err != nil {
		return nil, err
	}
	return []scoring.Kind{k}, nil
}

// printer writes text reports. The prompt is shown at most once and its
// answer is reused for every following document.
type printer struct {
	out       io.Writer
	in        *bufio.Scanner
	selection string
}

func (p *printer) printReport(doc model.Document, r model.Report) error {
	fmt.Fprintln(p.out, doc.Name)
	fmt.Fprintln(p.out, "The text is:")
	fmt.Fprintln(p.out, strings.TrimRight(doc.Text, "\r\n"))
	fmt.Fprintf(p.out, "Words: %d\n", r.Metrics.Words)
	fmt.Fprintf(p.out, "Sentences: %d\n", r.Metrics.Sentences)
	fmt.Fprintf(p.out, "Characters: %d\n", r.Metrics.Characters)
	fmt.Fprintf(p.out, "Syllables: %d\n", r.Metrics.Syllables)
	fmt.Fprintf(p.out, "Polysyllables: %d\n", r.Metrics.Polysyllables)

	if p.selection == "" {
		fmt.Fprint(p.out, scorePrompt)
		if p.in.Scan() {
			p.selection = p.in.Text()
		}
	}

	var selErr error
	kinds, err := parseSelection(p.selection)
	switch {
	case p.selection == "":
		selErr = errNoSelection
	case err != nil:
		selErr = err
	}

	// Ends the prompt line, or separates the counts when no prompt was shown.
	fmt.Fprintln(p.out)
	for _, k := range kinds {
		res, ok := r.Score(k)
		if !ok {
			continue
		}
		fmt.Fprintf(p.out, "%s: %s (about %d year olds).\n", k.Title(), formatNumber(res.Score), res.Age)
	}
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "This text should be understood on average by %s year olds.\n", formatNumber(r.AverageAge))
	return selErr
}

// formatNumber prints v with as many decimals as needed but at least one.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
