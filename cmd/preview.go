package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrills/internal/logging"
	"github.com/abhisek/mathdrills/internal/present"
	"github.com/abhisek/mathdrills/internal/problemgen"
	"github.com/abhisek/mathdrills/internal/session"
	"github.com/abhisek/mathdrills/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer questions for one activity on stdin (no store)",
	Long: `Generate and interactively answer questions for a single activity.

This is a stateless developer tool: nothing is saved. The same --seed always
produces the same questions, which makes it handy for checking a generator.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("activity", "", "Activity ID (required)")
	previewCmd.Flags().Int("tier", 1, "Starting difficulty tier")
	previewCmd.Flags().Uint64("seed", 0, "First question seed (0 picks one from the clock)")
	previewCmd.Flags().Int("count", 5, "Number of questions")
	_ = previewCmd.MarkFlagRequired("activity")
}

func runPreview(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("activity")
	tier, _ := cmd.Flags().GetInt("tier")
	seed, _ := cmd.Flags().GetUint64("seed")
	count, _ := cmd.Flags().GetInt("count")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg.OverridesFile)
	if err != nil {
		return err
	}
	act, err := catalog.Get(id)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	next := seed
	eng := session.NewEngine(act,
		session.WithSeedSource(func() uint64 { next++; return next - 1 }),
		session.WithLogger(logging.Discard()),
	)
	s := eng.NewSession("preview")
	s.Difficulty.Tier = act.Controller().Clamp(tier)

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(out, "%s (%s, grade %d), starting at tier %d, seed %d\n\n",
		act.Name, act.ID, act.Grade, s.Tier(), seed)

	for i := 1; i <= count; i++ {
		if err := eng.Next(s); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		q := s.Active

		fmt.Fprintf(out, "%s\nQuestion %d/%d  (tier %d, seed %d)\n%s\n", sep, i, count, q.Tier, q.Seed, sep)
		blocks := present.Render(act, s).Blocks
		fmt.Fprintln(out, components.RenderBlocks(blocks, 76, numeralButtons(blocks)))

		var res session.Result
		for {
			values, err := readAnswer(out, in, q)
			if err != nil {
				fmt.Fprintln(out, "\n(input closed)")
				return printPreviewSummary(out, eng.BuildSummary(s))
			}
			res, err = eng.Submit(s, present.AnswerFromForm(q, func(name string) string { return values[name] }))
			if errors.Is(err, problemgen.ErrEmptyAnswer) {
				fmt.Fprintln(out, "Please enter an answer before checking.")
				continue
			}
			if err != nil {
				return err
			}
			break
		}

		if res.Correct {
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ Not quite. Correct answer: %s\n", res.Expected)
		}
		fmt.Fprintf(out, "Explanation: %s\n", res.Explanation)
		switch {
		case res.Change.Raised():
			fmt.Fprintf(out, "Level up! Now at tier %d.\n", res.Change.To)
		case res.Change.Lowered():
			fmt.Fprintf(out, "Back to tier %d.\n", res.Change.To)
		}
		fmt.Fprintln(out)
	}

	return printPreviewSummary(out, eng.BuildSummary(s))
}

// readAnswer prompts for every field of q and returns the values by form
// field name. Choices may be answered by option number.
func readAnswer(out io.Writer, in *bufio.Scanner, q *problemgen.Question) (map[string]string, error) {
	ask := func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(in.Text()), nil
	}

	values := make(map[string]string)
	switch p := q.Payload.(type) {
	case *problemgen.Blanks:
		for _, b := range p.Blanks {
			v, err := ask(b.Label)
			if err != nil {
				return nil, err
			}
			values[present.FieldBlankPrefix+b.Name] = optionText(b.Options, v)
		}
	case *problemgen.Sequence:
		v, err := ask("Order (item numbers, comma separated)")
		if err != nil {
			return nil, err
		}
		values[present.FieldOrder] = v
	case *problemgen.Choice:
		v, err := ask("Your choice")
		if err != nil {
			return nil, err
		}
		values[present.FieldAnswer] = optionText(p.Options, v)
	default:
		v, err := ask("Your answer")
		if err != nil {
			return nil, err
		}
		values[present.FieldAnswer] = v
	}
	return values, nil
}

// optionText maps a 1-based option number to its text. Options that are
// numbers themselves are never numbered, so the value is returned as typed.
func optionText(options []string, v string) string {
	if slices.Contains(options, v) || components.NumeralOptions(options) {
		return v
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return v
}

// numeralButtons renders button groups whose options are numbers as a plain
// list, so the learner types the number itself.
func numeralButtons(blocks []present.Block) components.WidgetFunc {
	plain := make(map[string]string)
	var walk func([]present.Block)
	walk = func(bs []present.Block) {
		for _, b := range bs {
			switch b := b.(type) {
			case present.Buttons:
				if components.NumeralOptions(b.Options) {
					plain[b.Name] = b.Label + "\n  Options: " + strings.Join(b.Options, ", ")
				}
			case present.Columns:
				for _, c := range b.Columns {
					walk(c)
				}
			}
		}
	}
	walk(blocks)
	return func(name string) (string, bool) {
		v, ok := plain[name]
		return v, ok
	}
}

func printPreviewSummary(out io.Writer, sum *session.Summary) error {
	fmt.Fprintf(out, "── Summary: %d/%d correct, finished at tier %d of %d ──\n",
		sum.Correct, sum.Attempted, sum.Tier, sum.MaxTier)
	return nil
}
