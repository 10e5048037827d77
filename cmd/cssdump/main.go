// Command cssdump is an acceptance-test harness: it parses a fixture
// file's CSS under #data against a tree under #tree, computes every
// #expected node's style, and reports PASS/FAIL, exiting 0 only if every
// expectation in the file held.
package main

import (
	"fmt"
	"os"

	"github.com/lukehoban/browser/css"
	"github.com/lukehoban/browser/intern"
	golog "github.com/lukehoban/browser/log"
	"github.com/lukehoban/browser/style"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	originFlag string
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cssdump <aliases_file> <test_file>",
		Short: "Run a CSS 2.1 cascade fixture and report PASS/FAIL",
		Args:  cobra.ExactArgs(2),
		RunE:  runHarness,
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also report each expectation that holds, and enable debug logging")
	cmd.Flags().StringVar(&originFlag, "origin", "author", "origin to parse #data as: ua, user, or author")
	return cmd
}

func runHarness(cmd *cobra.Command, args []string) error {
	aliasesPath, testPath := args[0], args[1]

	if verbose {
		golog.SetLevel(golog.DebugLevel)
	}

	aliases, err := loadAliases(aliasesPath)
	if err != nil {
		return fmt.Errorf("reading aliases file: %w", err)
	}
	raw, err := os.ReadFile(testPath)
	if err != nil {
		return fmt.Errorf("reading test file: %w", err)
	}
	origin, err := parseOrigin(originFlag)
	if err != nil {
		return err
	}

	result, err := evaluateFixture(string(raw), aliases, origin)
	if err != nil {
		return fmt.Errorf("%s: %w", testPath, err)
	}
	for _, line := range result.messages {
		fmt.Printf("%s: %s\n", testPath, line)
	}
	if !result.pass {
		os.Exit(1)
	}
	fmt.Printf("PASS %s\n", testPath)
	return nil
}

// evalResult is evaluateFixture's outcome: whether every expectation
// in the fixture held, plus one diagnostic line per failure (or, with
// --verbose, per success too) so both the CLI and cssdump_test.go can
// render or assert on the same information.
type evalResult struct {
	pass     bool
	messages []string
}

// evaluateFixture runs one fixture's #data through the cascade and
// checks it against #errors and #expected. Kept free of os.Exit/stdout
// so it can be exercised directly from cssdump_test.go.
func evaluateFixture(text string, aliases map[string]string, origin css.Origin) (evalResult, error) {
	fx, err := parseFixture(text)
	if err != nil {
		return evalResult{}, fmt.Errorf("parsing test file: %w", err)
	}

	sheet := css.CreateSheet("utf-8", "", "", origin, css.MediaAll, false, false, intern.New())
	appendErr := sheet.AppendData([]byte(fx.data))
	finalErr := appendErr
	if appendErr == css.Ok || appendErr == css.NeedData {
		finalErr = sheet.DataDone()
	}

	var res evalResult
	res.pass = true

	if len(fx.errors) > 0 {
		if !checkExpectedErrors(fx.errors, finalErr) {
			res.pass = false
			res.messages = append(res.messages, fmt.Sprintf("FAIL: error mismatch: want %v, got %v", fx.errors, finalErr))
		}
	} else if finalErr != css.Ok {
		res.pass = false
		res.messages = append(res.messages, fmt.Sprintf("FAIL: unexpected parse error: %v", finalErr))
	}

	ua := style.DefaultUserAgentStylesheet()
	sheets := []style.SheetRef{{Sheet: ua}, {Sheet: sheet}}

	for _, exp := range fx.expected {
		node, ok := fx.byID[exp.id]
		if !ok {
			res.pass = false
			res.messages = append(res.messages, fmt.Sprintf("FAIL: #tree has no node with id %q", exp.id))
			continue
		}
		property := resolveProperty(aliases, exp.property)
		op, ok := css.PropertyOpcode(property)
		if !ok {
			res.pass = false
			res.messages = append(res.messages, fmt.Sprintf("FAIL: #%s %s: unknown property", exp.id, property))
			continue
		}

		cs := style.Compute(style.DOMHost{}, node, sheets, css.MediaScreen, parentStyle(node, sheets), nil)
		want, err := parseExpectedValue(property, exp.value)
		if err != nil {
			res.pass = false
			res.messages = append(res.messages, fmt.Sprintf("FAIL: #%s %s: %v", exp.id, property, err))
			continue
		}
		got := cs.Get(op)
		if !valuesEqual(want, got) {
			res.pass = false
			res.messages = append(res.messages, fmt.Sprintf("FAIL: #%s %s: want %q, got %+v", exp.id, property, exp.value, got))
			continue
		}
		if verbose {
			res.messages = append(res.messages, fmt.Sprintf("ok: #%s %s: %s", exp.id, property, exp.value))
		}
	}

	return res, nil
}

// parentStyle composes every ancestor from the tree root down to n's
// parent, so an #expected line on a deeply nested node sees correctly
// inherited values rather than only its own declarations.
func parentStyle(n style.Node, sheets []style.SheetRef) *style.ComputedStyle {
	h := style.DOMHost{}
	parent := h.Parent(n)
	if parent == nil {
		return nil
	}
	grandparentStyle := parentStyle(parent, sheets)
	return style.Compute(h, parent, sheets, css.MediaScreen, grandparentStyle, nil)
}

func parseOrigin(s string) (css.Origin, error) {
	switch s {
	case "ua":
		return css.OriginUA, nil
	case "user":
		return css.OriginUser, nil
	case "author":
		return css.OriginAuthor, nil
	default:
		return 0, fmt.Errorf("unknown --origin %q (want ua, user, or author)", s)
	}
}

// checkExpectedErrors is deliberately simple: a fixture's #errors section
// is a list, but sheet.go's public surface only ever reports one terminal
// css.Error per AppendData/DataDone call (an invalid declaration is
// dropped without being reported, and a misplaced @charset or late
// @import is only logged as a warning). A fixture's #errors
// is satisfied if it names that one terminal error anywhere in its list,
// parsed with the same ErrorFromString the engine itself uses to
// round-trip an Error through text.
func checkExpectedErrors(want []string, got css.Error) bool {
	for _, w := range want {
		if parsed, ok := css.ErrorFromString(w); ok && parsed == got {
			return true
		}
	}
	return false
}
