package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/paths"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-tree> <new-tree>",
	Short: "Show directories added and removed between two saved trees",
	Long: `Parse two saved directory trees and print a line diff of their
canonical reports. Lines starting with "+" exist only in the new tree,
lines starting with "-" only in the old one.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().Bool("all", false, "also print unchanged lines")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cleanup := setupLogging(cmd)
	defer cleanup()

	before, err := canonicalTree(paths.ResolveDataFile(cfg.DataDir, args[0]))
	if err != nil {
		return err
	}
	after, err := canonicalTree(paths.ResolveDataFile(cfg.DataDir, args[1]))
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	added, removed := writeLineDiff(cmd.OutOrStdout(), before, after, all)
	fmt.Fprintf(cmd.ErrOrStderr(), "%d added, %d removed\n", added, removed)
	return nil
}

// parseTreeFile loads the saved tree at path into f.
func parseTreeFile(f *dirtree.Forest, path string) (*dirtree.Node, error) {
	file, err := os.Open(path) //nolint:gosec // G304: path comes from the user
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	root, err := dirtree.ParseTreeReader(f, file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, nil
}

// canonicalTree parses the saved tree at path and renders it again, so
// formatting differences between the two files do not show up as changes.
func canonicalTree(path string) (string, error) {
	f := dirtree.NewForest()
	root, err := parseTreeFile(f, path)
	if err != nil {
		return "", err
	}
	return f.Render(root.ID())
}

// writeLineDiff prints the line diff of before and after and returns the
// number of added and removed lines.
func writeLineDiff(w io.Writer, before, after string, all bool) (added, removed int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			if !all {
				continue
			}
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, prefix+line)
			if !strings.HasSuffix(line, "\n") {
				fmt.Fprintln(w)
			}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				added++
			case diffmatchpatch.DiffDelete:
				removed++
			}
		}
	}
	return added, removed
}
