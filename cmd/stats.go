package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/paths"
	"github.com/zjrosen/webwalker/internal/presentation"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats <tree>",
	Short: "Summarise a saved directory tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup := setupLogging(cmd)
		defer cleanup()

		f := dirtree.NewForest()
		root, err := parseTreeFile(f, paths.ResolveDataFile(cfg.DataDir, args[0]))
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout(), statsJSON).
			FormatStats(presentation.FromStats(root.Name(), f.Stats(root.ID())))
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON")
	rootCmd.AddCommand(statsCmd)
}
