//go:build linux

package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juliomoralesp/port-scanner/internal/output"
	"github.com/juliomoralesp/port-scanner/internal/pipeline"
	"github.com/juliomoralesp/port-scanner/internal/tui"
)

var versionString = "dev"

// SetVersionBuildCommitString assembles the --version text from the
// ldflags-injected values in package main.
func SetVersionBuildCommitString(version, commit, buildDate string) {
	if version == "" {
		version = "dev"
	}
	s := version
	if commit != "" {
		s += " (" + commit + ")"
	}
	if buildDate != "" {
		s += " built " + buildDate
	}
	versionString = s
}

// NewRootCmd builds the ports command. All selection state is collected
// into immutable pipeline values inside RunE; no package-level flag
// state leaks into deeper components.
func NewRootCmd() *cobra.Command {
	var (
		allStates   bool
		portFilter  int
		nameFilter  string
		sortKey     string
		reverse     bool
		jsonOut     bool
		noColor     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:     "ports",
		Short:   "List listening sockets and the processes that own them",
		Long:    "ports reads the kernel socket tables under /proc/net and every process's\nfd table to map each socket to its owning processes, with filtering by\nport or process name.",
		Version: versionString,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := pipeline.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			if os.Getenv("NO_COLOR") != "" {
				noColor = true
			}

			cfg := pipeline.Config{AllStates: allStates}
			query := pipeline.Query{
				Port:    portFilter,
				Name:    nameFilter,
				Sort:    key,
				Reverse: reverse,
			}

			if interactive {
				return tui.Run(cfg, query, !noColor)
			}

			if os.Geteuid() != 0 {
				fmt.Fprintln(cmd.ErrOrStderr(),
					"warning: not running as root, owners of other users' processes may be missing")
			}

			records, err := pipeline.Snapshot(cfg)
			if err != nil {
				return err
			}
			selected := pipeline.Select(records, query)

			if jsonOut {
				s, err := output.ToJSON(selected)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}

			colorEnabled := !noColor && isTTY(os.Stdout)
			output.RenderTable(cmd.OutOrStdout(), selected, allStates, colorEnabled)
			return nil
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVarP(&allStates, "all", "a", false, "Show all states, not just listening sockets")
	flags.IntVarP(&portFilter, "port", "p", 0, "Only show sockets on this exact port")
	flags.StringVarP(&nameFilter, "name", "n", "", "Only show sockets owned by a process whose name contains this substring")
	flags.StringVarP(&sortKey, "sort", "s", "port", "Sort key: port, pid or proto")
	flags.BoolVarP(&reverse, "reverse", "r", false, "Reverse the sort order")
	flags.BoolVarP(&jsonOut, "json", "j", false, "Output as JSON")
	flags.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Interactive table view")

	return cmd
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Execute runs the root command; usage errors have already been printed
// by cobra when this exits non-zero.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
