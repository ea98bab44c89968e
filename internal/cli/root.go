package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

type globalFlags struct {
	ConfigPath string
	DBPath     string
	JSON       bool
}

type commandDeps struct {
	out     io.Writer
	globals *globalFlags
}

func NewRootCommand(out io.Writer, build BuildInfo) *cobra.Command {
	globals := &globalFlags{}
	deps := commandDeps{out: out, globals: globals}

	cmd := &cobra.Command{
		Use:           "nwemp",
		Short:         "Northwind employee directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVar(&globals.ConfigPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&globals.DBPath, "db", "", "Path to the employees database")
	cmd.PersistentFlags().BoolVar(&globals.JSON, "json", false, "Print output as JSON")

	cmd.AddCommand(newInitCommand(deps))
	cmd.AddCommand(newListCommand(deps))
	cmd.AddCommand(newShowCommand(deps))
	cmd.AddCommand(newAddCommand(deps))
	cmd.AddCommand(newEditCommand(deps))
	cmd.AddCommand(newRemoveCommand(deps))
	cmd.AddCommand(newVersionCommand(out, build))
	cmd.InitDefaultCompletionCmd()
	return cmd
}

func newVersionCommand(out io.Writer, build BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return printJSON(out, build)
			}

			_, err := fmt.Fprintf(out, "version=%s commit=%s build_time=%s\n", build.Version, build.Commit, build.BuildTime)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
