// Command csvwcheck validates CSVW metadata documents and the delimited
// files they describe.
//
// Exit codes: 0 when the input validates, 1 on validation failure, 2 on
// usage errors.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacoelho/csvw"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exit exitError
		if ok := asExitError(err, &exit); ok {
			return exit.code
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	return 0
}

// exitError carries an explicit exit code through cobra's error return.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

func asExitError(err error, target *exitError) bool {
	e, ok := err.(exitError)
	if ok {
		*target = e
	}
	return ok
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "csvwcheck",
		Short:         "Validate CSVW metadata and tabular data",
		SilenceUsage:  false,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newValidateCommand(stdout, stderr))
	root.AddCommand(newDumpCommand(stdout, stderr))
	return root
}

func newValidateCommand(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <metadata.json>",
		Short: "Read all tables and check referential integrity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			tg, err := csvw.FromFile(args[0])
			if err != nil {
				fmt.Fprintf(stderr, "error loading metadata: %v\n", err)
				return exitError{code: 1}
			}

			failed := false
			for _, table := range tg.Tables {
				if _, err := table.ReadAll(); err != nil {
					fmt.Fprintf(stderr, "%s: %v\n", table.LocalName(), err)
					failed = true
				}
			}
			if !failed {
				if err := tg.CheckReferentialIntegrity(); err != nil {
					fmt.Fprintf(stderr, "%v\n", err)
					failed = true
				}
			}
			if failed {
				fmt.Fprintf(stderr, "%s fails to validate\n", args[0])
				return exitError{code: 1}
			}
			fmt.Fprintf(stdout, "%s validates\n", args[0])
			return nil
		},
	}
}

func newDumpCommand(stdout, stderr io.Writer) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "dump <metadata.json>",
		Short: "Round-trip the metadata document to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			tg, err := csvw.FromFile(args[0])
			if err != nil {
				fmt.Fprintf(stderr, "error loading metadata: %v\n", err)
				return exitError{code: 1}
			}
			encoded, err := json.MarshalIndent(tg.AsDict(!all), "", "    ")
			if err != nil {
				fmt.Fprintf(stderr, "error serializing metadata: %v\n", err)
				return exitError{code: 1}
			}
			fmt.Fprintf(stdout, "%s\n", encoded)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include default-valued properties")
	return cmd
}
