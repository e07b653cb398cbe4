package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "criteria",
		Short: "Convert query strings into query criteria",
		Long: `Criteria converts an HTTP query string such as

  name=Alice&age>=18&tag[]=a&tag[]=b&-order[name]=desc&-first=20&-max=10

into a filter, orderings and paging, and renders the result as JSON, a CEL
filter, a Spanner statement or a Postgres statement.`,
		SilenceUsage: true,
	}
	root.AddCommand(newConvertCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
