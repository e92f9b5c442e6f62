package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the flags shared by every job command
func PersistentFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (yaml)")
	flags.String("input-dir", "", "directory of the Monte Carlo results (default \"in\")")
	flags.String("output-dir", "", "directory the figures and tables are written to (default \"out\")")
	flags.Bool("print", false, "print the summary tables to the console")
	flags.Bool("progress", false, "show a progress bar")
}
