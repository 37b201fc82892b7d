package cli

import (
	"fmt"
	"runtime"

	"github.com/brandonbloom/lintfix/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lintfix version and where it was taken from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, source := version.Describe()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "lintfix %s (%s, %s %s/%s)\n",
				v, source, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
