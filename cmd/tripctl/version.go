package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/tripclient/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print build information",
		Args:              cobra.NoArgs,
		PersistentPreRunE: skipSetup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			return a.render(cmd, info, func(w io.Writer) error {
				_, err := io.WriteString(w, info.String())
				return err
			})
		},
	}
}
