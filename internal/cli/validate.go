package cli

import (
	"github.com/spf13/cobra"

	"github.com/dnl-fm/ascii/pkg/errors"
	"github.com/dnl-fm/ascii/pkg/pipeline"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check diagram text without rendering",
		Long: `Validate parses and lays out diagram text without producing
output. It succeeds exactly when render would succeed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(args)
			if err != nil {
				return err
			}
			if err := pipeline.Validate(text); err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			printSuccess("diagram is valid")
			return nil
		},
	}
}
