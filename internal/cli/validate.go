package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/layout"
	"github.com/matzehuels/stenoboard/pkg/layout/schema"
)

func (c *CLI) validateCommand() *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check layout files against the layout schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				_, err := cmd.OutOrStdout().Write(schema.Document())
				return err
			}
			if len(args) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "no layout files given")
			}
			return runValidate(cmd.Context(), args)
		},
	}

	cmd.Flags().BoolVar(&printSchema, "schema", false, "print the layout schema and exit")
	return cmd
}

func runValidate(ctx context.Context, paths []string) error {
	logger := loggerFromContext(ctx)

	failed := 0
	for _, path := range paths {
		l, err := validateFile(path)
		if err != nil {
			failed++
			logger.Debug("invalid layout", "path", path, "err", err)
			printError("%s", path)
			printDetail("%s", errors.UserMessage(err))
			if cause := errors.Cause(err); cause != nil {
				printDetail("%v", cause)
			}
			continue
		}
		printSuccess("%s %s", path, StyleDim.Render(fmt.Sprintf("(%q, %d keys)", l.Name, len(l.Keys))))
	}

	if failed > 0 {
		return errors.New(errors.ErrCodeSchemaViolation, "%d of %d layouts invalid", failed, len(paths))
	}
	return nil
}

// validateFile reads and parses one layout.
func validateFile(path string) (*layout.Layout, error) {
	if err := errors.ValidateLayoutPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrCodeIO
		if errors.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return nil, errors.Wrap(code, err, "read %s", path)
	}
	return layout.Parse(data)
}
