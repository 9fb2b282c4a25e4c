package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/source"
)

func newValidateCmd(a *app) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "validate [--tag TAG] FILE",
		Short: "Create an entity from FILE and print it, or print every issue",
		Long: `Validate FILE (JSON or YAML, "-" for JSON on stdin) against the variant
named by --tag. Without --tag the variant is chosen by classification.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			c := a.container()
			var e goshape.Entity
			if tag != "" {
				e, err = c.Create(goshape.Tag(tag), fields)
			} else {
				e, err = c.Adopt(fields)
			}
			if err != nil {
				return a.report(cmd, err)
			}
			a.logger.Debug("Created entity", zap.String("tag", string(e.Tag())), zap.String("id", e.ID()))
			return writeJSON(cmd.OutOrStdout(), e)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "variant to validate against")
	return cmd
}

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify FILE",
		Short: "Print the variant FILE classifies as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			tag, err := a.manifest.Registry.Classifier(a.mode()).Classify(fields)
			if err != nil {
				return a.report(cmd, err)
			}
			a.logger.Debug("Classified input", zap.String("file", args[0]), zap.String("tag", string(tag)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tag)
			return err
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "schema [--tag TAG]",
		Short: "Print the JSON Schema of one variant or of the whole registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tag == "" {
				return writeJSON(cmd.OutOrStdout(), a.manifest.Registry.JSONSchema())
			}
			s, ok := a.manifest.Registry.Shape(goshape.Tag(tag))
			if !ok {
				return &goshape.UnknownVariantError{Tag: goshape.Tag(tag)}
			}
			return writeJSON(cmd.OutOrStdout(), s.JSONSchema())
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "variant to export")
	return cmd
}

// report prints validation issues to stdout and returns errInvalid; other
// errors are returned unchanged.
func (a *app) report(cmd *cobra.Command, err error) error {
	if iss, ok := goshape.AsIssues(err); ok {
		a.logger.Info("Input rejected", zap.Int("issues", len(iss)))
		if werr := writeJSON(cmd.OutOrStdout(), iss); werr != nil {
			return werr
		}
		return errInvalid
	}
	var amb *goshape.AmbiguousVariantError
	var none *goshape.NoMatchingVariantError
	if errors.As(err, &amb) || errors.As(err, &none) {
		a.logger.Info("Classification failed", zap.Error(err))
	}
	return err
}

func readInput(cmd *cobra.Command, path string) (map[string]any, error) {
	if path == "-" {
		return source.JSONReader(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return source.Decode(data, source.FormatFromPath(path))
}

func writeJSON(w io.Writer, v any) error {
	b, err := j.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
