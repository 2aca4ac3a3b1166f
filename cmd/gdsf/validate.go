package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/violeta/pkg/gdsf"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Parse GDSF files and report schema errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := validateFile(cmd.OutOrStdout(), path); err != nil {
					a.logger.Debug("Validation failed", "path", path, "error", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
}

// validateFile parses path and prints either a summary or the reason it
// failed.
func validateFile(w io.Writer, path string) error {
	res, err := gdsf.ParseFile(path)
	if err != nil {
		fmt.Fprintf(w, "%s %s: %s\n", errorStyle.Render("✗"), path, describeError(err))
		return err
	}

	fmt.Fprintf(w, "%s %s\n", okStyle.Render("✓"), path)
	summarize(w, res)
	return nil
}

func describeError(err error) string {
	var vErr *gdsf.ValidationError
	var ioErr *gdsf.IOError
	switch {
	case errors.As(err, &vErr):
		return fmt.Sprintf("invalid schema '%s' at line %d: %s", idOrUnknown(vErr.SchemaID), vErr.Line, vErr.Reason)
	case errors.As(err, &ioErr):
		return fmt.Sprintf("cannot read file: %v", ioErr.Err)
	default:
		return err.Error()
	}
}

func idOrUnknown(id string) string {
	if id == "" {
		return "?"
	}
	return id
}

func summarize(w io.Writer, res *gdsf.Result) {
	schemas := res.Schemas()
	counts := map[string]int{}
	for _, s := range schemas {
		counts[s.Value(gdsf.KeyProperty)]++
	}
	props := make([]string, 0, len(counts))
	for p := range counts {
		props = append(props, p)
	}
	sort.Strings(props)

	var byType []string
	for _, p := range props {
		byType = append(byType, fmt.Sprintf("%s %d", propertyTitle(p), counts[p]))
	}

	line := func(label, value string) {
		fmt.Fprintf(w, "  %s%s\n", labelStyle.Render(label), value)
	}

	schemaLine := fmt.Sprintf("%d", len(schemas))
	if len(byType) > 0 {
		schemaLine += " (" + strings.Join(byType, ", ") + ")"
	}
	line("schemas", schemaLine)
	line("edges", fmt.Sprintf("%d", len(res.Edges())))
	line("meta", fmt.Sprintf("%d keys", res.Meta().Len()))

	names := res.SectionNames()
	if len(names) == 0 {
		line("sections", "none")
	} else {
		line("sections", strings.Join(names, ", "))
	}
}
