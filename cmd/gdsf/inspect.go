package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/violeta/pkg/gdsf"
)

func newSchemasCmd(a *app) *cobra.Command {
	var propertyType string

	cmd := &cobra.Command{
		Use:   "schemas <file>",
		Short: "List schema entries, optionally of one property type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := gdsf.ParseFile(args[0])
			if err != nil {
				return err
			}

			schemas := res.Schemas()
			if cmd.Flags().Changed("type") {
				schemas = res.SchemasByType(propertyType)
			}
			a.logger.Debug("Listing schemas", "path", args[0], "type", propertyType, "count", len(schemas))

			if len(schemas) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no schemas")
				return nil
			}
			renderSchemas(cmd.OutOrStdout(), schemas)
			return nil
		},
	}

	cmd.Flags().StringVarP(&propertyType, "type", "t", "", "only schemas whose property equals this value")
	return cmd
}

func renderSchemas(w io.Writer, schemas []gdsf.Section) {
	rows := make([][]string, 0, len(schemas))
	for _, s := range schemas {
		rows = append(rows, []string{
			s.Value(gdsf.KeyID),
			s.Value(gdsf.KeyName),
			propertyTitle(s.Value(gdsf.KeyProperty)),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PROPERTY").
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}

func newSectionCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "section <file> <name>",
		Short: "Print the keys of one section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := gdsf.ParseFile(args[0])
			if err != nil {
				return err
			}

			name := args[1]
			var body gdsf.Section
			switch name {
			case gdsf.SectionMeta:
				body = res.Meta()
			default:
				body = res.Section(name)
			}
			if body.Empty() {
				return fmt.Errorf("no section [%s] in %s", name, args[0])
			}

			renderSection(cmd.OutOrStdout(), name, body, width)
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 80, "wrap values at this many columns")
	return cmd
}

func renderSection(w io.Writer, name string, body gdsf.Section, width int) {
	fmt.Fprintln(w, headerStyle.Render("["+name+"]"))
	for _, k := range body.Keys() {
		fmt.Fprintf(w, "%s:\n", k)
		wrapped := wordwrap.String(body.Value(k), width-2)
		for _, l := range strings.Split(wrapped, "\n") {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
}

// dumpDocument is the JSON/YAML view of a parse result.
type dumpDocument struct {
	Meta     map[string]string            `json:"meta,omitempty" yaml:"meta,omitempty"`
	Sections map[string]map[string]string `json:"sections,omitempty" yaml:"sections,omitempty"`
	Edges    []map[string]string          `json:"edges,omitempty" yaml:"edges,omitempty"`
	Schemas  []map[string]string          `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

func newDumpDocument(res *gdsf.Result) dumpDocument {
	var d dumpDocument
	if meta := res.Meta(); !meta.Empty() {
		d.Meta = meta.Map()
	}
	for _, name := range res.SectionNames() {
		if d.Sections == nil {
			d.Sections = map[string]map[string]string{}
		}
		d.Sections[name] = res.Section(name).Map()
	}
	for _, e := range res.Edges() {
		d.Edges = append(d.Edges, e.Map())
	}
	for _, s := range res.Schemas() {
		d.Schemas = append(d.Schemas, s.Map())
	}
	return d
}

func newDumpCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Re-emit a parsed file as gdsf, json or yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := gdsf.ParseFile(args[0])
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "gdsf", "output format: gdsf, json or yaml")
	return cmd
}

func dump(w io.Writer, res *gdsf.Result, format string) error {
	switch strings.ToLower(format) {
	case "gdsf":
		return gdsf.Encode(w, res)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newDumpDocument(res))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDumpDocument(res)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want gdsf, json or yaml)", format)
	}
}
