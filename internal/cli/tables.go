package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/litetable/litetable-schema/internal/instance"
	"github.com/litetable/litetable-schema/internal/layout"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// readDescriptor reads a JSON layout descriptor. Unknown fields are rejected.
func readDescriptor(path string) (*layout.Descriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	desc := &layout.Descriptor{}
	if err := dec.Decode(desc); err != nil {
		return nil, litetable.NewError(litetable.ErrInvalidLayout, "reading %s: %v", path, err)
	}
	return desc, nil
}

func (c *cli) createTableCommand() *cobra.Command {
	var regions int
	cmd := &cobra.Command{
		Use:   "create-table <layout.json>",
		Short: "Create a table from a layout descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := readDescriptor(args[0])
			if err != nil {
				return err
			}
			return c.withHandle(func(h *instance.Handle) error {
				e, err := h.Engine(cmd.Context())
				if err != nil {
					return err
				}
				l, err := e.CreateTable(cmd.Context(), desc, regions)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created table %s with layout %d in %d regions.\n",
					l.Name(), l.ID(), regions)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&regions, "regions", 1, "number of regions to pre-split the table into")
	return cmd
}

func (c *cli) layoutCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "layout <layout.json>",
		Short: "Apply a new layout to an existing table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := readDescriptor(args[0])
			if err != nil {
				return err
			}
			return c.withHandle(func(h *instance.Handle) error {
				e, err := h.Engine(cmd.Context())
				if err != nil {
					return err
				}
				l, plan, err := e.ApplyLayout(cmd.Context(), desc, dryRun)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, plan.Render())
				if !dryRun {
					fmt.Fprintf(out, "Applied layout %d to table %s.\n", l.ID(), l.Name())
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the changes without applying them")
	return cmd
}

func (c *cli) deleteTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-table <table>",
		Short: "Delete a table and its layout history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withHandle(func(h *instance.Handle) error {
				e, err := h.Engine(cmd.Context())
				if err != nil {
					return err
				}
				if err := e.DeleteTable(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted table %s.\n", args[0])
				return nil
			})
		},
	}
}

func familyNames(l *layout.Layout) string {
	fams := l.Families()
	names := make([]string, 0, len(fams))
	for _, f := range fams {
		names = append(names, fmt.Sprintf("%s(%s)", f.Name, f.PhysicalName()))
	}
	return strings.Join(names, ",")
}

func (c *cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list-tables"},
		Short:   "List tables",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withHandle(func(h *instance.Handle) error {
				e, err := h.Engine(cmd.Context())
				if err != nil {
					return err
				}
				tables, err := e.ListTables(cmd.Context())
				if err != nil {
					return err
				}

				w := tablewriter.NewWriter(cmd.OutOrStdout())
				w.SetHeader([]string{"Table", "Layout", "Families", "Description"})
				for _, name := range tables {
					l, err := e.Layout(cmd.Context(), name)
					if err != nil {
						return err
					}
					w.Append([]string{name, strconv.FormatUint(l.ID(), 10), familyNames(l),
						l.Description()})
				}
				w.Render()
				return nil
			})
		},
	}
}

func (c *cli) historyCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <table>",
		Short: "Show the layout history of a table, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withHandle(func(h *instance.Handle) error {
				e, err := h.Engine(cmd.Context())
				if err != nil {
					return err
				}
				history, err := e.History(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}

				w := tablewriter.NewWriter(cmd.OutOrStdout())
				w.SetHeader([]string{"Layout", "Reference", "Families", "Next Column"})
				for _, l := range history {
					ref := ""
					if l.ReferenceID() != 0 {
						ref = strconv.FormatUint(l.ReferenceID(), 10)
					}
					w.Append([]string{strconv.FormatUint(l.ID(), 10), ref, familyNames(l),
						l.NextColumnID().String()})
				}
				w.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of layouts to show, 0 for all")
	return cmd
}
