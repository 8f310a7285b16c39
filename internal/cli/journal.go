package cli

import (
	"strconv"
	"time"

	"github.com/litetable/litetable-schema/internal/instance"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (c *cli) journalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "journal [table]",
		Short: "Show the journaled steps of layout migrations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withHandle(func(h *instance.Handle) error {
				j, err := h.Journal(cmd.Context())
				if err != nil {
					return err
				}
				table := ""
				if len(args) == 1 {
					table = physical.TableName(c.cfg.Instance, args[0])
				}
				entries, err := j.Entries(table)
				if err != nil {
					return err
				}

				w := tablewriter.NewWriter(cmd.OutOrStdout())
				w.SetHeader([]string{"Time", "Run", "Table", "Layout", "Step", "Phase", "Error"})
				for _, e := range entries {
					w.Append([]string{
						e.Timestamp.Format(time.RFC3339),
						e.Run,
						e.Table,
						strconv.FormatUint(e.LayoutID, 10),
						e.Step,
						string(e.Phase),
						e.Error,
					})
				}
				w.Render()
				return nil
			})
		},
	}
}
