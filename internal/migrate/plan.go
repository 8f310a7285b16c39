package migrate

import (
	"fmt"
	"strings"

	"github.com/litetable/litetable-schema/internal/physical"
)

// Plan is the ordered list of physical changes of one layout application.
type Plan struct {
	Table    string
	LayoutID uint64
	DryRun   bool
	// WouldCreate is set by dry runs against a table with no physical footprint.
	WouldCreate bool
	Changes     []physical.Change
}

// Counts returns the number of family creations and modifications.
func (p *Plan) Counts() (created, modified int) {
	for _, c := range p.Changes {
		switch c.Op {
		case physical.OpCreate:
			created++
		case physical.OpModify:
			modified++
		}
	}
	return created, modified
}

// Render describes the plan for humans, one line per statement.
func (p *Plan) Render() string {
	var b strings.Builder
	b.WriteString("This table layout is valid.\n")
	if p.WouldCreate {
		fmt.Fprintf(&b, "Would create new table: %s\n", p.Table)
	}

	if len(p.Changes) == 0 {
		b.WriteString("This layout does not require any physical table schema changes.\n")
		return b.String()
	}

	b.WriteString("Changes caused by this table layout:\n")
	for _, c := range p.Changes {
		switch c.Op {
		case physical.OpCreate:
			fmt.Fprintf(&b, "  Creating new family: %s (%s)\n", c.Logical, c.Family.Name)
		case physical.OpModify:
			fmt.Fprintf(&b, "  Modifying family: %s (%s)\n", c.Logical, c.Family.Name)
		}
	}
	return b.String()
}

// PartialFailureError reports a migration that stopped partway. Applied lists the steps that
// completed before Failed.
type PartialFailureError struct {
	Table   string
	Run     string
	Applied []string
	Failed  string
	// Offline is set when the table was taken offline before the failure.
	Offline bool
	Err     error
}

func (e *PartialFailureError) Error() string {
	state := "the table may be left offline"
	if e.Offline {
		state = "the table was left offline"
	}
	return fmt.Sprintf("migration of %s failed at step %q after %d completed steps: %v; %s "+
		"with only some families updated and requires operator intervention (run %s)",
		e.Table, e.Failed, len(e.Applied), e.Err, state, e.Run)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
