package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/litetable/litetable-schema/internal/cdc"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/litetable/litetable-schema/internal/store/memstore"
	"github.com/stretchr/testify/require"
)

const (
	userLayout = `{
  "name": "user",
  "families": [
    {"name": "info", "max_versions": 5,
     "columns": [{"name": "name", "value_type": "string"}]}
  ]
}`
	userLayoutWithPrefs = `{
  "name": "user",
  "families": [
    {"name": "info", "max_versions": 5,
     "columns": [{"name": "name", "value_type": "string"}]},
    {"name": "prefs", "kind": "map", "value_type": "int"}
  ]
}`
)

type harness struct {
	cli *cli
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := memstore.New(&memstore.Config{})
	require.NoError(t, err)
	return &harness{cli: &cli{store: store}, dir: t.TempDir()}
}

func (h *harness) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// run executes one command line against the shared in-memory store.
func (h *harness) run(args ...string) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer
	h.cli.out = &out
	h.cli.errOut = &errOut
	args = append([]string{"--config", filepath.Join(h.dir, configFileName)}, args...)
	code = h.cli.execute(context.Background(), args)
	return out.String(), errOut.String(), code
}

func TestCLI_tableLifecycle(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	initial := h.file(t, "user.json", userLayout)
	next := h.file(t, "user-prefs.json", userLayoutWithPrefs)

	out, stderr, code := h.run("create-table", initial, "--regions", "4")
	req.Equal(0, code, stderr)
	req.Equal("Created table user with layout 1 in 4 regions.\n", out)

	_, stderr, code = h.run("create-table", initial)
	req.Equal(1, code)
	req.Contains(stderr, "TableAlreadyExistsError: ")

	out, stderr, code = h.run("layout", next, "--dry-run")
	req.Equal(0, code, stderr)
	req.Equal("This table layout is valid.\n"+
		"Changes caused by this table layout:\n"+
		"  Creating new family: prefs (C)\n", out)

	out, stderr, code = h.run("history", "user")
	req.Equal(0, code, stderr)
	req.Contains(out, "info(B)")
	req.NotContains(out, "prefs(C)", "dry run records no layout")

	out, stderr, code = h.run("layout", next)
	req.Equal(0, code, stderr)
	req.Contains(out, "Applied layout 2 to table user.")

	out, stderr, code = h.run("layout", next)
	req.Equal(0, code, stderr)
	req.Contains(out, "This layout does not require any physical table schema changes.")

	out, stderr, code = h.run("ls")
	req.Equal(0, code, stderr)
	req.Contains(out, "user")
	req.Contains(out, "info(B),prefs(C)")

	out, stderr, code = h.run("journal", "user")
	req.Equal(0, code, stderr)
	req.Contains(out, "create family prefs (C)")
	req.Contains(out, "completed")

	out, stderr, code = h.run("delete-table", "user")
	req.Equal(0, code, stderr)
	req.Equal("Deleted table user.\n", out)

	_, stderr, code = h.run("delete-table", "user")
	req.Equal(1, code)
	req.Contains(stderr, "TableNotFoundError: ")
}

func TestCLI_errors(t *testing.T) {
	tests := map[string]struct {
		args      func(h *harness, t *testing.T) []string
		wantClass string
	}{
		"layout of missing table": {
			args: func(h *harness, t *testing.T) []string {
				return []string{"layout", h.file(t, "user.json", userLayout)}
			},
			wantClass: "TableNotFoundError",
		},
		"unknown descriptor field": {
			args: func(h *harness, t *testing.T) []string {
				return []string{"create-table", h.file(t, "bad.json", `{"name": "user", "color": 1}`)}
			},
			wantClass: "InvalidLayoutError",
		},
		"invalid layout": {
			args: func(h *harness, t *testing.T) []string {
				return []string{"create-table", h.file(t, "bad.json", `{"name": "1user"}`)}
			},
			wantClass: "InvalidLayoutError",
		},
		"too many regions": {
			args: func(h *harness, t *testing.T) []string {
				return []string{"create-table", h.file(t, "user.json", userLayout),
					"--regions", "70000"}
			},
			wantClass: "InvalidRequestError",
		},
		"bad flag override": {
			args: func(h *harness, t *testing.T) []string {
				return []string{"ls", "--meta-backend", "etcd"}
			},
			wantClass: "Error",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			_, stderr, code := h.run(tc.args(h, t)...)
			require.Equal(t, 1, code)
			require.Regexp(t, "^"+tc.wantClass+": ", stderr)
		})
	}
}

func TestCLI_flagOverrides(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	h.file(t, configFileName, `
instance = "staging"
meta_backend = "sqlite"
`)
	metaDir := filepath.Join(h.dir, "elsewhere")

	_, stderr, code := h.run("ls", "--meta-path", metaDir)
	req.Equal(0, code, stderr)

	req.Equal("staging", h.cli.cfg.Instance, "file values apply")
	req.Equal("sqlite", h.cli.cfg.MetaBackend)
	req.Equal(metaDir, h.cli.cfg.MetaPath, "explicit flags win")
	req.FileExists(filepath.Join(metaDir, "meta.sqlite"))
}

type recorder struct {
	events []*cdc.Event
}

func (r *recorder) Emit(e *cdc.Event) {
	r.events = append(r.events, e)
}

func TestEmittingStore(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	store, err := memstore.New(&memstore.Config{})
	req.NoError(err)
	rec := &recorder{}
	s := &emittingStore{Manager: store, emitter: rec}

	const table = "lt.default.table.user"
	req.NoError(s.CreateTable(ctx, &physical.Schema{Table: table,
		Families: []physical.Family{{Name: "B", MaxVersions: 1}}}, nil))
	req.NoError(s.DisableTable(ctx, table))
	req.NoError(s.AddFamily(ctx, table, physical.Family{Name: "C", MaxVersions: 1}))
	req.NoError(s.ModifyFamily(ctx, table, physical.Family{Name: "B", MaxVersions: 3}))
	req.Error(s.AddFamily(ctx, table, physical.Family{Name: "C", MaxVersions: 1}))
	req.NoError(s.DropTable(ctx, table))

	var kinds []cdc.Kind
	for _, e := range rec.events {
		req.Equal("user", e.Table)
		kinds = append(kinds, e.Kind)
	}
	req.Equal([]cdc.Kind{cdc.TableCreated, cdc.FamilyCreated, cdc.FamilyModified,
		cdc.TableDeleted}, kinds, "failed changes are not published")
}

func TestServeDependencies(t *testing.T) {
	h := newHarness(t)
	_, stderr, code := h.run("ls")
	require.Equal(t, 0, code, stderr)

	h.cli.cfg.ServerPort = 0
	deps, err := h.cli.serveDependencies()
	require.NoError(t, err)

	var names []string
	for _, d := range deps {
		names = append(names, d.Name())
	}
	require.Equal(t, []string{"Memory Store", "CDC Stream", "gRPC Store Server"}, names)

	// the store server listens from construction
	require.NoError(t, deps[2].Stop())
}
