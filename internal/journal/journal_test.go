package journal

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("Invalid config", func(t *testing.T) {
		t.Parallel()
		got, err := New(&Config{})
		require.Error(t, err)
		require.Nil(t, got)
	})

	t.Run("Valid config", func(t *testing.T) {
		t.Parallel()
		got, err := New(&Config{Path: t.TempDir()})
		require.NoError(t, err)
		require.NotNil(t, got)
		require.FileExists(t, got.Path())
		require.NoError(t, got.Stop())
	})
}

func TestManager_Append(t *testing.T) {
	req := require.New(t)
	m, err := New(&Config{Path: t.TempDir()})
	req.NoError(err)

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []*Entry{
		{Run: "r1", Table: "user", LayoutID: 2, Step: "disable table", Phase: PhaseStarted,
			Timestamp: now},
		{Run: "r1", Table: "user", LayoutID: 2, Step: "disable table", Phase: PhaseCompleted,
			Timestamp: now},
		{Run: "r2", Table: "orders", LayoutID: 4, Step: "create family B", Phase: PhaseFailed,
			Error: "region offline", Timestamp: now},
	}
	for _, e := range entries {
		req.NoError(m.Append(e))
	}

	got, err := m.Entries("user")
	req.NoError(err)
	req.Equal([]Entry{*entries[0], *entries[1]}, got)

	all, err := m.Entries("")
	req.NoError(err)
	req.Len(all, 3)
	req.Equal("region offline", all[2].Error)

	req.NoError(m.Stop())
	req.Error(m.Append(&Entry{Table: "user"}), "closed journals reject entries")
	req.NoError(m.Stop())
}

func TestManager_Entries_malformed(t *testing.T) {
	req := require.New(t)
	m, err := New(&Config{Path: t.TempDir()})
	req.NoError(err)
	defer m.Stop()

	req.NoError(m.Append(&Entry{Run: "r1", Table: "user", Step: "enable table",
		Phase: PhaseStarted}))
	req.NoError(os.WriteFile(m.Path(), append(mustRead(t, m.Path()), []byte("not json\n")...),
		0640))

	got, err := m.Entries("user")
	req.NoError(err)
	req.Len(got, 1)
	req.False(got[0].Timestamp.IsZero(), "timestamps default to now")
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
