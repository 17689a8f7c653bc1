package telemetry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luki/thermopipe/internal/led"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)
	defer s.Close()

	now := time.Date(2026, 8, 20, 14, 30, 0, 0, time.Local)
	records := []Record{
		{Time: now, Mean: 18.0, Samples: 1, Pattern: led.SlowBlink},
		{Time: now.Add(time.Second), Mean: 20.0, Samples: 2, Pattern: led.Solid},
	}

	for _, rec := range records {
		require.NoError(t, s.Write(rec))
	}
	s.Close()

	loaded, err := LoadFile(filepath.Join(dir, "2026-08-20.csv"))
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	require.Equal(t, 18.0, loaded[0].Mean)
	require.Equal(t, uint32(1), loaded[0].Samples)
	require.Equal(t, led.SlowBlink, loaded[0].Pattern)
	require.Equal(t, led.Solid, loaded[1].Pattern)

	days, err := ListDays(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"2026-08-20"}, days)

	byDay, err := LoadDay(dir, "2026-08-20")
	require.NoError(t, err)
	require.Len(t, byDay, 2)
}

func TestStoreRotatesDaily(t *testing.T) {
	dir := t.TempDir()

	s, err := New(dir)
	require.NoError(t, err)
	defer s.Close()

	day1 := time.Date(2026, 8, 20, 23, 59, 59, 0, time.Local)
	day2 := day1.Add(time.Second)

	require.NoError(t, s.Write(Record{Time: day1, Mean: 22.0, Samples: 1, Pattern: led.Solid}))
	require.NoError(t, s.Write(Record{Time: day2, Mean: 23.0, Samples: 2, Pattern: led.Solid}))
	s.Close()

	days, err := ListDays(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"2026-08-21", "2026-08-20"}, days)
}
