package viewer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWrapsListError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	err := Run(dir)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, dir)
}

func TestRunNamesSearchedDirWhenEmpty(t *testing.T) {
	dir := t.TempDir()

	err := Run(dir)
	require.Error(t, err)
	require.ErrorContains(t, err, "no telemetry found")
	require.ErrorContains(t, err, dir)
}
