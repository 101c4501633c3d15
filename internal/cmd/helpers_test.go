package cmd

import (
	"testing"

	"github.com/harrison/sassglob/internal/expander"
	"github.com/stretchr/testify/require"
)

func newTestExpander(t *testing.T, baseDir string, includes ...string) *expander.Expander {
	t.Helper()
	exp, err := expander.New(expander.Options{BaseDir: baseDir, IncludePaths: includes}, nil)
	require.NoError(t, err)
	return exp
}
