package translate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden fixtures hold full R scripts next to their expected Python
// output. Regenerate with:
//
//	go test ./translate -update
func TestTranslate_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, name := range []string{"inventory", "housekeeping"} {
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata", name+".R"))
			require.NoError(t, err)

			res := New(Options{}).Translate(string(src))
			require.Empty(t, res.Warnings)
			g.Assert(t, name, []byte(res.Output))
		})
	}
}
