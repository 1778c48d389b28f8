package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-emboss/embossc/internal/diag"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFollowsImportsAcrossSearchPaths(t *testing.T) {
	root := t.TempDir()
	deps := t.TempDir()

	writeFile(t, deps, "common.emb", "struct Common:\n  0 [+4]  UInt  x\n")
	entryPath := writeFile(t, root, "main.emb", "import \"common.emb\" as common\nstruct Main:\n  0 [+4]  UInt  y\n")

	l := New([]string{root, deps})
	tree, bundles := l.Load(entryPath, "main.emb")
	require.Empty(t, bundles)
	require.NotNil(t, tree)
	require.Len(t, tree.Module, 2)
	require.Equal(t, "main.emb", tree.Module[0].SourceFileName)

	names := map[string]bool{}
	for _, m := range tree.Module {
		names[m.SourceFileName] = true
	}
	require.True(t, names["main.emb"])
	require.True(t, names["common.emb"])
}

func TestLoadReportsImportNotFound(t *testing.T) {
	root := t.TempDir()
	entryPath := writeFile(t, root, "main.emb", "import \"missing.emb\" as missing\nstruct Main:\n  0 [+4]  UInt  y\n")

	l := New([]string{root})
	tree, bundles := l.Load(entryPath, "main.emb")
	require.NotNil(t, tree, "the entry module itself still loads even though its import doesn't resolve")
	require.Len(t, tree.Module, 1)

	found := false
	for _, b := range bundles {
		if b[0].Code == diag.ImportNotFound {
			found = true
		}
	}
	require.True(t, found, "expected an ImportNotFound bundle, got %v", bundles)
}

func TestLoadReportsEntryFileNotFound(t *testing.T) {
	l := New([]string{t.TempDir()})
	tree, bundles := l.Load(filepath.Join(os.TempDir(), "does_not_exist.emb"), "does_not_exist.emb")
	require.Nil(t, tree)
	require.Len(t, bundles, 1)
	require.Equal(t, diag.ImportNotFound, bundles[0][0].Code)
}

func TestLoadDefaultsSearchPathToCurrentDirectory(t *testing.T) {
	l := New(nil)
	require.Equal(t, []string{"."}, l.SearchPaths)
}

func TestLoadSkipsAlreadyCachedImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "shared.emb", "struct Shared:\n  0 [+1]  UInt  a\n")
	writeFile(t, root, "a.emb", "import \"shared.emb\" as shared\nstruct A:\n  0 [+1]  UInt  a\n")
	entryPath := writeFile(t, root, "main.emb", "import \"a.emb\" as a\nimport \"shared.emb\" as shared\nstruct Main:\n  0 [+1]  UInt  y\n")

	l := New([]string{root})
	tree, bundles := l.Load(entryPath, "main.emb")
	require.Empty(t, bundles)
	require.Len(t, tree.Module, 3, "shared.emb must be loaded once even though two files import it")
}
