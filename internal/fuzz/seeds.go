package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB cap on any one seed added to the corpus
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addScenarioSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".dyva" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
	f.Add([]byte{})
}

// addScenarioSeeds hardcodes the six end-to-end scenario programs that
// testdata/ holds, plus a few other constructs, so the fuzz corpus keeps
// the lexer/parser honest about them even without testdata/ present.
func addScenarioSeeds(f *testing.F) {
	for _, s := range []string{
		"print(\"Hello\")\n",
		"fun f(x)\n",
		"fun g(x) = yield x\n",
		"fun f() =\n  a\n   b\n c\n",
		"subscript s(self) =\n  yield self.x\n  yield self.y\n",
		"print(x)\n",
		"struct Point:\n  x\n  y\n  fun magnitude(self) => self.x\n",
		"while case let x = next(), x is Int do:\n  print(x)\n",
		"match v do\n  case .some(x) do:\n    print(x)\n  case _ do:\n    print(0)\n",
		"try:\n  risky()\ncatch e do:\n  print(e)\n",
	} {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
