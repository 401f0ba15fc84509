package fuzztests

import (
	"testing"

	"dyva/internal/diag"
	"dyva/internal/lexer"
	"dyva/internal/source"
	"dyva/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.dyva", input)
		file := fs.Get(fileID)

		reporter := diag.BagReporter{Bag: diag.NewBag()}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		for {
			tok := lx.Next()
			if tok.Tag == token.EOF {
				break
			}
		}
	})
}
