// Package fuzztests houses Go fuzz harnesses that exercise the early dyva
// compilation pipeline (source -> lexer -> parser). Its goal is to smoke
// test robustness and guard against panics or allocator explosions on
// arbitrary inputs.
//
// Does not: generate corpora beyond testdata/, write files, run the CLI.
//
// Depends on: internal/source, internal/lexer, internal/parser,
// internal/diag, internal/ast.
package fuzztests
