package token

import "testing"

func TestTagIsKeyword(t *testing.T) {
	for _, tag := range []Tag{KwFun, KwSubscript, KwIf, KwWhile, KwImport} {
		if !tag.IsKeyword() {
			t.Errorf("%v.IsKeyword() = false, want true", tag)
		}
	}
	for _, tag := range []Tag{Name, IntegerLiteral, EOF, Operator} {
		if tag.IsKeyword() {
			t.Errorf("%v.IsKeyword() = true, want false", tag)
		}
	}
}

func TestTagIsLiteral(t *testing.T) {
	for _, tag := range []Tag{BooleanLiteral, IntegerLiteral, FloatingPointLiteral, StringLiteral} {
		if !tag.IsLiteral() {
			t.Errorf("%v.IsLiteral() = false, want true", tag)
		}
	}
	if Name.IsLiteral() {
		t.Errorf("Name.IsLiteral() = true, want false")
	}
}

func TestTagIsLayout(t *testing.T) {
	if !Indentation.IsLayout() || !Dedentation.IsLayout() {
		t.Errorf("Indentation/Dedentation should be layout tags")
	}
	if Name.IsLayout() {
		t.Errorf("Name.IsLayout() = true, want false")
	}
}

func TestTagIsError(t *testing.T) {
	for _, tag := range []Tag{Error, UnterminatedBackquotedIdentifier, UnterminatedStringLiteral} {
		if !tag.IsError() {
			t.Errorf("%v.IsError() = false, want true", tag)
		}
	}
	if Name.IsError() {
		t.Errorf("Name.IsError() = true, want false")
	}
}

func TestTagStringIsNeverEmpty(t *testing.T) {
	for _, tag := range []Tag{Invalid, EOF, Name, KwFun, Assign, ThickArrow, Operator, Indentation, Dedentation, Error} {
		if tag.String() == "" {
			t.Errorf("%v.String() is empty", tag)
		}
	}
}
