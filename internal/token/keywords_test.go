package token

import "testing"

func TestLookupKeywordReservedWords(t *testing.T) {
	tag, ok := LookupKeyword("fun")
	if !ok || tag != KwFun {
		t.Fatalf("LookupKeyword(fun) = (%v, %v), want (KwFun, true)", tag, ok)
	}
	tag, ok = LookupKeyword("subscript")
	if !ok || tag != KwSubscript {
		t.Fatalf("LookupKeyword(subscript) = (%v, %v), want (KwSubscript, true)", tag, ok)
	}
}

func TestLookupKeywordBooleanLiterals(t *testing.T) {
	for _, spelling := range []string{"true", "false"} {
		tag, ok := LookupKeyword(spelling)
		if !ok || tag != BooleanLiteral {
			t.Errorf("LookupKeyword(%q) = (%v, %v), want (BooleanLiteral, true)", spelling, tag, ok)
		}
	}
}

func TestLookupKeywordIsCaseSensitive(t *testing.T) {
	if _, ok := LookupKeyword("Fun"); ok {
		t.Errorf("LookupKeyword(Fun) unexpectedly matched a keyword")
	}
	if _, ok := LookupKeyword("TRUE"); ok {
		t.Errorf("LookupKeyword(TRUE) unexpectedly matched a boolean literal")
	}
}

func TestLookupKeywordOrdinaryIdentifier(t *testing.T) {
	if _, ok := LookupKeyword("foo"); ok {
		t.Errorf("LookupKeyword(foo) unexpectedly matched a keyword")
	}
}
