package util

import (
	"testing"
)

func TestNullStringFromValue(t *testing.T) {
	ns := NullStringFromValue("hello")
	if !ns.Valid || ns.String != "hello" {
		t.Errorf("NullStringFromValue(\"hello\") = %+v", ns)
	}

	ns = NullStringFromValue("")
	if ns.Valid {
		t.Errorf("NullStringFromValue(\"\") should be invalid, got %+v", ns)
	}
}

func TestNullStringFromPtr(t *testing.T) {
	s := "world"
	ns := NullStringFromPtr(&s)
	if !ns.Valid || ns.String != "world" {
		t.Errorf("NullStringFromPtr(&s) = %+v", ns)
	}

	ns = NullStringFromPtr(nil)
	if ns.Valid {
		t.Errorf("NullStringFromPtr(nil) should be invalid, got %+v", ns)
	}
}

func TestStringOr(t *testing.T) {
	if got := StringOr(NullStringFromValue("x"), "y"); got != "x" {
		t.Errorf("StringOr(valid) = %q, want x", got)
	}
	if got := StringOr(NullStringFromValue(""), "y"); got != "y" {
		t.Errorf("StringOr(invalid) = %q, want y", got)
	}
}
