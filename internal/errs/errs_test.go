package errs

import (
	"errors"
	"testing"
)

func TestKindOfDefaultsToInternal(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("expected internal kind, got %v", got)
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := Validation("name is required")
	err = Wrap(err, "create event")
	err = Wrap(err, "handle request")

	if got := KindOf(err); got != KindValidation {
		t.Fatalf("expected validation kind, got %v", got)
	}
}

func TestOutermostKindWins(t *testing.T) {
	err := Validation("bad field")
	err = WithKind(Wrap(err, "call store"), KindUpstream)

	if got := KindOf(err); got != KindUpstream {
		t.Fatalf("expected upstream kind, got %v", got)
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Fatal("wrap of nil must stay nil")
	}
	if WithKind(nil, KindAuth) != nil {
		t.Fatal("tag of nil must stay nil")
	}
}

func TestErrorChainStrings(t *testing.T) {
	root := errors.New("root cause")
	err := Wrap(Wrap(root, "inner"), "outer")

	chain := ErrorChainStrings(err)
	if len(chain) != 3 {
		t.Fatalf("expected 3 links, got %d: %v", len(chain), chain)
	}
	if chain[2] != "root cause" {
		t.Fatalf("expected root cause last, got %q", chain[2])
	}
}
