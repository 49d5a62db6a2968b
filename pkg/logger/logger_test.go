package logger

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	err := errors.New("boom")

	got := normalize([]any{err})
	if len(got) != 2 || got[0] != "error" || got[1] != err {
		t.Fatalf("normalize(err) = %v", got)
	}

	got = normalize([]any{"email", "a@x.com", err})
	if len(got) != 4 || got[2] != "error" {
		t.Fatalf("normalize(kv, err) = %v", got)
	}

	pairs := []any{"email", "a@x.com"}
	if got := normalize(pairs); len(got) != 2 {
		t.Fatalf("even args should pass through, got %v", got)
	}
}
