package uttt

import (
	"strings"
	"testing"
)

func TestRenderPlain(t *testing.T) {
	pos, err := NewPosition().Apply(MakeMove(0, 4))
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(pos.String(), "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d lines:\n%s", len(lines), pos)
	}

	want := map[int]string{
		0: ". . . | . . . | . . .",
		1: ". x . | . . . | . . .",
		3: "------+-------+------",
		8: ". . . | . . . | . . .",
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, lines[i], line)
		}
	}
}
