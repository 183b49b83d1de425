package wstr

import "testing"

func TestCompareFold(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"Software", "software", 0},
		{"ABC", "abd", -1},
		{"abd", "ABC", 1},
		{"", "", 0},
	}
	for _, c := range cases {
		if got := CompareFold(c.a, c.b); sign(got) != sign(c.want) {
			t.Errorf("CompareFold(%q,%q) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestEqualFold(t *testing.T) {
	if !EqualFold("HKEY_Local_Machine", "hkey_local_machine") {
		t.Fatal("expected case-insensitive equality")
	}
}

func TestPathTokenizer(t *testing.T) {
	got := SplitPath(`\A\B\C`)
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPathTokenizerEmpty(t *testing.T) {
	tok := NewPathTokenizer("")
	if _, ok := tok.Next(); ok {
		t.Fatal("expected no tokens for empty path")
	}
}

func TestCopyPathTruncates(t *testing.T) {
	long := make([]byte, MaxPath+50)
	for i := range long {
		long[i] = 'a'
	}
	out := CopyPath(string(long))
	if len(FromString(out)) != MaxPath {
		t.Fatalf("expected truncation to %d code units, got %d", MaxPath, len(FromString(out)))
	}
}
