package version

import (
	"strings"
	"testing"
)

func TestString_NoBuildMetadata(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, "themectl dev (") {
		t.Errorf("String() = %q, want themectl dev prefix", got)
	}
	if strings.Contains(got, "commit") {
		t.Errorf("String() = %q, should not mention a commit without one stamped", got)
	}
}

func TestString_CommitLengths(t *testing.T) {
	tests := []struct {
		name   string
		commit string
		want   string
	}{
		{"full hash abbreviated", "0123456789abcdef0123456789abcdef01234567", "commit 01234567"},
		{"short hash kept whole", "abc", "commit abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := Commit
			Commit = tt.commit
			defer func() { Commit = old }()

			got := String()
			if !strings.Contains(got, tt.want) {
				t.Errorf("String() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestShort(t *testing.T) {
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
