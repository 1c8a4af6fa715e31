package majority

import (
	"fmt"
	"testing"
)

func TestMajorityQuorum(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 0},
		{n: 1, want: 1},
		{n: 2, want: 2},
		{n: 3, want: 2},
		{n: 4, want: 3},
		{n: 5, want: 3},
		{n: 6, want: 4},
		{n: 7, want: 4},
		{n: 10, want: 6},
		{n: 11, want: 6},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			if got := MajorityQuorum(tt.n); got != tt.want {
				t.Errorf("MajorityQuorum(%d) = %d; want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestHasQuorum(t *testing.T) {
	tests := []struct {
		support int
		q       int
		want    bool
	}{
		{support: 0, q: 0, want: true},
		{support: 1, q: -1, want: true},
		{support: 2, q: 3, want: false},
		{support: 3, q: 3, want: true},
		{support: 4, q: 3, want: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("support=%d/q=%d", tt.support, tt.q), func(t *testing.T) {
			if got := HasQuorum(tt.support, tt.q); got != tt.want {
				t.Errorf("HasQuorum(%d, %d) = %v; want %v", tt.support, tt.q, got, tt.want)
			}
		})
	}
}
