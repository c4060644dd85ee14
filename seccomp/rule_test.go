package seccomp

import "testing"

func TestSameChain_OrderIndependent(t *testing.T) {
	a := []ArgCmp{EQ(0, 1), EQ(1, 2)}
	b := []ArgCmp{EQ(1, 2), EQ(0, 1)}
	if !sameChain(a, b) {
		t.Error("expected reordered chains to be equal")
	}
}

func TestSameChain_DifferentLength(t *testing.T) {
	a := []ArgCmp{EQ(0, 1)}
	b := []ArgCmp{EQ(0, 1), EQ(1, 2)}
	if sameChain(a, b) {
		t.Error("expected chains of different length to differ")
	}
}

func TestSameChain_DifferentValues(t *testing.T) {
	a := []ArgCmp{EQ(0, 1)}
	b := []ArgCmp{EQ(0, 2)}
	if sameChain(a, b) {
		t.Error("expected chains with different values to differ")
	}
}

func TestRule_ConflictsWith(t *testing.T) {
	base := Rule{Syscall: "open", Action: Allow(), Args: []ArgCmp{EQ(0, 1)}}

	tests := []struct {
		name   string
		other  Rule
		expect bool
	}{
		{"same chain different action", Rule{Syscall: "open", Action: Errno(1), Args: []ArgCmp{EQ(0, 1)}}, true},
		{"same chain same action", Rule{Syscall: "open", Action: Allow(), Args: []ArgCmp{EQ(0, 1)}}, false},
		{"different syscall", Rule{Syscall: "close", Action: Errno(1), Args: []ArgCmp{EQ(0, 1)}}, false},
		{"different chain", Rule{Syscall: "open", Action: Errno(1), Args: []ArgCmp{EQ(0, 2)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.conflictsWith(tt.other); got != tt.expect {
				t.Errorf("conflictsWith = %v, want %v", got, tt.expect)
			}
		})
	}
}
