package seccomp

// Rule is one syscall filtering rule: an action to take when Syscall is
// invoked with arguments matching every comparator in Args (conjunction).
// This is the Go realization of spec.md §3's Rule, generalizing the
// teacher's spec.LinuxSyscall (Names []string, Action, Args
// []LinuxSeccompArg) to a single name per rule — the filter database
// expands a multi-name LinuxSyscall entry into one Rule per name at load
// time (see profile.go).
type Rule struct {
	Syscall string
	Action  Action
	Args    []ArgCmp
}

// sameChain reports whether two comparator chains are identical as sets
// (order-independent), used to detect an exact resyscall-by-syscall
// overlap for merge/conflict detection.
func sameChain(a, b []ArgCmp) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ca := range a {
		match := false
		for j, cb := range b {
			if used[j] {
				continue
			}
			if ca == cb {
				used[j] = true
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}

// conflictsWith reports whether adding other alongside r would be a rule
// conflict under non-exact merge semantics: same syscall, identical
// comparator chain, different action. Identical chain and identical
// action is not a conflict — it is a no-op merge.
func (r Rule) conflictsWith(other Rule) bool {
	if r.Syscall != other.Syscall {
		return false
	}
	if !sameChain(r.Args, other.Args) {
		return false
	}
	return r.Action != other.Action
}
