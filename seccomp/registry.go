package seccomp

import (
	"sort"
	"sync"

	serrors "seccompbpf/errors"
)

// canonicalNames is the single source of truth for every syscall name the
// registry knows about: the union of every architecture's override table,
// sorted once and assigned a stable negative pseudo-number by table
// position. This resolves the "generate the table once from a canonical
// data file" design note (spec.md §9, see DESIGN.md): rather than
// maintaining nine independent tables that could assign the same name
// different pseudo-numbers on different architectures, every architecture
// defers to one shared numbering for names it doesn't itself define.
var canonicalNames []string

// canonicalIndex maps a name to its position in canonicalNames, i.e. the
// pseudo-number is -(canonicalIndex[name] + 1).
var canonicalIndex map[string]int

var registryInit sync.Once

func initRegistry() {
	seen := make(map[string]struct{})
	for _, tbl := range archSyscalls {
		for name := range tbl {
			seen[name] = struct{}{}
		}
	}
	for _, name := range s390xMultiplexNames {
		seen[name] = struct{}{}
	}
	canonicalNames = make([]string, 0, len(seen))
	for name := range seen {
		canonicalNames = append(canonicalNames, name)
	}
	sort.Strings(canonicalNames)

	canonicalIndex = make(map[string]int, len(canonicalNames))
	for i, name := range canonicalNames {
		canonicalIndex[name] = i
	}
}

// pseudoNumber returns the stable negative pseudo-number for name, and
// whether name is known to the canonical table at all.
func pseudoNumber(name string) (int32, bool) {
	registryInit.Do(initRegistry)
	i, ok := sort.Find(len(canonicalNames), func(i int) int {
		if canonicalNames[i] < name {
			return 1
		}
		if canonicalNames[i] > name {
			return -1
		}
		return 0
	})
	if !ok || i >= len(canonicalNames) || canonicalNames[i] != name {
		return 0, false
	}
	return -(int32(canonicalIndex[name]) + 1), true
}

// ResolveName resolves a syscall name to its number on the given
// architecture, per spec.md §4.1: a non-negative architecture-specific number
// when the name resolves to a real syscall there, or a stable negative
// pseudo-number when the name is known to the registry but absent on this
// architecture. It returns ErrSyscallUnknown wrapped with the syscall name
// if the name is not known on any configured architecture.
func ResolveName(arch ArchName, name string) (int32, error) {
	registryInit.Do(initRegistry)

	a, err := LookupArch(arch)
	if err != nil {
		return 0, err
	}

	if a.Multiplex != nil {
		if num, ok := a.Multiplex(name); ok {
			return num, nil
		}
	}

	if num, ok := archSyscalls[arch][name]; ok {
		return num, nil
	}

	if num, ok := pseudoNumber(name); ok {
		return num, nil
	}

	return 0, serrors.WrapWithSyscall(nil, serrors.ErrUnknownSyscall, "resolve_name", name)
}

// ResolveNum resolves a syscall number back to its name on the given
// architecture. Negative numbers are looked up in the canonical pseudo
// table; non-negative numbers are looked up in the architecture's override
// table.
func ResolveNum(arch ArchName, num int32) (string, error) {
	registryInit.Do(initRegistry)

	if _, err := LookupArch(arch); err != nil {
		return "", err
	}

	if num < 0 {
		idx := int(-num - 1)
		if idx < 0 || idx >= len(canonicalNames) {
			return "", serrors.New(serrors.ErrUnknownSyscall, "resolve_num", "pseudo-number out of range")
		}
		return canonicalNames[idx], nil
	}

	for name, n := range archSyscalls[arch] {
		if n == num {
			return name, nil
		}
	}
	return "", serrors.New(serrors.ErrUnknownSyscall, "resolve_num", "number does not resolve on this architecture")
}

// archSortedNames caches, per architecture, the names the registry knows
// about in sorted order for Iterate.
var archSortedNames sync.Map // ArchName -> []string

// Iterate returns the syscall name at position spot in the architecture's
// sorted enumeration (override-table entries and canonical fallback names
// merged and de-duplicated), following the teacher's iteration contract
// (grounded on s390x_syscall_iterate's "internal use" enumeration). It
// returns ok=false once spot runs past the end.
func Iterate(arch ArchName, spot int) (name string, num int32, ok bool) {
	registryInit.Do(initRegistry)

	if _, err := LookupArch(arch); err != nil {
		return "", 0, false
	}

	cached, found := archSortedNames.Load(arch)
	var names []string
	if found {
		names = cached.([]string)
	} else {
		set := make(map[string]struct{}, len(canonicalNames))
		for _, n := range canonicalNames {
			set[n] = struct{}{}
		}
		for n := range archSyscalls[arch] {
			set[n] = struct{}{}
		}
		names = make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		archSortedNames.Store(arch, names)
	}

	if spot < 0 || spot >= len(names) {
		return "", 0, false
	}
	name = names[spot]
	num, err := ResolveName(arch, name)
	if err != nil {
		return "", 0, false
	}
	return name, num, true
}
