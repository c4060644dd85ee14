package seccomp

import (
	"fmt"
	"io"
	"sort"

	serrors "seccompbpf/errors"
)

// asm is the two-pass assembler the backend uses to emit a program: calls
// append instructions directly, or register a forward reference to a
// named label and come back later to patch it once every label's final
// offset is known. Classical BPF only supports forward jumps (the kernel
// verifier rejects backward ones), so every label this backend ever
// references is defined after the jump that refers to it — the patch pass
// never needs to handle a backward distance.
type asm struct {
	prog     []Instruction
	labels   map[string]int
	patches  []patch
	labelSeq int
}

type patch struct {
	instrIndex int
	label      string
}

func newAsm() *asm {
	return &asm{labels: make(map[string]int)}
}

func (a *asm) emit(ins Instruction) int {
	a.prog = append(a.prog, ins)
	return len(a.prog) - 1
}

// mark records the current program position as the start of label.
func (a *asm) mark(label string) {
	a.labels[label] = len(a.prog)
}

// label returns a fresh, unique label name for internal control flow
// (dispatch-tree subtrees, per-comparator pass/fail points).
func (a *asm) label(prefix string) string {
	a.labelSeq++
	return fmt.Sprintf("%s#%d", prefix, a.labelSeq)
}

// jumpAlwaysTo emits a JMP+JA whose displacement is resolved once label's
// offset is known; this is the backend's jump-resolution trampoline,
// always used for any forward reference whose distance can't be bounded
// in advance (dispatch-tree branches, match-block dispatch, the arch
// prologue), since JA carries a full 32-bit displacement instead of the
// 8-bit jt/jf of conditional jumps.
func (a *asm) jumpAlwaysTo(label string) {
	idx := a.emit(jump(opJumpAlways, 0, 0, 0))
	a.patches = append(a.patches, patch{instrIndex: idx, label: label})
}

// finish resolves every pending trampoline and returns the assembled
// program. If the result would exceed MaxProgramLen it reports
// ErrTrampolineExhausted, or ErrInternal if a label was referenced but
// never marked, or if a patch would require a backward jump.
func (a *asm) finish() ([]Instruction, error) {
	for _, p := range a.patches {
		target, ok := a.labels[p.label]
		if !ok {
			return nil, serrors.New(serrors.ErrInternal, "compile", "unresolved label "+p.label)
		}
		dist := target - (p.instrIndex + 1)
		if dist < 0 {
			return nil, serrors.New(serrors.ErrInternal, "compile", "backward jump to "+p.label)
		}
		a.prog[p.instrIndex].K = uint32(dist)
	}
	if len(a.prog) > MaxProgramLen {
		return nil, serrors.ErrTrampolineExhausted
	}
	return a.prog, nil
}

// dispatchNode is one node of a syscall-number dispatch tree: an
// architecture-specific resolved number plus a priority/frequency weight.
type dispatchNode struct {
	name   string
	num    int32
	weight int
}

type treeNode struct {
	dispatchNode
	left, right *treeNode
}

// buildTree orders candidates by number (required for a valid
// binary-search split), then recursively promotes the highest-weighted
// remaining candidate to the root of its range so higher (priority desc,
// frequency desc) syscalls land nearer the root of the dispatch tree per
// spec.md §4.4, while every node's number still falls strictly between
// every number in its left subtree and every number in its right subtree.
// When the middle candidate of a range shares the highest weight it is the
// one promoted, so a set of equally weighted syscalls forms a balanced tree.
func buildTree(nodes []dispatchNode) *treeNode {
	sorted := make([]dispatchNode, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].num < sorted[j].num })
	return buildSubtree(sorted)
}

func buildSubtree(nodes []dispatchNode) *treeNode {
	if len(nodes) == 0 {
		return nil
	}
	best := len(nodes) / 2
	for i, n := range nodes {
		if n.weight > nodes[best].weight {
			best = i
		}
	}
	return &treeNode{
		dispatchNode: nodes[best],
		left:         buildSubtree(nodes[:best]),
		right:        buildSubtree(nodes[best+1:]),
	}
}

// emitTree emits the dispatch tree for one architecture's syscall-number
// comparisons. Every node's "matched" path is a forward JA into the
// match-block region (labeled "syscall:<name>"); the "undecided" branch
// comparisons (JEQ then JGT) only ever use jt/jf of 0 or 1, since the long
// jumps are funneled through the JA trampoline immediately following —
// this is how the assembler avoids the 8-bit jt/jf horizon for dispatch
// decisions of arbitrary program size.
func emitTree(a *asm, n *treeNode, prefix, defaultLabel string) {
	if n == nil {
		a.jumpAlwaysTo(defaultLabel)
		return
	}
	// acc == n.num: fall through into the JA (jt=0); else skip it (jf=1).
	a.emit(jump(opJumpEqual, uint32(n.num), 0, 1))
	a.jumpAlwaysTo("syscall:" + prefix + n.name)

	if n.left == nil && n.right == nil {
		a.jumpAlwaysTo(defaultLabel)
		return
	}
	// acc > n.num: fall through into the JA-to-right (jt=0); else skip
	// it (jf=1) and continue into the inline left subtree.
	a.emit(jump(opJumpGreater, uint32(n.num), 0, 1))
	rightLabel := a.label("tree_right")
	a.jumpAlwaysTo(rightLabel)
	emitTree(a, n.left, prefix, defaultLabel)
	a.mark(rightLabel)
	emitTree(a, n.right, prefix, defaultLabel)
}

// emitComparator lowers one argument comparator into BPF, decomposing the
// 64-bit argument into hi/lo 32-bit loads on every architecture (the
// kernel's seccomp_data only ever exposes 32-bit words at a time) per
// spec.md §3/§4.4. Inequalities compare lexicographically: the hi half
// decides the outcome whenever it differs from the comparand's hi half;
// only a hi match defers to the lo half. On failure it jumps to
// failLabel; on success it falls through to whatever the caller emits
// next.
func emitComparator(a *asm, arch Arch, c ArgCmp, failLabel string) {
	lo := offsetArgLo(c.Index, arch.BigEndian)
	hi := offsetArgHi(c.Index, arch.BigEndian)
	wantLo := uint32(c.Value)
	wantHi := uint32(c.Value >> 32)

	switch c.Op {
	case OpEqualTo:
		a.emit(stmt(opLoadArchOrNR, hi))
		a.emit(jump(opJumpEqual, wantHi, 1, 0))
		a.jumpAlwaysTo(failLabel)
		a.emit(stmt(opLoadArchOrNR, lo))
		a.emit(jump(opJumpEqual, wantLo, 1, 0))
		a.jumpAlwaysTo(failLabel)

	case OpNotEqual:
		pass := a.label("ne_pass")
		a.emit(stmt(opLoadArchOrNR, hi))
		a.emit(jump(opJumpEqual, wantHi, 1, 0))
		a.jumpAlwaysTo(pass) // hi differs: NE already satisfied
		a.emit(stmt(opLoadArchOrNR, lo))
		a.emit(jump(opJumpEqual, wantLo, 1, 0))
		a.jumpAlwaysTo(pass) // lo differs: NE satisfied
		a.jumpAlwaysTo(failLabel) // both halves equal: NE fails
		a.mark(pass)

	case OpGreaterThan, OpGreaterEqual:
		pass := a.label("gt_pass")
		a.emit(stmt(opLoadArchOrNR, hi))
		a.emit(jump(opJumpGreater, wantHi, 0, 1))
		a.jumpAlwaysTo(pass) // hi strictly greater: passes regardless of lo
		a.emit(jump(opJumpEqual, wantHi, 1, 0))
		a.jumpAlwaysTo(failLabel) // hi strictly less: fails outright
		a.emit(stmt(opLoadArchOrNR, lo))
		if c.Op == OpGreaterThan {
			a.emit(jump(opJumpGreater, wantLo, 0, 1))
		} else {
			a.emit(jump(opJumpGE, wantLo, 0, 1))
		}
		a.jumpAlwaysTo(pass)
		a.jumpAlwaysTo(failLabel)
		a.mark(pass)

	case OpLessThan, OpLessEqual:
		pass := a.label("lt_pass")
		a.emit(stmt(opLoadArchOrNR, hi))
		a.emit(jump(opJumpGE, wantHi, 1, 0))
		a.jumpAlwaysTo(pass) // hi strictly less (GE false): passes regardless of lo
		a.emit(jump(opJumpEqual, wantHi, 1, 0))
		a.jumpAlwaysTo(failLabel) // hi strictly greater (GE true, not equal): fails outright
		a.emit(stmt(opLoadArchOrNR, lo))
		if c.Op == OpLessThan {
			a.emit(jump(opJumpGE, wantLo, 0, 1))
		} else {
			a.emit(jump(opJumpGreater, wantLo, 0, 1))
		}
		a.jumpAlwaysTo(failLabel)
		a.jumpAlwaysTo(pass)
		a.mark(pass)

	case OpMaskedEqual:
		maskHi := uint32(c.Mask >> 32)
		maskLo := uint32(c.Mask)
		a.emit(stmt(opLoadArchOrNR, hi))
		a.emit(stmt(opALUAnd, maskHi))
		a.emit(jump(opJumpEqual, wantHi&maskHi, 1, 0))
		a.jumpAlwaysTo(failLabel)
		a.emit(stmt(opLoadArchOrNR, lo))
		a.emit(stmt(opALUAnd, maskLo))
		a.emit(jump(opJumpEqual, wantLo&maskLo, 1, 0))
		a.jumpAlwaysTo(failLabel)
	}
}

// matchedArgCheck emits the comparator chain for one rule: a conjunction
// that falls through to actionLabel on a full match, or to failLabel (the
// caller's "try the next rule" point) on the first comparator that fails.
func matchedArgCheck(a *asm, arch Arch, args []ArgCmp, actionLabel, failLabel string) {
	for _, c := range args {
		emitComparator(a, arch, c, failLabel)
	}
	a.jumpAlwaysTo(actionLabel)
}

// CompileMulti compiles the database's accumulated rules into one BPF
// program covering every configured architecture, per spec.md §4.4: an
// architecture-dispatch prologue, followed by one self-contained block per
// architecture (syscall dispatch tree, match-condition blocks, and one
// shared RET slot per distinct action).
func CompileMulti(d *Database) ([]Instruction, error) {
	if len(d.archOrder) == 0 {
		return nil, serrors.ErrNoArches
	}
	defRet, err := d.def.Encode()
	if err != nil {
		return nil, err
	}

	a := newAsm()
	a.emit(stmt(opLoadArchOrNR, offsetArch))

	archLabels := make([]string, len(d.archOrder))
	for i, archName := range d.archOrder {
		arch, _ := LookupArch(archName)
		archLabels[i] = "arch:" + string(archName)
		a.emit(jump(opJumpEqual, arch.AuditToken, 0, 1))
		a.jumpAlwaysTo(archLabels[i])
	}
	a.emit(stmt(opReturn, uint32(classToRet[ActionKillProcess])))

	rulesByName := make(map[string][]Rule)
	for _, r := range d.rules {
		rulesByName[r.Syscall] = append(rulesByName[r.Syscall], r)
	}

	for i, archName := range d.archOrder {
		arch, _ := LookupArch(archName)
		a.mark(archLabels[i])
		if err := compileArchBlock(a, arch, rulesByName, d.priorities, defRet); err != nil {
			return nil, err
		}
	}

	return a.finish()
}

func compileArchBlock(a *asm, arch Arch, rulesByName map[string][]Rule, priorities map[string]int, defRet uint32) error {
	a.emit(stmt(opLoadArchOrNR, offsetNR))

	// Every label built in this function is prefixed with the
	// architecture name: match-block content depends on this
	// architecture's endianness (offsetArgLo/offsetArgHi) and syscall
	// numbers, so a label computed for one architecture must never be
	// resolved against another architecture's block.
	prefix := string(arch.Name) + ":"
	actionLabel := func(act Action) string { return "action:" + prefix + act.String() }

	names := make([]string, 0, len(rulesByName))
	for name := range rulesByName {
		names = append(names, name)
	}
	sort.Strings(names)

	var nodes []dispatchNode
	for _, name := range names {
		num, err := ResolveName(arch.Name, name)
		if err != nil {
			return err
		}
		// A name that resolves to a negative pseudo-number isn't a real
		// syscall on this architecture (e.g. an s390x socketcall name
		// multiplexed away): per spec.md §4.1/§4.3 it gets no dispatch
		// entry here, even though the same rule compiles normally on a
		// co-configured architecture where the name is real. Including it
		// would also corrupt buildTree's ordering: nodes sort on signed
		// int32 num, but the emitted JEQ/JGT compare unsigned 32-bit
		// operands, where a negative pseudo-number wraps to a huge value.
		if num < 0 {
			continue
		}
		nodes = append(nodes, dispatchNode{
			name:   name,
			num:    num,
			weight: priorities[name]*1000 + len(rulesByName[name]),
		})
	}

	defaultLabel := a.label("arch_default")
	emitTree(a, buildTree(nodes), prefix, defaultLabel)

	for _, n := range nodes {
		a.mark("syscall:" + prefix + n.name)
		rules := rulesByName[n.name]
		for i, r := range rules {
			label := actionLabel(r.Action)
			var nextLabel string
			if i == len(rules)-1 {
				nextLabel = defaultLabel
			} else {
				nextLabel = a.label("next_rule")
			}
			if len(r.Args) == 0 {
				a.jumpAlwaysTo(label)
			} else {
				matchedArgCheck(a, arch, r.Args, label, nextLabel)
			}
			if i != len(rules)-1 {
				a.mark(nextLabel)
			}
		}
	}

	defaultActionLabel := "action:" + prefix + "__default__"
	a.mark(defaultLabel)
	a.jumpAlwaysTo(defaultActionLabel)

	emitted := make(map[string]bool)
	for _, n := range nodes {
		for _, r := range rulesByName[n.name] {
			label := actionLabel(r.Action)
			if emitted[label] {
				continue
			}
			emitted[label] = true
			ret, err := r.Action.Encode()
			if err != nil {
				return err
			}
			a.mark(label)
			a.emit(stmt(opReturn, ret))
		}
	}
	if !emitted[defaultActionLabel] {
		a.mark(defaultActionLabel)
		a.emit(stmt(opReturn, defRet))
	}

	return nil
}

// ExportBPF compiles the database and writes the resulting program to w as
// a sequence of 8-byte struct sock_filter records.
func (d *Database) ExportBPF(w io.Writer) error {
	prog, err := CompileMulti(d)
	if err != nil {
		return err
	}
	return WriteTo(w, prog)
}
