package seccomp

import (
	"fmt"
	"io"

	serrors "seccompbpf/errors"
	"seccompbpf/logging"
)

// Database is the filter database of spec.md §4.3: a long-lived, mutable
// value holding the default action, the set of configured architectures,
// the accumulated rule set, and per-syscall priority weights. It
// generalizes the teacher's buildSeccompFilter, which rebuilt everything
// from a static *spec.LinuxSeccomp struct on every call; here rules accrue
// incrementally via RuleAdd/RuleAddExact and the struct is compiled only
// when the caller asks for BPF or PFC output.
type Database struct {
	def        Action
	arches     map[ArchName]struct{}
	archOrder  []ArchName
	rules      []Rule
	priorities map[string]int
}

// New creates a Database with the given default action and no configured
// architectures.
func New(def Action) *Database {
	return &Database{
		def:        def,
		arches:     make(map[ArchName]struct{}),
		priorities: make(map[string]int),
	}
}

// Reset clears all rules, architectures, and priorities and sets a new
// default action, matching libseccomp's seccomp_reset semantics.
func (d *Database) Reset(def Action) {
	d.def = def
	d.arches = make(map[ArchName]struct{})
	d.archOrder = nil
	d.rules = nil
	d.priorities = make(map[string]int)
}

// AddArch adds an architecture to the database. It is an error to add an
// architecture already present.
func (d *Database) AddArch(a ArchName) error {
	if _, err := LookupArch(a); err != nil {
		return err
	}
	if _, ok := d.arches[a]; ok {
		return serrors.WrapWithDetail(nil, serrors.ErrUsage, "add_arch", "architecture already present in database")
	}
	d.arches[a] = struct{}{}
	d.archOrder = append(d.archOrder, a)
	logging.WithArch(logging.Default(), string(a)).Debug("architecture added")
	return nil
}

// RemoveArch removes an architecture from the database. It is an error to
// remove an architecture not present.
func (d *Database) RemoveArch(a ArchName) error {
	if _, ok := d.arches[a]; !ok {
		return serrors.WrapWithDetail(nil, serrors.ErrArchMismatch, "remove_arch", "architecture not present in database")
	}
	delete(d.arches, a)
	for i, arch := range d.archOrder {
		if arch == a {
			d.archOrder = append(d.archOrder[:i], d.archOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Arches returns the configured architectures in insertion order.
func (d *Database) Arches() []ArchName {
	out := make([]ArchName, len(d.archOrder))
	copy(out, d.archOrder)
	return out
}

// validateAcrossArches checks that syscall resolves on every configured
// architecture before any rule mutation happens, giving RuleAdd/
// RuleAddExact the atomicity spec.md §4.3/§7 requires: either every
// architecture accepts the rule, or none of them do.
func (d *Database) validateAcrossArches(syscall string) error {
	if len(d.archOrder) == 0 {
		return serrors.New(serrors.ErrUsage, "rule_add", "no architectures configured")
	}
	for _, a := range d.archOrder {
		if _, err := ResolveName(a, syscall); err != nil {
			return serrors.WrapWithSyscall(err, serrors.ErrUnknownSyscall, "rule_add", syscall)
		}
	}
	return nil
}

// RuleAdd adds a rule, merging it into an existing rule for the same
// syscall and comparator chain when the action matches, and reporting
// ErrRuleConflict when an existing rule has the same chain but a
// different action. This is libseccomp's non-exact seccomp_rule_add
// semantics, as opposed to RuleAddExact.
func (d *Database) RuleAdd(act Action, syscall string, args ...ArgCmp) error {
	for _, c := range args {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if err := d.validateAcrossArches(syscall); err != nil {
		return err
	}

	candidate := Rule{Syscall: syscall, Action: act, Args: args}
	for _, existing := range d.rules {
		if existing.conflictsWith(candidate) {
			return serrors.WrapWithSyscall(nil, serrors.ErrRuleConflict, "rule_add", syscall)
		}
		if existing.Syscall == syscall && sameChain(existing.Args, candidate.Args) {
			// Identical chain, identical action: no-op, already present.
			return nil
		}
	}
	d.rules = append(d.rules, candidate)
	return nil
}

// RuleAddExact adds a rule without merge or conflict detection, appending
// it verbatim — libseccomp's seccomp_rule_add_exact. Callers take on
// responsibility for avoiding self-contradictory rule sets.
func (d *Database) RuleAddExact(act Action, syscall string, args ...ArgCmp) error {
	for _, c := range args {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if err := d.validateAcrossArches(syscall); err != nil {
		return err
	}
	d.rules = append(d.rules, Rule{Syscall: syscall, Action: act, Args: args})
	return nil
}

// Priority sets a dispatch-tree priority weight for syscall: higher
// weights place the syscall closer to the root of the per-architecture
// decision tree, per spec.md §4.4's (priority desc, frequency heuristic
// desc, number asc) ordering.
func (d *Database) Priority(syscall string, weight int) error {
	if len(d.archOrder) == 0 {
		return serrors.New(serrors.ErrUsage, "priority", "no architectures configured")
	}
	for _, a := range d.archOrder {
		if _, err := ResolveName(a, syscall); err != nil {
			return serrors.WrapWithSyscall(err, serrors.ErrUnknownSyscall, "priority", syscall)
		}
	}
	d.priorities[syscall] = weight
	return nil
}

// Rules returns a copy of the accumulated rule set, in insertion order.
func (d *Database) Rules() []Rule {
	out := make([]Rule, len(d.rules))
	copy(out, d.rules)
	return out
}

// ExportPFC writes a pretty-printed rule listing to w: one header line
// listing the configured architectures, then one line per rule giving its
// syscall, action, and comparator chain, and a trailing default-action
// line. It is intentionally minimal (no column alignment, no symbolic
// argument names) — it is what the CLI's `compile --pfc` prints, not a
// libseccomp-compatible PFC parser input.
func (d *Database) ExportPFC(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# architectures: "); err != nil {
		return err
	}
	for i, a := range d.archOrder {
		if i > 0 {
			if _, err := fmt.Fprint(w, ", "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, string(a)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, r := range d.rules {
		if _, err := fmt.Fprintf(w, "%s: %s", r.Syscall, r.Action); err != nil {
			return err
		}
		for _, c := range r.Args {
			if c.Op == OpMaskedEqual {
				if _, err := fmt.Fprintf(w, " arg[%d] & 0x%x == 0x%x", c.Index, c.Mask, c.Value); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, " arg[%d] %s 0x%x", c.Index, c.Op, c.Value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "default: %s\n", d.def); err != nil {
		return err
	}
	return nil
}
