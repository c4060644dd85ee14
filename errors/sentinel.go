// Package errors provides predefined sentinel errors for common failure cases.
package errors

// Syscall resolution errors.
var (
	// ErrSyscallUnknown indicates a syscall name did not resolve on any
	// architecture present in the database.
	ErrSyscallUnknown = &PolicyError{
		Kind:   ErrUnknownSyscall,
		Detail: "syscall name does not resolve on any configured architecture",
	}

	// ErrArgIndexOutOfRange indicates a comparator referenced an argument
	// index outside 0..5.
	ErrArgIndexOutOfRange = &PolicyError{
		Kind:   ErrUsage,
		Detail: "argument index out of range (must be 0..5)",
	}

	// ErrUnknownAction indicates an action value outside the stable
	// action taxonomy.
	ErrUnknownAction = &PolicyError{
		Kind:   ErrUsage,
		Detail: "unknown action",
	}

	// ErrUnknownArch indicates an architecture token not in the
	// supported architecture set.
	ErrUnknownArch = &PolicyError{
		Kind:   ErrUsage,
		Detail: "unknown architecture",
	}

	// ErrUnknownOperator indicates a comparator operator outside the
	// stable operator taxonomy.
	ErrUnknownOperator = &PolicyError{
		Kind:   ErrUsage,
		Detail: "unknown comparator operator",
	}
)

// Database invariant errors.
var (
	// ErrArchNotPresent indicates an operation referenced an
	// architecture not yet added to the database.
	ErrArchNotPresent = &PolicyError{
		Kind:   ErrArchMismatch,
		Detail: "architecture not present in database",
	}

	// ErrArchAlreadyPresent indicates AddArch was called twice for the
	// same architecture.
	ErrArchAlreadyPresent = &PolicyError{
		Kind:   ErrUsage,
		Detail: "architecture already present in database",
	}

	// ErrNoArches indicates compilation was attempted with zero
	// configured architectures.
	ErrNoArches = &PolicyError{
		Kind:   ErrUsage,
		Detail: "no architectures configured",
	}

	// ErrActionConflict indicates a same-syscall, same-predicate rule
	// was added with a different action under non-exact semantics.
	ErrActionConflict = &PolicyError{
		Kind:   ErrRuleConflict,
		Detail: "conflicting action for an overlapping comparator chain",
	}
)

// BPF backend errors.
var (
	// ErrTrampolineExhausted indicates the jump-resolution pass could
	// not place a program within the jump-offset horizon inside the
	// documented program-length budget.
	ErrTrampolineExhausted = &PolicyError{
		Kind:   ErrOverflow,
		Detail: "jump resolution exceeded program length budget",
	}

	// ErrProgramTooLarge indicates the compiled program exceeds the
	// simulator's soft instruction cap.
	ErrProgramTooLarge = &PolicyError{
		Kind:   ErrOverflow,
		Detail: "compiled program exceeds instruction cap",
	}
)

// Simulator errors (distinct from the taxonomy above: these are runtime
// outcomes of Simulate, carried as PolicyError values with their own
// simulator kinds so the CLI can map them to distinct exit codes).
var (
	// ErrSimFault indicates the simulator encountered an unsupported
	// opcode.
	ErrSimFault = &PolicyError{
		Kind:   ErrKindSimFault,
		Detail: "simulator fault: unsupported opcode",
	}

	// ErrSimProgramError indicates the simulator read past the end of
	// the synthetic record, or the program fell off the end without a
	// RET.
	ErrSimProgramError = &PolicyError{
		Kind:   ErrKindSimProgramError,
		Detail: "program error: out-of-range load or missing terminal return",
	}
)
