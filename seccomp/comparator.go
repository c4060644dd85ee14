package seccomp

import serrors "seccompbpf/errors"

// Op is a syscall argument comparator operator, the Go realization of
// spec.md §3's EQ/NE/LT/LE/GT/GE/MASKED_EQ taxonomy, generalizing the
// teacher's spec.LinuxSeccompOperator string constants into a small int
// enum with a String method in the ErrorKind.String() style.
type Op int

const (
	OpEqualTo Op = iota
	OpNotEqual
	OpLessThan
	OpLessEqual
	OpGreaterThan
	OpGreaterEqual
	OpMaskedEqual
)

// String returns the operator's symbolic name, matching libseccomp's
// SCMP_CMP_* identifiers without the prefix.
func (o Op) String() string {
	switch o {
	case OpEqualTo:
		return "EQ"
	case OpNotEqual:
		return "NE"
	case OpLessThan:
		return "LT"
	case OpLessEqual:
		return "LE"
	case OpGreaterThan:
		return "GT"
	case OpGreaterEqual:
		return "GE"
	case OpMaskedEqual:
		return "MASKED_EQ"
	default:
		return "UNKNOWN"
	}
}

// ArgCmp is a single comparator against one of a syscall's six fixed
// arguments. For OpMaskedEqual, Mask holds the mask and Value holds the
// expected masked value; for every other operator Mask is unused and
// Value is compared directly.
type ArgCmp struct {
	Index uint8 // 0..5
	Op    Op
	Mask  uint64
	Value uint64
}

// EQ returns an equality comparator on argument index.
func EQ(index uint8, value uint64) ArgCmp { return ArgCmp{Index: index, Op: OpEqualTo, Value: value} }

// NE returns an inequality comparator on argument index.
func NE(index uint8, value uint64) ArgCmp { return ArgCmp{Index: index, Op: OpNotEqual, Value: value} }

// LT returns a less-than comparator on argument index.
func LT(index uint8, value uint64) ArgCmp { return ArgCmp{Index: index, Op: OpLessThan, Value: value} }

// LE returns a less-than-or-equal comparator on argument index.
func LE(index uint8, value uint64) ArgCmp { return ArgCmp{Index: index, Op: OpLessEqual, Value: value} }

// GT returns a greater-than comparator on argument index.
func GT(index uint8, value uint64) ArgCmp {
	return ArgCmp{Index: index, Op: OpGreaterThan, Value: value}
}

// GE returns a greater-than-or-equal comparator on argument index.
func GE(index uint8, value uint64) ArgCmp {
	return ArgCmp{Index: index, Op: OpGreaterEqual, Value: value}
}

// MaskedEQ returns a masked-equality comparator: (arg & mask) == value.
func MaskedEQ(index uint8, mask, value uint64) ArgCmp {
	return ArgCmp{Index: index, Op: OpMaskedEqual, Mask: mask, Value: value}
}

// Validate checks that the comparator references one of the six fixed
// syscall arguments and uses a known operator.
func (c ArgCmp) Validate() error {
	if c.Index > 5 {
		return serrors.WrapWithDetail(nil, serrors.ErrUsage, "validate_arg", "argument index out of range (must be 0..5)")
	}
	switch c.Op {
	case OpEqualTo, OpNotEqual, OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual, OpMaskedEqual:
		return nil
	default:
		return serrors.WrapWithDetail(nil, serrors.ErrUsage, "validate_arg", "unknown comparator operator")
	}
}
