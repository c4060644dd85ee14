package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrUsage, "usage error"},
		{ErrUnknownSyscall, "unknown syscall"},
		{ErrArchMismatch, "architecture mismatch"},
		{ErrRuleConflict, "rule conflict"},
		{ErrOverflow, "overflow"},
		{ErrInternal, "internal error"},
		{ErrorKind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPolicyError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PolicyError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "<nil>",
		},
		{
			name: "full error",
			err: &PolicyError{
				Op:      "rule_add",
				Syscall: "openat",
				Kind:    ErrUnknownSyscall,
				Detail:  "does not resolve on aarch64",
				Err:     fmt.Errorf("table miss"),
			},
			expected: "rule_add: syscall openat: does not resolve on aarch64: table miss",
		},
		{
			name: "without syscall",
			err: &PolicyError{
				Op:     "compile",
				Kind:   ErrOverflow,
				Detail: "jump resolution exhausted",
			},
			expected: "compile: jump resolution exhausted",
		},
		{
			name: "kind only",
			err: &PolicyError{
				Kind: ErrUsage,
			},
			expected: "usage error",
		},
		{
			name: "with underlying error",
			err: &PolicyError{
				Op:   "priority",
				Kind: ErrArchMismatch,
				Err:  fmt.Errorf("arch not present"),
			},
			expected: "priority: architecture mismatch: arch not present",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("PolicyError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPolicyError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := &PolicyError{
		Op:   "test",
		Kind: ErrInternal,
		Err:  underlying,
	}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	var nilErr *PolicyError
	if got := nilErr.Unwrap(); got != nil {
		t.Errorf("nil.Unwrap() = %v, want nil", got)
	}
}

func TestPolicyError_Is(t *testing.T) {
	err1 := &PolicyError{Kind: ErrUnknownSyscall, Op: "test1"}
	err2 := &PolicyError{Kind: ErrUnknownSyscall, Op: "test2"}
	err3 := &PolicyError{Kind: ErrUsage, Op: "test3"}

	if !err1.Is(err2) {
		t.Error("err1.Is(err2) should be true (same kind)")
	}

	if err1.Is(err3) {
		t.Error("err1.Is(err3) should be false (different kind)")
	}

	if err1.Is(fmt.Errorf("some error")) {
		t.Error("err1.Is(fmt.Errorf(...)) should be false")
	}

	var nilErr *PolicyError
	if !nilErr.Is(nil) {
		t.Error("nil.Is(nil) should be true")
	}
}

func TestNew(t *testing.T) {
	err := New(ErrUsage, "validate", "comparator index out of range")

	if err.Kind != ErrUsage {
		t.Errorf("Kind = %v, want %v", err.Kind, ErrUsage)
	}
	if err.Op != "validate" {
		t.Errorf("Op = %q, want %q", err.Op, "validate")
	}
	if err.Detail != "comparator index out of range" {
		t.Errorf("Detail = %q, want %q", err.Detail, "comparator index out of range")
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("table miss")
	err := Wrap(underlying, ErrUnknownSyscall, "resolve_name")

	if err.Err != underlying {
		t.Error("Wrapped error should preserve underlying error")
	}
	if err.Kind != ErrUnknownSyscall {
		t.Errorf("Kind = %v, want %v", err.Kind, ErrUnknownSyscall)
	}
	if err.Op != "resolve_name" {
		t.Errorf("Op = %q, want %q", err.Op, "resolve_name")
	}
}

func TestWrapWithSyscall(t *testing.T) {
	underlying := fmt.Errorf("not found")
	err := WrapWithSyscall(underlying, ErrUnknownSyscall, "rule_add", "bogus_call")

	if err.Syscall != "bogus_call" {
		t.Errorf("Syscall = %q, want %q", err.Syscall, "bogus_call")
	}
}

func TestWrapWithDetail(t *testing.T) {
	underlying := fmt.Errorf("trampoline limit hit")
	err := WrapWithDetail(underlying, ErrOverflow, "compile", "program exceeds 4096 instructions")

	if err.Detail != "program exceeds 4096 instructions" {
		t.Errorf("Detail = %q, want %q", err.Detail, "program exceeds 4096 instructions")
	}
}

func TestIsKind(t *testing.T) {
	err := &PolicyError{Kind: ErrUnknownSyscall}
	wrapped := fmt.Errorf("wrapped: %w", err)

	if !IsKind(err, ErrUnknownSyscall) {
		t.Error("IsKind(err, ErrUnknownSyscall) should be true")
	}
	if !IsKind(wrapped, ErrUnknownSyscall) {
		t.Error("IsKind(wrapped, ErrUnknownSyscall) should be true")
	}
	if IsKind(err, ErrUsage) {
		t.Error("IsKind(err, ErrUsage) should be false")
	}
	if IsKind(fmt.Errorf("plain error"), ErrUnknownSyscall) {
		t.Error("IsKind(plain error, ErrUnknownSyscall) should be false")
	}
}

func TestGetKind(t *testing.T) {
	err := &PolicyError{Kind: ErrArchMismatch}
	wrapped := fmt.Errorf("wrapped: %w", err)

	kind, ok := GetKind(err)
	if !ok || kind != ErrArchMismatch {
		t.Errorf("GetKind(err) = (%v, %v), want (%v, true)", kind, ok, ErrArchMismatch)
	}

	kind, ok = GetKind(wrapped)
	if !ok || kind != ErrArchMismatch {
		t.Errorf("GetKind(wrapped) = (%v, %v), want (%v, true)", kind, ok, ErrArchMismatch)
	}

	_, ok = GetKind(fmt.Errorf("plain error"))
	if ok {
		t.Error("GetKind(plain error) should return false")
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  *PolicyError
		kind ErrorKind
	}{
		{"ErrSyscallUnknown", ErrSyscallUnknown, ErrUnknownSyscall},
		{"ErrArgIndexOutOfRange", ErrArgIndexOutOfRange, ErrUsage},
		{"ErrUnknownAction", ErrUnknownAction, ErrUsage},
		{"ErrUnknownArch", ErrUnknownArch, ErrUsage},
		{"ErrArchNotPresent", ErrArchNotPresent, ErrArchMismatch},
		{"ErrArchAlreadyPresent", ErrArchAlreadyPresent, ErrUsage},
		{"ErrActionConflict", ErrActionConflict, ErrRuleConflict},
		{"ErrTrampolineExhausted", ErrTrampolineExhausted, ErrOverflow},
		{"ErrProgramTooLarge", ErrProgramTooLarge, ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("%s.Kind = %v, want %v", tt.name, tt.err.Kind, tt.kind)
			}
			wrapped := Wrap(fmt.Errorf("underlying"), tt.kind, "test")
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) should be true", tt.name)
			}
		})
	}
}

func TestErrorChain(t *testing.T) {
	underlying := fmt.Errorf("name not in table")
	err1 := Wrap(underlying, ErrUnknownSyscall, "resolve_name")
	err2 := fmt.Errorf("rule_add failed: %w", err1)

	if !errors.Is(err2, ErrSyscallUnknown) {
		t.Error("errors.Is should find ErrSyscallUnknown in chain")
	}

	var perr *PolicyError
	if !errors.As(err2, &perr) {
		t.Error("errors.As should find PolicyError in chain")
	}
	if perr.Op != "resolve_name" {
		t.Errorf("perr.Op = %q, want %q", perr.Op, "resolve_name")
	}

	if errors.Unwrap(err1) != underlying {
		t.Error("Unwrap should return underlying error")
	}
}
