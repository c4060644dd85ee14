//go:build linux

package seccomp

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	serrors "seccompbpf/errors"
	"seccompbpf/logging"
)

// sockFprog is the kernel's struct sock_fprog: a length-prefixed pointer to
// the first compiled Instruction, carried over unchanged in shape from the
// teacher's sockFprog (renamed to match the new Instruction type it points
// into instead of the teacher's sockFilter).
type sockFprog struct {
	Len    uint16
	Filter *Instruction
}

// Install compiles the database and installs it as the calling thread's
// seccomp filter via prctl(2), generalizing the teacher's SetupSeccomp:
// where the teacher rebuilt a filter from a static *spec.LinuxSeccomp on
// every call, Install compiles whatever rules have accrued in d so far and
// applies them to the live thread, always setting PR_SET_NO_NEW_PRIVS
// first since the kernel requires it before PR_SET_SECCOMP is permitted to
// an unprivileged caller.
func Install(d *Database) error {
	log := logging.WithOperation(logging.Default(), "install")

	if err := unix.Prctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0); err != nil {
		return serrors.Wrap(fmt.Errorf("prctl(PR_SET_NO_NEW_PRIVS): %w", err), serrors.ErrInternal, "install")
	}

	prog, err := CompileMulti(d)
	if err != nil {
		return serrors.Wrap(err, serrors.ErrInternal, "install")
	}
	if len(prog) == 0 {
		log.Debug("compiled program is empty, nothing to install")
		return nil
	}

	fprog := sockFprog{
		Len:    uint16(len(prog)),
		Filter: &prog[0],
	}

	if err := unix.Prctl(unix.PR_SET_SECCOMP, unix.SECCOMP_MODE_FILTER, uintptr(unsafe.Pointer(&fprog)), 0, 0); err != nil {
		return serrors.Wrap(fmt.Errorf("prctl(PR_SET_SECCOMP): %w", err), serrors.ErrInternal, "install")
	}

	log.Info("seccomp filter installed", "instructions", len(prog))
	return nil
}
