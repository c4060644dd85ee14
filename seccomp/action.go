package seccomp

import "fmt"

// ActionClass names the behavior class the kernel dispatches on when a rule
// matches; classToRet maps it onto the upper 16 bits of a seccomp return
// value.
type ActionClass uint8

const (
	// ActionKillProcess terminates the entire process immediately.
	ActionKillProcess ActionClass = iota
	// ActionKillThread terminates only the calling thread.
	ActionKillThread
	// ActionTrap sends SIGSYS to the calling thread.
	ActionTrap
	// ActionErrno fails the syscall, returning Data as errno.
	ActionErrno
	// ActionTrace notifies an attached ptracer, passing Data as a message.
	ActionTrace
	// ActionLog allows the syscall but logs it to the audit subsystem.
	ActionLog
	// ActionNotify forwards the syscall to a userspace notifier.
	ActionNotify
	// ActionAllow permits the syscall to run normally.
	ActionAllow
)

// String returns a human-readable action class name.
func (c ActionClass) String() string {
	switch c {
	case ActionKillProcess:
		return "KILL_PROCESS"
	case ActionKillThread:
		return "KILL_THREAD"
	case ActionTrap:
		return "TRAP"
	case ActionErrno:
		return "ERRNO"
	case ActionTrace:
		return "TRACE"
	case ActionLog:
		return "LOG"
	case ActionNotify:
		return "NOTIFY"
	case ActionAllow:
		return "ALLOW"
	default:
		return "UNKNOWN"
	}
}

// classToRet maps an ActionClass to the kernel's SECCOMP_RET_* high byte,
// grounded on the teacher's SECCOMP_RET_* constants and extended with
// NOTIFY (which the teacher never modeled).
var classToRet = map[ActionClass]uint32{
	ActionKillProcess: 0x80000000,
	ActionKillThread:  0x00000000,
	ActionTrap:        0x00030000,
	ActionErrno:       0x00050000,
	ActionTrace:       0x7ff00000,
	ActionLog:         0x7ffc0000,
	ActionNotify:      0x7fc00000,
	ActionAllow:       0x7fff0000,
}

// retToClass is the reverse of classToRet, built at init time.
var retToClass = func() map[uint32]ActionClass {
	m := make(map[uint32]ActionClass, len(classToRet))
	for c, r := range classToRet {
		m[r] = c
	}
	return m
}()

const (
	retActionMask = 0xffff0000
	retDataMask   = 0x0000ffff
)

// Action is a seccomp return value: an action class plus a 16-bit data
// payload (the errno for ActionErrno, the message for ActionTrace/Notify).
//
// This is the wire-encoding realization of spec.md's action taxonomy: the
// class in the upper 16 bits, 16-bit data in the low two bytes, matching the
// kernel's SECCOMP_RET_* layout the teacher's actionToRet table encodes.
type Action struct {
	Class ActionClass
	Data  uint16
}

// KillProcess returns an Action that terminates the whole process.
func KillProcess() Action { return Action{Class: ActionKillProcess} }

// KillThread returns an Action that terminates the calling thread.
func KillThread() Action { return Action{Class: ActionKillThread} }

// Trap returns an Action that raises SIGSYS in the calling thread.
func Trap() Action { return Action{Class: ActionTrap} }

// Errno returns an Action that fails the syscall with the given errno.
func Errno(errno uint16) Action { return Action{Class: ActionErrno, Data: errno} }

// Trace returns an Action that notifies an attached ptracer with msg.
func Trace(msg uint16) Action { return Action{Class: ActionTrace, Data: msg} }

// Log returns an Action that allows the syscall but audit-logs it.
func Log() Action { return Action{Class: ActionLog} }

// Notify returns an Action that forwards the syscall to a userspace
// notifier.
func Notify() Action { return Action{Class: ActionNotify} }

// Allow returns an Action that permits the syscall.
func Allow() Action { return Action{Class: ActionAllow} }

// Encode returns the 32-bit kernel return value for this action.
func (a Action) Encode() (uint32, error) {
	ret, ok := classToRet[a.Class]
	if !ok {
		return 0, fmt.Errorf("unknown action class %d", a.Class)
	}
	return ret | uint32(a.Data)&retDataMask, nil
}

// DecodeAction splits a 32-bit kernel return value back into an Action.
func DecodeAction(v uint32) (Action, bool) {
	class, ok := retToClass[v&retActionMask]
	if !ok {
		return Action{}, false
	}
	return Action{Class: class, Data: uint16(v & retDataMask)}, true
}

// String renders the action the way a pretty-printer names it, e.g.
// "ERRNO(1)" or "ALLOW".
func (a Action) String() string {
	switch a.Class {
	case ActionErrno:
		return fmt.Sprintf("ERRNO(%d)", a.Data)
	case ActionTrace:
		return fmt.Sprintf("TRACE(%d)", a.Data)
	case ActionNotify:
		if a.Data != 0 {
			return fmt.Sprintf("NOTIFY(%d)", a.Data)
		}
		return "NOTIFY"
	default:
		return a.Class.String()
	}
}
