package seccomp

import serrors "seccompbpf/errors"

// ArchName is the human-readable architecture identifier used at the CLI
// boundary and in profile files, generalizing the teacher's spec.Arch
// string constants (ArchX86_64, ArchAARCH64, ...) to the full set this
// compiler multiplexes over.
type ArchName string

const (
	ArchX86     ArchName = "x86"
	ArchX86_64  ArchName = "x86_64"
	ArchX32     ArchName = "x32"
	ArchARM     ArchName = "arm"
	ArchAARCH64 ArchName = "aarch64"
	ArchMIPS    ArchName = "mips"
	ArchMIPSEL  ArchName = "mipsel"
	ArchPPC64LE ArchName = "ppc64le"
	ArchS390X   ArchName = "s390x"
)

// Audit architecture tokens, matching linux/audit.h and the teacher's
// AUDIT_ARCH_* constants (extended to the rest of the supported set).
const (
	auditArchI386    = 0x40000003
	auditArchX86_64  = 0xc000003e
	auditArchX32     = 0xc0000003
	auditArchARM     = 0x40000028
	auditArchAARCH64 = 0xc00000b7
	auditArchMIPS    = 0x00000008
	auditArchMIPSEL  = 0x40000008
	auditArchPPC64LE = 0xc0000015
	auditArchS390X   = 0x80000016
)

// __AUDIT_ARCH_64BIT and __AUDIT_ARCH_LE, the flag bits folded into an
// audit arch token, per linux/audit.h.
const (
	auditArch64Bit = 0x80000000
	auditArchLE    = 0x40000000
)

// Arch is the architecture descriptor of spec.md §4.2: the audit token
// seccomp compares SECCOMP_DATA.arch against, the native word size (the
// backend splits every 64-bit argument into hi/lo 32-bit halves whatever
// this is), the byte order used to interpret loaded words, and the optional
// multiplex rewrite hook. The syscall numbers an architecture resolves
// names against live in archSyscalls (syscalls_table.go), keyed by Name.
type Arch struct {
	Name       ArchName
	AuditToken uint32
	WordSize   int // 32 or 64
	BigEndian  bool
	// Multiplex, when non-nil, short-circuits a syscall name to a stable
	// pseudo-number before the table is ever consulted (s390x's
	// socketcall multiplexer).
	Multiplex func(name string) (int32, bool)
}

var archTable = map[ArchName]Arch{
	ArchX86: {
		Name: ArchX86, AuditToken: auditArchI386, WordSize: 32, BigEndian: false,
	},
	ArchX86_64: {
		Name: ArchX86_64, AuditToken: auditArchX86_64, WordSize: 64, BigEndian: false,
	},
	ArchX32: {
		Name: ArchX32, AuditToken: auditArchX32, WordSize: 32, BigEndian: false,
	},
	ArchARM: {
		Name: ArchARM, AuditToken: auditArchARM, WordSize: 32, BigEndian: false,
	},
	ArchAARCH64: {
		Name: ArchAARCH64, AuditToken: auditArchAARCH64, WordSize: 64, BigEndian: false,
	},
	ArchMIPS: {
		Name: ArchMIPS, AuditToken: auditArchMIPS, WordSize: 32, BigEndian: true,
	},
	ArchMIPSEL: {
		Name: ArchMIPSEL, AuditToken: auditArchMIPSEL, WordSize: 32, BigEndian: false,
	},
	ArchPPC64LE: {
		Name: ArchPPC64LE, AuditToken: auditArchPPC64LE, WordSize: 64, BigEndian: false,
	},
	ArchS390X: {
		Name: ArchS390X, AuditToken: auditArchS390X, WordSize: 64, BigEndian: true,
		Multiplex: s390xSocketMultiplex,
	},
}

// LookupArch returns the descriptor for name, or an ErrUnknownArch.
func LookupArch(name ArchName) (Arch, error) {
	a, ok := archTable[name]
	if !ok {
		return Arch{}, serrors.WrapWithDetail(nil, serrors.ErrUsage, "lookup_arch", "unknown architecture: "+string(name))
	}
	return a, nil
}

// s390xMultiplexNames are the twenty socketcall syscalls s390x resolves to
// pseudo-numbers before ever consulting its table, grounded on
// s390x_syscall_resolve_name in arch-s390x-syscalls.c (the if/else-if
// chain at the top of that function, lines 503-542 of the reference).
var s390xMultiplexNames = []string{
	"accept", "accept4", "bind", "connect", "getpeername", "getsockname",
	"getsockopt", "listen", "recv", "recvfrom", "recvmsg", "recvmmsg",
	"send", "sendmsg", "sendmmsg", "sendto", "setsockopt", "shutdown",
	"socket", "socketpair",
}

func s390xSocketMultiplex(name string) (int32, bool) {
	for _, n := range s390xMultiplexNames {
		if n == name {
			// The name's canonical pseudo-number from the registry, the
			// same one every architecture lacking the name resolves to,
			// so ResolveNum maps it back to the name.
			return pseudoNumber(name)
		}
	}
	return 0, false
}
