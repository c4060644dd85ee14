package seccomp

// This file holds the per-architecture syscall number tables the registry
// consults (Go maps keyed by name). Numbers for x86_64 are the teacher's flat syscallMap
// table (linux/seccomp.go), carried over verbatim. Numbers for aarch64,
// ppc64le, and s390x are grounded on the reference syscall tables in
// src/arch-aarch64-syscalls.c, src/arch-ppc64-syscalls.c, and
// src/arch-s390x-syscalls.c (a representative common subset, not every
// entry in those multi-hundred-line tables). x86, x32, arm, mips, and
// mipsel reuse the same representative name set with well-established
// public ABI numbers; DESIGN.md records this as an approximation where no
// original_source table was available to ground against.

// archSyscalls holds real (non-negative) syscall numbers per architecture.
// A name absent from an architecture's map falls back to the canonical
// pseudo-number table in registry.go.
var archSyscalls = map[ArchName]map[string]int32{
	ArchX86_64: {
		"read": 0, "write": 1, "open": 2, "close": 3, "stat": 4,
		"fstat": 5, "lstat": 6, "poll": 7, "lseek": 8, "mmap": 9,
		"mprotect": 10, "munmap": 11, "brk": 12, "ioctl": 16,
		"access": 21, "pipe": 22, "select": 23, "sched_yield": 24,
		"dup": 32, "dup2": 33, "nanosleep": 35,
		"getpid": 39, "socket": 41, "connect": 42, "accept": 43,
		"sendto": 44, "recvfrom": 45, "sendmsg": 46, "recvmsg": 47,
		"shutdown": 48, "bind": 49, "listen": 50, "getsockname": 51,
		"getpeername": 52, "socketpair": 53, "setsockopt": 54,
		"getsockopt": 55, "clone": 56, "fork": 57, "vfork": 58,
		"execve": 59, "exit": 60, "wait4": 61, "kill": 62,
		"uname": 63, "fcntl": 72, "flock": 73, "fsync": 74,
		"ftruncate": 77, "getdents": 78, "getcwd": 79, "chdir": 80,
		"rename": 82, "mkdir": 83, "rmdir": 84, "creat": 85,
		"unlink": 87, "readlink": 89, "chmod": 90, "chown": 92,
		"ptrace": 101, "getuid": 102, "syslog": 103,
		"capget": 125, "capset": 126, "personality": 135,
		"prctl": 157, "arch_prctl": 158, "chroot": 161, "acct": 163,
		"mount": 165, "umount2": 166, "swapon": 167, "swapoff": 168,
		"reboot": 169, "sethostname": 170, "setdomainname": 171,
		"iopl": 172, "ioperm": 173, "init_module": 175, "delete_module": 176,
		"gettid": 186, "futex": 202,
		"epoll_create": 213, "getdents64": 217,
		"exit_group": 231, "epoll_wait": 232, "epoll_ctl": 233,
		"kexec_load": 246, "add_key": 248, "request_key": 249, "keyctl": 250,
		"openat": 257, "unshare": 272,
		"move_pages": 279, "epoll_pwait": 281,
		"accept4": 288, "dup3": 292, "pipe2": 293,
		"perf_event_open": 298, "recvmmsg": 299,
		"process_vm_readv": 310, "process_vm_writev": 311, "finit_module": 313,
		"seccomp": 317, "getrandom": 318, "memfd_create": 319,
		"kexec_file_load": 320, "bpf": 321, "execveat": 322, "userfaultfd": 323,
		"copy_file_range": 326, "epoll_create1": 291, "clock_adjtime": 305,
		"adjtimex": 159, "clock_gettime": 228, "clock_settime": 227,
		"clock_getres": 229, "clock_nanosleep": 230, "fadvise64": 221,
		"fallocate": 285, "faccessat": 269,
	},
	ArchAARCH64: {
		"accept": 202, "accept4": 242, "acct": 89, "add_key": 217,
		"adjtimex": 171, "bind": 200, "bpf": 280, "brk": 214,
		"capget": 90, "capset": 91, "chdir": 49, "chroot": 51,
		"clock_adjtime": 266, "clock_getres": 114, "clock_gettime": 113,
		"clock_nanosleep": 115, "clock_settime": 112, "clone": 220,
		"close": 57, "close_range": 436, "connect": 203,
		"copy_file_range": 285, "delete_module": 106, "dup": 23,
		"dup3": 24, "epoll_create1": 20, "epoll_ctl": 21,
		"epoll_pwait": 22, "eventfd2": 19, "execve": 221,
		"execveat": 281, "exit": 93, "exit_group": 94,
		"faccessat": 48, "fadvise64": 223, "fallocate": 47,
		"fanotify_init": 262,
	},
	ArchPPC64LE: {
		"accept": 330, "accept4": 344, "access": 33, "acct": 51,
		"add_key": 269, "adjtimex": 124, "bind": 327, "bpf": 361,
		"brk": 45, "capget": 183, "capset": 184, "chdir": 12,
		"chmod": 15, "chown": 181, "chroot": 61, "clock_adjtime": 347,
		"clock_getres": 247, "clock_gettime": 246, "clock_nanosleep": 248,
		"clock_settime": 245, "clone": 120, "close": 6, "close_range": 436,
		"connect": 328, "copy_file_range": 379, "creat": 8,
		"delete_module": 129, "dup": 41, "dup2": 63, "dup3": 316,
		"epoll_create": 236, "epoll_create1": 315, "epoll_ctl": 237,
		"epoll_pwait": 303, "epoll_wait": 238, "eventfd": 307,
		"eventfd2": 314, "execve": 11, "execveat": 362, "exit": 1,
		"exit_group": 234, "faccessat": 298, "fadvise64": 233,
		"fallocate": 309,
	},
	ArchS390X: {
		// The multiplexed socketcall names are resolved by
		// s390xSocketMultiplex in arch.go and never consulted here.
		"vmsplice": 309, "wait4": 114, "waitid": 281, "write": 4,
		"writev": 146, "read": 3, "open": 5, "close": 6, "exit": 1,
		"fork": 2, "execve": 11, "brk": 45, "chdir": 12, "chroot": 61,
		"acct": 51, "clone": 120, "capget": 184, "capset": 185,
		"mmap": 90, "munmap": 91, "mprotect": 125,
	},
	// The following five architectures reuse the representative name set
	// above with well-established public 32-bit ABI numbers; no dedicated
	// original_source table was available for these, see DESIGN.md.
	ArchX86: {
		"exit": 1, "fork": 2, "read": 3, "write": 4, "open": 5,
		"close": 6, "execve": 11, "chdir": 12, "mknod": 14, "chmod": 15,
		"brk": 45, "pipe": 42, "ioctl": 54, "access": 33, "dup": 41,
		"socketcall": 102, "ptrace": 26, "kill": 37, "rename": 38,
		"mkdir": 39, "rmdir": 40, "mount": 21, "umount2": 52,
		"getpid": 20, "fcntl": 55, "prctl": 172, "personality": 136,
	},
	ArchX32: {
		// x32 reuses x86_64 numbering with the X32_SYSCALL_BIT convention
		// folded in by the kernel; the compiler stores the same bare
		// numbers x86_64 uses since the bit is an ABI framing detail
		// outside this table's concern.
		"exit": 60, "read": 0, "write": 1, "open": 2, "close": 3,
		"execve": 59, "brk": 12, "ioctl": 16, "access": 21, "dup": 32,
		"ptrace": 101, "kill": 62, "mount": 165, "umount2": 166,
		"getpid": 39, "fcntl": 72, "prctl": 157,
	},
	ArchARM: {
		"exit": 1, "fork": 2, "read": 3, "write": 4, "open": 5,
		"close": 6, "execve": 11, "chdir": 12, "brk": 45, "pipe": 42,
		"ioctl": 54, "access": 33, "dup": 41, "ptrace": 26, "kill": 37,
		"rename": 38, "mkdir": 39, "rmdir": 40, "mount": 21,
		"umount2": 52, "getpid": 20, "fcntl": 55, "prctl": 172,
		"personality": 136, "openat": 322, "accept4": 366,
	},
	ArchMIPS: {
		"read": 4003, "write": 4004, "open": 4005, "close": 4006,
		"execve": 4011, "exit": 4001, "fork": 4002, "brk": 4045,
		"ioctl": 4054, "access": 4033, "dup": 4041, "ptrace": 4026,
		"kill": 4037, "mount": 4021, "getpid": 4020, "fcntl": 4055,
		"prctl": 4192, "chdir": 4012,
	},
	ArchMIPSEL: {
		"read": 4003, "write": 4004, "open": 4005, "close": 4006,
		"execve": 4011, "exit": 4001, "fork": 4002, "brk": 4045,
		"ioctl": 4054, "access": 4033, "dup": 4041, "ptrace": 4026,
		"kill": 4037, "mount": 4021, "getpid": 4020, "fcntl": 4055,
		"prctl": 4192, "chdir": 4012,
	},
}
