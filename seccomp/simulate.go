package seccomp

import (
	serrors "seccompbpf/errors"
)

// SyscallRecord is the synthetic struct seccomp_data the simulator evaluates
// a program against: an architecture token, a syscall number, and up to six
// 64-bit arguments. This is the Go realization of tools/scmp_bpf_sim.c's
// command-line-constructed seccomp_data, generalized from that tool's fixed
// six -0..-5 flags into a struct field.
type SyscallRecord struct {
	Arch ArchName
	NR   int32
	Args [6]uint64
}

// bpfSyscallMax bounds the set of absolute-load offsets the simulator
// considers in range, matching scmp_bpf_sim.c's BPF_SYSCALL_MAX bounds
// check in bpf_execute's BPF_LD+BPF_W+BPF_ABS case (that check guards
// against a miscompiled program reading past struct seccomp_data).
const bpfSyscallMax = argsBase + 6*8

// Simulate interprets program against record and returns the resolved
// Action, the Go realization of tools/scmp_bpf_sim.c's bpf_execute: the
// same opcode switch (load, ALU OR/AND, JA, JEQ, JGT, JGE, RET), the same
// out-of-range load check, and the same "falling off the end without a
// RET is a program error" rule. An unsupported opcode reports
// serrors.ErrSimFault; an out-of-range load, a backward/out-of-range jump
// target, or falling off the end without a RET reports
// serrors.ErrSimProgramError.
func Simulate(program []Instruction, record SyscallRecord) (Action, error) {
	arch, err := LookupArch(record.Arch)
	if err != nil {
		return Action{}, err
	}

	var acc uint32
	ip := 0
	for {
		if ip < 0 || ip >= len(program) {
			return Action{}, serrors.ErrSimProgramError
		}
		ins := program[ip]

		switch ins.Code {
		case opLoadArchOrNR:
			v, ok := loadWord(arch, record, ins.K)
			if !ok {
				return Action{}, serrors.ErrSimProgramError
			}
			acc = v
			ip++

		case opALUOr:
			acc |= ins.K
			ip++

		case opALUAnd:
			acc &= ins.K
			ip++

		case opJumpAlways:
			ip += int(ins.K) + 1

		case opJumpEqual:
			if acc == ins.K {
				ip += int(ins.Jt) + 1
			} else {
				ip += int(ins.Jf) + 1
			}

		case opJumpGreater:
			if acc > ins.K {
				ip += int(ins.Jt) + 1
			} else {
				ip += int(ins.Jf) + 1
			}

		case opJumpGE:
			if acc >= ins.K {
				ip += int(ins.Jt) + 1
			} else {
				ip += int(ins.Jf) + 1
			}

		case opReturn:
			act, ok := DecodeAction(ins.K)
			if !ok {
				return Action{}, serrors.ErrSimProgramError
			}
			return act, nil

		default:
			return Action{}, serrors.ErrSimFault
		}
	}
}

// loadWord resolves a BPF_LD+BPF_W+BPF_ABS offset against record, the
// simulator's model of struct seccomp_data: offsetNR, offsetArch, and the
// six hi/lo argument halves (endian-aware, matching offsetArgLo/
// offsetArgHi). Any other offset is out of range.
func loadWord(arch Arch, record SyscallRecord, offset uint32) (uint32, bool) {
	if offset >= bpfSyscallMax {
		return 0, false
	}
	switch offset {
	case offsetNR:
		return uint32(record.NR), true
	case offsetArch:
		return arch.AuditToken, true
	}
	for i := uint8(0); i < 6; i++ {
		if offset == offsetArgLo(i, arch.BigEndian) {
			return uint32(record.Args[i]), true
		}
		if offset == offsetArgHi(i, arch.BigEndian) {
			return uint32(record.Args[i] >> 32), true
		}
	}
	return 0, false
}
