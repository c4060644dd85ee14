package seccomp

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/tidwall/jsonc"

	serrors "seccompbpf/errors"
)

// Profile is the on-disk policy document this compiler loads, the Go
// realization of spec.md §3's profile format, generalizing the teacher's
// spec.LinuxSeccomp (consumed as one field of a much larger OCI spec) into
// a small standalone document. Field names and JSON shape are carried over
// from LinuxSeccomp/LinuxSyscall/LinuxSeccompArg so existing OCI-style
// fragments are easy to adapt, but files are allowed jsonc comments and
// trailing commas, matching priuatus-fence's config-loading convention.
type Profile struct {
	DefaultAction string           `json:"defaultAction"`
	Architectures []string         `json:"architectures"`
	Syscalls      []ProfileSyscall `json:"syscalls,omitempty"`
	Priorities    map[string]int   `json:"priorities,omitempty"`
}

// ProfileSyscall is one syscalls[] entry: one action applied to every name
// in Names, each expanded into its own Rule at load time.
type ProfileSyscall struct {
	Names    []string     `json:"names"`
	Action   string       `json:"action"`
	ErrnoRet *uint16      `json:"errnoRet,omitempty"`
	TraceRet *uint16      `json:"traceRet,omitempty"`
	Args     []ProfileArg `json:"args,omitempty"`
	Exact    bool         `json:"exact,omitempty"`
}

// ProfileArg is one syscall argument comparator, matching the teacher's
// LinuxSeccompArg shape: ValueTwo doubles as the mask for masked-equality
// comparators, carried over from libseccomp's scmp_arg_cmp convention.
type ProfileArg struct {
	Index    uint8  `json:"index"`
	Op       string `json:"op"`
	Value    uint64 `json:"value"`
	ValueTwo uint64 `json:"valueTwo,omitempty"`
}

var actionNames = map[string]func(data uint16) Action{
	"SCMP_ACT_KILL":         func(uint16) Action { return KillProcess() },
	"SCMP_ACT_KILL_PROCESS": func(uint16) Action { return KillProcess() },
	"SCMP_ACT_KILL_THREAD":  func(uint16) Action { return KillThread() },
	"SCMP_ACT_TRAP":         func(uint16) Action { return Trap() },
	"SCMP_ACT_ERRNO":        func(d uint16) Action { return Errno(d) },
	"SCMP_ACT_TRACE":        func(d uint16) Action { return Trace(d) },
	"SCMP_ACT_LOG":          func(uint16) Action { return Log() },
	"SCMP_ACT_NOTIFY":       func(uint16) Action { return Notify() },
	"SCMP_ACT_ALLOW":        func(uint16) Action { return Allow() },
}

var opNames = map[string]Op{
	"SCMP_CMP_EQ":        OpEqualTo,
	"SCMP_CMP_NE":        OpNotEqual,
	"SCMP_CMP_LT":        OpLessThan,
	"SCMP_CMP_LE":        OpLessEqual,
	"SCMP_CMP_GT":        OpGreaterThan,
	"SCMP_CMP_GE":        OpGreaterEqual,
	"SCMP_CMP_MASKED_EQ": OpMaskedEqual,
}

// archNames maps the profile's arch string (either the teacher's
// SCMP_ARCH_* form or the bare ArchName) onto an ArchName.
var archNames = map[string]ArchName{
	"SCMP_ARCH_X86":     ArchX86,
	"SCMP_ARCH_X86_64":  ArchX86_64,
	"SCMP_ARCH_X32":     ArchX32,
	"SCMP_ARCH_ARM":     ArchARM,
	"SCMP_ARCH_AARCH64": ArchAARCH64,
	"SCMP_ARCH_MIPS":    ArchMIPS,
	"SCMP_ARCH_MIPSEL":  ArchMIPSEL,
	"SCMP_ARCH_PPC64LE": ArchPPC64LE,
	"SCMP_ARCH_S390X":   ArchS390X,
}

func parseAction(s string, errnoRet, traceRet *uint16) (Action, error) {
	ctor, ok := actionNames[strings.ToUpper(s)]
	if !ok {
		return Action{}, serrors.WrapWithDetail(nil, serrors.ErrUsage, "parse_action", "unknown action: "+s)
	}
	var data uint16
	switch strings.ToUpper(s) {
	case "SCMP_ACT_ERRNO":
		if errnoRet != nil {
			data = *errnoRet
		}
	case "SCMP_ACT_TRACE":
		if traceRet != nil {
			data = *traceRet
		}
	}
	return ctor(data), nil
}

func parseOp(s string) (Op, error) {
	op, ok := opNames[strings.ToUpper(s)]
	if !ok {
		return 0, serrors.WrapWithDetail(nil, serrors.ErrUsage, "parse_op", "unknown operator: "+s)
	}
	return op, nil
}

func parseArch(s string) (ArchName, error) {
	if a, ok := archNames[strings.ToUpper(s)]; ok {
		return a, nil
	}
	a := ArchName(strings.ToLower(s))
	if _, err := LookupArch(a); err != nil {
		return "", serrors.WrapWithDetail(nil, serrors.ErrUsage, "parse_arch", "unknown architecture: "+s)
	}
	return a, nil
}

// LoadProfile reads and parses a jsonc policy document from path, building
// a ready-to-compile Database. Comments and trailing commas are accepted,
// matching priuatus-fence's config.Load.
func LoadProfile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.Wrap(err, serrors.ErrUsage, "load_profile")
	}

	var p Profile
	if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
		return nil, serrors.Wrap(err, serrors.ErrUsage, "load_profile")
	}
	return p.Build()
}

// Build converts a parsed Profile into a Database, resolving every action,
// architecture, and operator name and expanding each ProfileSyscall's
// Names into one Rule per name.
func (p *Profile) Build() (*Database, error) {
	defAct, err := parseAction(p.DefaultAction, nil, nil)
	if err != nil {
		return nil, err
	}
	db := New(defAct)

	for _, archStr := range p.Architectures {
		arch, err := parseArch(archStr)
		if err != nil {
			return nil, err
		}
		if err := db.AddArch(arch); err != nil {
			return nil, err
		}
	}

	for _, sc := range p.Syscalls {
		act, err := parseAction(sc.Action, sc.ErrnoRet, sc.TraceRet)
		if err != nil {
			return nil, err
		}
		args := make([]ArgCmp, len(sc.Args))
		for i, pa := range sc.Args {
			op, err := parseOp(pa.Op)
			if err != nil {
				return nil, err
			}
			c := ArgCmp{Index: pa.Index, Op: op, Value: pa.Value}
			if op == OpMaskedEqual {
				c.Mask = pa.ValueTwo
			}
			args[i] = c
		}
		for _, name := range sc.Names {
			if sc.Exact {
				if err := db.RuleAddExact(act, name, args...); err != nil {
					return nil, err
				}
			} else {
				if err := db.RuleAdd(act, name, args...); err != nil {
					return nil, err
				}
			}
		}
	}

	for name, weight := range p.Priorities {
		if err := db.Priority(name, weight); err != nil {
			return nil, err
		}
	}

	return db, nil
}
