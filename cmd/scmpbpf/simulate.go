package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	serrors "seccompbpf/errors"
	"seccompbpf/seccomp"
)

var (
	simFile    string
	simArch    string
	simSyscall int32
	simArgs    [6]uint64
	simVerbose bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a compiled BPF program against a synthetic syscall record",
	Long: `simulate loads a compiled BPF program and executes it against a
single synthetic syscall record, printing the resulting action.

Exit codes: 0 on a successful evaluation (action printed), EINVAL on a
usage error, EFAULT if the simulator hits an opcode no compiled program
should emit, ENOEXEC if the program reads out of bounds or falls off the
end without a terminal return.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simFile, "file", "f", "", "compiled BPF program file (required)")
	simulateCmd.Flags().StringVarP(&simArch, "arch", "a", string(seccomp.ArchX86_64), "architecture token of the synthetic record")
	simulateCmd.Flags().Int32VarP(&simSyscall, "syscall", "s", 0, "syscall number of the synthetic record")
	for i := range simArgs {
		name := fmt.Sprintf("%d", i)
		simulateCmd.Flags().Uint64VarP(&simArgs[i], name, name, 0, fmt.Sprintf("argument %d of the synthetic record", i))
	}
	simulateCmd.Flags().BoolVarP(&simVerbose, "verbose", "v", false, "print the resolved record before the action")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simFile == "" {
		fmt.Fprintln(os.Stderr, "simulate: -f is required")
		os.Exit(int(syscall.EINVAL))
	}

	f, err := os.Open(simFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(int(syscall.EINVAL))
	}
	defer f.Close()

	prog, err := seccomp.ReadFrom(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(int(syscall.EINVAL))
	}

	record := seccomp.SyscallRecord{
		Arch: seccomp.ArchName(simArch),
		NR:   simSyscall,
		Args: simArgs,
	}

	if simVerbose {
		fmt.Fprintf(os.Stderr, "record: arch=%s nr=%d args=%v\n", record.Arch, record.NR, record.Args)
	}

	act, err := seccomp.Simulate(prog, record)
	if err != nil {
		switch {
		case serrors.Is(err, serrors.ErrSimFault):
			fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
			os.Exit(int(syscall.EFAULT))
		case serrors.Is(err, serrors.ErrSimProgramError):
			fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
			os.Exit(int(syscall.ENOEXEC))
		default:
			fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
			os.Exit(int(syscall.EINVAL))
		}
	}

	fmt.Println(act.String())
	return nil
}
