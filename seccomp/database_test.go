package seccomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_AddArch(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	assert.Equal(t, []ArchName{ArchX86_64}, db.Arches())
}

func TestDatabase_AddArch_Duplicate(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	assert.Error(t, db.AddArch(ArchX86_64))
}

func TestDatabase_AddArch_Unknown(t *testing.T) {
	db := New(Allow())
	assert.Error(t, db.AddArch("bogus"))
}

func TestDatabase_RemoveArch(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	require.NoError(t, db.RemoveArch(ArchX86_64))
	assert.Empty(t, db.Arches())
}

func TestDatabase_RemoveArch_NotPresent(t *testing.T) {
	db := New(Allow())
	assert.Error(t, db.RemoveArch(ArchX86_64))
}

func TestDatabase_RuleAdd_NoArches(t *testing.T) {
	db := New(Allow())
	err := db.RuleAdd(Errno(1), "open")
	assert.Error(t, err)
}

func TestDatabase_RuleAdd_UnknownSyscall(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	err := db.RuleAdd(Errno(1), "totally_fake_syscall")
	assert.Error(t, err)
}

func TestDatabase_RuleAdd_Basic(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	require.NoError(t, db.RuleAdd(Errno(1), "open"))
	require.Len(t, db.Rules(), 1)
	assert.Equal(t, "open", db.Rules()[0].Syscall)
}

func TestDatabase_RuleAdd_IdenticalIsNoop(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	require.NoError(t, db.RuleAdd(Errno(1), "open", EQ(0, 5)))
	require.NoError(t, db.RuleAdd(Errno(1), "open", EQ(0, 5)))
	assert.Len(t, db.Rules(), 1)
}

func TestDatabase_RuleAdd_ConflictRejected(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	require.NoError(t, db.RuleAdd(Errno(1), "open", EQ(0, 5)))
	err := db.RuleAdd(Trap(), "open", EQ(0, 5))
	assert.Error(t, err)
	assert.Len(t, db.Rules(), 1)
}

func TestDatabase_RuleAdd_AtomicAcrossArches(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	require.NoError(t, db.AddArch(ArchMIPS))
	// The name is in no architecture's table, so it has neither a real
	// number nor a pseudo-number anywhere: the call must fail and leave
	// no rule behind on either configured architecture.
	err := db.RuleAdd(Allow(), "totally_unregistered_name")
	assert.Error(t, err)
	assert.Empty(t, db.Rules())
}

func TestDatabase_RuleAddExact_AllowsDuplicates(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	require.NoError(t, db.RuleAddExact(Errno(1), "open", EQ(0, 5)))
	require.NoError(t, db.RuleAddExact(Trap(), "open", EQ(0, 5)))
	assert.Len(t, db.Rules(), 2)
}

func TestDatabase_Priority(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	require.NoError(t, db.Priority("read", 100))
}

func TestDatabase_Priority_UnknownSyscall(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	assert.Error(t, db.Priority("totally_fake_syscall", 100))
}

func TestDatabase_Reset(t *testing.T) {
	db := New(Allow())
	require.NoError(t, db.AddArch(ArchX86_64))
	require.NoError(t, db.RuleAdd(Errno(1), "open"))
	db.Reset(KillProcess())
	assert.Empty(t, db.Arches())
	assert.Empty(t, db.Rules())
}
