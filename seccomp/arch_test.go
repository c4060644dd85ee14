package seccomp

import "testing"

// ============================================================================
// ARCHITECTURE LOOKUP TESTS
// ============================================================================

func TestLookupArch_ValidArches(t *testing.T) {
	tests := []struct {
		name     ArchName
		expected uint32
	}{
		{ArchX86_64, auditArchX86_64},
		{ArchX86, auditArchI386},
		{ArchAARCH64, auditArchAARCH64},
		{ArchARM, auditArchARM},
		{ArchS390X, auditArchS390X},
		{ArchPPC64LE, auditArchPPC64LE},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			a, err := LookupArch(tt.name)
			if err != nil {
				t.Fatalf("LookupArch(%s) failed: %v", tt.name, err)
			}
			if a.AuditToken != tt.expected {
				t.Errorf("AuditToken = 0x%x, want 0x%x", a.AuditToken, tt.expected)
			}
		})
	}
}

func TestLookupArch_Unknown(t *testing.T) {
	if _, err := LookupArch("bogus"); err == nil {
		t.Error("expected error for unknown architecture")
	}
}

func TestLookupArch_Endianness(t *testing.T) {
	tests := []struct {
		name ArchName
		want bool
	}{
		{ArchX86_64, false},
		{ArchMIPS, true},
		{ArchS390X, true},
		{ArchMIPSEL, false},
	}
	for _, tt := range tests {
		a, err := LookupArch(tt.name)
		if err != nil {
			t.Fatalf("LookupArch(%s) failed: %v", tt.name, err)
		}
		if a.BigEndian != tt.want {
			t.Errorf("%s BigEndian = %v, want %v", tt.name, a.BigEndian, tt.want)
		}
	}
}

// ============================================================================
// S390X SOCKETCALL MULTIPLEX TESTS
// ============================================================================

func TestS390xSocketMultiplex_KnownNames(t *testing.T) {
	for _, name := range []string{"socket", "bind", "accept", "sendto"} {
		num, ok := s390xSocketMultiplex(name)
		if !ok {
			t.Errorf("expected %s to multiplex", name)
			continue
		}
		if num >= 0 {
			t.Errorf("multiplexed number for %s should be negative, got %d", name, num)
		}
	}
}

func TestS390xSocketMultiplex_UnknownName(t *testing.T) {
	if _, ok := s390xSocketMultiplex("openat"); ok {
		t.Error("openat should not be multiplexed")
	}
}

func TestS390xSocketMultiplex_StableDistinctNumbers(t *testing.T) {
	seen := make(map[int32]string)
	for _, name := range s390xMultiplexNames {
		num, ok := s390xSocketMultiplex(name)
		if !ok {
			t.Fatalf("%s failed to multiplex", name)
		}
		if other, dup := seen[num]; dup {
			t.Errorf("%s and %s both multiplex to %d", name, other, num)
		}
		seen[num] = name
	}
}
