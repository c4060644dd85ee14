package seccomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgCmp_Validate_Ok(t *testing.T) {
	cmps := []ArgCmp{
		EQ(0, 1), NE(1, 2), LT(2, 3), LE(3, 4), GT(4, 5), GE(5, 6),
		MaskedEQ(0, 0xff, 1),
	}
	for _, c := range cmps {
		require.NoError(t, c.Validate())
	}
}

func TestArgCmp_Validate_IndexOutOfRange(t *testing.T) {
	err := EQ(6, 1).Validate()
	assert.Error(t, err)
}

func TestArgCmp_Validate_UnknownOp(t *testing.T) {
	c := ArgCmp{Index: 0, Op: Op(99), Value: 1}
	assert.Error(t, c.Validate())
}

func TestOp_String(t *testing.T) {
	tests := map[Op]string{
		OpEqualTo:      "EQ",
		OpNotEqual:     "NE",
		OpLessThan:     "LT",
		OpLessEqual:    "LE",
		OpGreaterThan:  "GT",
		OpGreaterEqual: "GE",
		OpMaskedEqual:  "MASKED_EQ",
	}
	for op, want := range tests {
		assert.Equal(t, want, op.String())
	}
}
