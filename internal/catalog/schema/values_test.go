package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfantasy/toolcat/internal/catalog/enum"
)

func TestToleranceRoundTrip(t *testing.T) {
	for _, field := range enum.ToleranceFields.Values() {
		for _, grade := range []string{"5", "7", "9", "12"} {
			tol, err := NewTolerance(grade, field)
			require.NoError(t, err)
			assert.Equal(t, field, tol.Field)
			assert.Equal(t, grade, tol.Grade)

			parsed, err := ParseTolerance(tol.String())
			require.NoError(t, err)
			assert.Equal(t, tol, parsed)
		}
	}
}

func TestParseToleranceRejectsMalformed(t *testing.T) {
	for _, s := range []string{"9", "H", "Q8", "H8x", "HH8"} {
		_, err := ParseTolerance(s)
		assert.Error(t, err, s)
	}

	tol, err := ParseTolerance("  ")
	require.NoError(t, err)
	assert.True(t, tol.IsZero())
	assert.Equal(t, "", tol.String())
}

func TestToleranceSetFromStringKeepsValueOnError(t *testing.T) {
	tol, err := ParseTolerance("H7")
	require.NoError(t, err)
	assert.Error(t, tol.SetFromString("W7"))
	assert.Equal(t, "H7", tol.String())

	require.NoError(t, tol.UnmarshalText([]byte("js9")))
	text, err := tol.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "js9", string(text))
}

func TestGabarits(t *testing.T) {
	a := AxialSizes{DiaMM: 10, LengthMM: 100}
	assert.Equal(t, 10000.0, a.GabaritVolume())
	assert.Equal(t, "Ø10×100", a.GabaritStr())

	p := PrismaticSizes{LengthMM: 140, WidthMM: 16, HeightMM: 25}
	assert.Equal(t, 56000.0, p.GabaritVolume())
	assert.Equal(t, "140×16×25", p.GabaritStr())
}

func TestBladeMaterialInfo(t *testing.T) {
	typ, ok := BladeMaterial{MatOfCuttingPart: enum.MaterialVK8}.TypeOfMat()
	require.True(t, ok)
	assert.Equal(t, enum.MaterialTypeHardAlloy, typ)

	typ, ok = BladeMaterial{MatOfCuttingPart: enum.MaterialR6M5}.TypeOfMat()
	require.True(t, ok)
	assert.Equal(t, enum.MaterialTypeHighSpeedSteel, typ)
	assert.NotEmpty(t, BladeMaterial{MatOfCuttingPart: enum.MaterialR6M5}.DescriptionType())

	_, ok = BladeMaterial{}.TypeOfMat()
	assert.False(t, ok)
}

func TestSetToleranceRejectsUnparseablePairs(t *testing.T) {
	drill, err := NewDrill("2300-0041", "ГОСТ 10902-77")
	require.NoError(t, err)
	require.NoError(t, drill.SetTolerance(Tolerance{Field: "H", Grade: "8"}))

	for _, bad := range []Tolerance{
		{Field: "H"},
		{Grade: "8"},
		{Field: "H", Grade: "+8"},
		{Field: "H", Grade: "1.5"},
	} {
		err := drill.SetTolerance(bad)
		assert.ErrorIs(t, err, ErrValidation, "%#v", bad)
		assert.Equal(t, "H8", drill.Tolerance().String())
	}

	require.NoError(t, drill.SetTolerance(Tolerance{}))
	require.NoError(t, drill.SetTolerance(Tolerance{Field: "js", Grade: "9"}))
	back, err := FromMap(drill.ToMap())
	require.NoError(t, err)
	assert.True(t, drill.Equal(back))
}
