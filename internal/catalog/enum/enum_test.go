package enum

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkRoundTrip[T ~string](t *testing.T, s *Set[T]) {
	t.Helper()
	for _, v := range s.Values() {
		got, err := s.FromValue(string(v))
		require.NoError(t, err, "%s: %q", s.Kind(), v)
		assert.Equal(t, v, got)
	}
	assert.Len(t, s.Names(), len(s.Values()))
	assert.Len(t, s.Items(), len(s.Values()))
	assert.Len(t, s.Dict(), len(s.Values()))
	assert.Len(t, s.DisplayNames(), len(s.Values()))
}

func TestFromValueRoundTrip(t *testing.T) {
	checkRoundTrip(t, Groups)
	checkRoundTrip(t, StandardPrefixes)
	checkRoundTrip(t, SpecialMarkings)
	checkRoundTrip(t, MillingCutterTypes)
	checkRoundTrip(t, CuttingPartTypes)
	checkRoundTrip(t, ToothTypes)
	checkRoundTrip(t, ToolHolderTypes)
	checkRoundTrip(t, LoadTypes)
	checkRoundTrip(t, AccuracyClasses)
	checkRoundTrip(t, Materials)
	checkRoundTrip(t, ToleranceFields)
}

func TestVocabularySizes(t *testing.T) {
	assert.Len(t, Groups.Values(), 7)
	assert.Len(t, StandardPrefixes.Values(), 4)
	assert.Len(t, MillingCutterTypes.Values(), 18)
	assert.Len(t, CuttingPartTypes.Values(), 3)
	assert.Len(t, ToothTypes.Values(), 2)
	assert.Len(t, ToolHolderTypes.Values(), 2)
	assert.Len(t, LoadTypes.Values(), 3)
	// 6 classes plus None
	assert.Len(t, AccuracyClasses.Values(), 7)
	// 14 grades plus None
	assert.Len(t, Materials.Values(), 15)
}

func TestFromValueInvalid(t *testing.T) {
	_, err := Groups.FromValue("Пила")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))

	var ive *InvalidValueError
	require.ErrorAs(t, err, &ive)
	assert.Equal(t, "Пила", ive.Value)
	assert.Contains(t, err.Error(), `invalid value "Пила" for tool group; expected one of {Инструмент, Резец, Фреза`)
}

func TestFromValueIdempotent(t *testing.T) {
	g, err := Groups.FromValue(string(GroupDrill))
	require.NoError(t, err)
	again, err := Groups.FromValue(g.String())
	require.NoError(t, err)
	assert.Equal(t, GroupDrill, again)
}

func TestFromName(t *testing.T) {
	g, err := Groups.FromName("MillingCutter")
	require.NoError(t, err)
	assert.Equal(t, GroupMillingCutter, g)

	_, err = Groups.FromName("Saw")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAccuracyClassAcceptsCyrillic(t *testing.T) {
	cases := map[string]AccuracyClass{
		"ААА": AccuracyAAA,
		"АА":  AccuracyAA,
		"А":   AccuracyA,
		"В":   AccuracyB,
		"С":   AccuracyC,
		"Д":   AccuracyD,
		"AAA": AccuracyAAA,
		"":    AccuracyNone,
	}
	for in, want := range cases {
		got, err := AccuracyClasses.FromValue(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestMaterialAcceptsLatinLookalikes(t *testing.T) {
	m, err := Materials.FromValue("P6M5")
	require.NoError(t, err)
	assert.Equal(t, MaterialR6M5, m)

	m, err = Materials.FromValue("T15K6")
	require.NoError(t, err)
	assert.Equal(t, MaterialT15K6, m)
}

func TestMaterialInfo(t *testing.T) {
	info, ok := MaterialInfo(MaterialR6M5)
	require.True(t, ok)
	assert.Equal(t, MaterialTypeHighSpeedSteel, info.Type)
	assert.Equal(t, "Быстрорежущая сталь", info.Description)

	info, ok = MaterialInfo(MaterialVK8)
	require.True(t, ok)
	assert.Equal(t, MaterialTypeHardAlloy, info.Type)

	_, ok = MaterialInfo(MaterialNone)
	assert.False(t, ok)

	for _, m := range Materials.Values() {
		if m == MaterialNone {
			continue
		}
		_, ok := MaterialInfo(m)
		assert.True(t, ok, "material %q has no classification", m)
	}
}

func TestStandardPrefix(t *testing.T) {
	p, ok := PrefixOf("ГОСТ 886-77")
	require.True(t, ok)
	assert.Equal(t, PrefixGOST, p)

	p, ok = PrefixOf("ОСТ 2И41-1-78")
	require.True(t, ok)
	assert.Equal(t, PrefixOST, p)

	assert.True(t, IsStandard("DIN 338-2003"))
	assert.False(t, IsStandard("ГОСТ 886"), "year suffix is required")
	assert.False(t, IsStandard("ТУ 2-035-1"), "unknown prefix")
}

func TestUnmarshalTextViaJSON(t *testing.T) {
	var payload struct {
		Type  MillingCutterType `json:"type"`
		Tooth ToothType         `json:"tooth"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Червячная","tooth":"Мелкий"}`), &payload))
	assert.Equal(t, CutterWorm, payload.Type)
	assert.Equal(t, ToothFine, payload.Tooth)

	err := json.Unmarshal([]byte(`{"type":"Ленточная"}`), &payload)
	assert.Error(t, err)
}

func TestSpecialMarkingNormalizesCase(t *testing.T) {
	m, err := SpecialMarkings.FromValue(" Специальная ")
	require.NoError(t, err)
	assert.Equal(t, SpecialFeminine, m)
}
