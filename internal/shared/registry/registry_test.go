package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryDefaultsAndReset(t *testing.T) {
	r := New(func() map[string]int {
		return map[string]int{"one": 1, "two": 2}
	})

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Has("one"))
	assert.Equal(t, []string{"one", "two"}, r.Names())

	r.Register("three", 3)
	assert.True(t, r.Unregister("one"))
	assert.False(t, r.Unregister("one"))

	v, ok := r.Get("three")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, map[string]int{"two": 2, "three": 3}, r.GetAll())

	r.ResetToDefaults()
	assert.Equal(t, map[string]int{"one": 1, "two": 2}, r.GetAll())
}

func TestRegistryWithoutDefaults(t *testing.T) {
	r := New[string](nil)
	assert.Equal(t, 0, r.Len())

	r.Register("a", "x")
	all := r.GetAll()
	all["b"] = "y"
	assert.False(t, r.Has("b"), "GetAll must return a copy")

	r.ResetToDefaults()
	assert.Equal(t, 0, r.Len())
}
