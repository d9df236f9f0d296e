package funparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBag_Lookup(t *testing.T) {
	t.Run("SymbolicKey", func(t *testing.T) {
		bag := Bag{Symbol("id"): "42"}
		v, ok := bag.Lookup("id")
		assert.True(t, ok)
		assert.Equal(t, "42", v)
	})

	t.Run("TextualKey", func(t *testing.T) {
		bag := Bag{"id": "42"}
		v, ok := bag.Lookup("id")
		assert.True(t, ok)
		assert.Equal(t, "42", v)
	})

	t.Run("SymbolicWinsOverTextual", func(t *testing.T) {
		bag := Bag{Symbol("id"): "route", "id": "body"}
		v, ok := bag.Lookup("id")
		assert.True(t, ok)
		assert.Equal(t, "route", v)
	})

	t.Run("Absent", func(t *testing.T) {
		bag := Bag{"other": 1}
		v, ok := bag.Lookup("id")
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("ExplicitNilIsPresent", func(t *testing.T) {
		bag := Bag{"id": nil}
		v, ok := bag.Lookup("id")
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

func TestBag_CloneDoesNotShareStorage(t *testing.T) {
	bag := Bag{"a": 1}
	patched := bag.clone()
	patched["a"] = 2
	patched["b"] = 3

	assert.Equal(t, 1, bag["a"])
	_, ok := bag["b"]
	assert.False(t, ok)
}
