package funparams

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	p := Optional(Integer("limit"))

	t.Run("AbsentDeliversNil", func(t *testing.T) {
		var got any = "untouched"
		v, err := p.Parse(Bag{}, keep(&got))
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.Nil(t, got)
	})

	t.Run("PresentDelegates", func(t *testing.T) {
		v, err := p.Parse(Bag{"limit": "10"}, Value(passThrough))
		require.NoError(t, err)
		assert.Equal(t, int64(10), v)
	})

	t.Run("PresentButInvalidFails", func(t *testing.T) {
		_, err := p.Parse(Bag{"limit": "ten"}, Value(passThrough))
		requireValidationError(t, err, TypeInvalidType, "limit")
	})

	t.Run("PresentNilIsValidated", func(t *testing.T) {
		// explicit null is present, so the child runs and rejects it
		_, err := p.Parse(Bag{"limit": nil}, Value(passThrough))
		requireValidationError(t, err, TypeInvalidType, "limit")
	})
}

func TestNonEmpty(t *testing.T) {
	t.Run("EmptyString", func(t *testing.T) {
		_, err := NonEmpty(String("doc")).Parse(Bag{"doc": ""}, Value(passThrough))
		requireValidationError(t, err, TypeInvalidValue, "doc")
	})

	t.Run("EmptySequence", func(t *testing.T) {
		_, err := NonEmpty(Array("xs", Integer)).Parse(Bag{"xs": []any{}}, Value(passThrough))
		requireValidationError(t, err, TypeInvalidValue, "xs")
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := NonEmpty(String("doc")).Parse(Bag{}, Value(passThrough))
		requireValidationError(t, err, TypeMissingParameter, "doc")
	})

	t.Run("NonEmptyDelegates", func(t *testing.T) {
		v, err := NonEmpty(String("doc")).Parse(Bag{"doc": "x"}, Value(passThrough))
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})

	t.Run("ScalarIsNeverEmpty", func(t *testing.T) {
		// the raw check passes, then the child rejects the type
		_, err := NonEmpty(String("doc")).Parse(Bag{"doc": 5}, Value(passThrough))
		requireValidationError(t, err, TypeInvalidType, "doc")
	})
}

func TestOptionalNonEmptyString(t *testing.T) {
	p := Optional(NonEmpty(String("doc")))

	v, err := p.Parse(Bag{}, Value(passThrough))
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = p.Parse(Bag{"doc": ""}, Value(passThrough))
	requireValidationError(t, err, TypeInvalidValue, "doc")

	v, err = p.Parse(Bag{"doc": "x"}, Value(passThrough))
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestWithDefault(t *testing.T) {
	p := WithDefault("10", Integer("limit"))

	t.Run("SubstitutesExplicitNil", func(t *testing.T) {
		v, err := p.Parse(Bag{"limit": nil}, Value(passThrough))
		require.NoError(t, err)
		assert.Equal(t, int64(10), v)
	})

	t.Run("AbsenceIsLeftUntouched", func(t *testing.T) {
		_, err := p.Parse(Bag{}, Value(passThrough))
		requireValidationError(t, err, TypeMissingParameter, "limit")
	})

	t.Run("PresentValueIsNotReplaced", func(t *testing.T) {
		v, err := p.Parse(Bag{"limit": "3"}, Value(passThrough))
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)
	})

	t.Run("CallerBagIsNeverMutated", func(t *testing.T) {
		bag := Bag{"limit": nil}
		_, err := p.Parse(bag, Value(passThrough))
		require.NoError(t, err)
		v, ok := bag.Lookup("limit")
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

func TestMap(t *testing.T) {
	t.Run("TransformsSingleValue", func(t *testing.T) {
		p := Map(func(v any) any { return strings.ToUpper(v.(string)) }, String("name"))
		v, err := p.Parse(Bag{"name": "ada"}, Value(passThrough))
		require.NoError(t, err)
		assert.Equal(t, "ADA", v)
	})

	t.Run("FailurePropagatesUntransformed", func(t *testing.T) {
		p := Map(func(v any) any { return "never" }, String("name"))
		_, err := p.Parse(Bag{}, Value(passThrough))
		requireValidationError(t, err, TypeMissingParameter, "name")
	})

	t.Run("InheritsChildMetadata", func(t *testing.T) {
		p := Map(passThrough, String("name"))
		assert.Equal(t, []Symbol{"name"}, p.Params())
		assert.False(t, p.Multi())
	})

	t.Run("GroupedOverAggregateChild", func(t *testing.T) {
		inner := RequireAll(Integer("a"), Integer("b"))
		p := Map(func(v any) any {
			m := v.(map[Symbol]any)
			m["sum"] = m["a"].(int64) + m["b"].(int64)
			return m
		}, inner)
		assert.True(t, p.Multi())

		v, err := p.Parse(Bag{"a": "1", "b": "2"}, Grouped(func(m map[Symbol]any) any { return m }))
		require.NoError(t, err)
		assert.Equal(t, int64(3), v.(map[Symbol]any)["sum"])
	})

	t.Run("GroupedOverSingleChildWrapsTransformedValue", func(t *testing.T) {
		p := Map(func(v any) any { return v.(int64) * 2 }, Integer("n"))
		v, err := p.Parse(Bag{"n": "4"}, Grouped(func(m map[Symbol]any) any { return m }))
		require.NoError(t, err)
		assert.Equal(t, map[Symbol]any{"n": int64(8)}, v)
	})
}

func TestDecoratorConfigErrors(t *testing.T) {
	multi := RequireAll(Integer("a"), Integer("b"))

	assert.Panics(t, func() { Optional(nil) })
	assert.Panics(t, func() { Optional(multi) })
	assert.Panics(t, func() { NonEmpty(multi) })
	assert.Panics(t, func() { WithDefault(0, multi) })
	assert.Panics(t, func() { Map(nil, Integer("a")) })
	assert.Panics(t, func() { Map(passThrough, nil) })
}
