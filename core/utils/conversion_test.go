package utils_test

import (
	"testing"

	"library-compare/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 42, 42},
		{"Float", float64(1250), 1250},
		{"FloatTruncates", 12.9, 12},
		{"String", "17", 17},
		{"FloatString", "17.5", 17},
		{"Bytes", []byte("9"), 9},
		{"Garbage", "abc", 0},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"String", "abc", "abc"},
		{"WholeFloat", float64(1240440), "1240440"},
		{"LargeWholeFloat", float64(1207658924), "1207658924"},
		{"FractionFloat", 1.5, "1.5"},
		{"Int", 7, "7"},
		{"Nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ToString(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, utils.ToBool(true))
	assert.True(t, utils.ToBool("true"))
	assert.True(t, utils.ToBool("1"))
	assert.True(t, utils.ToBool(float64(1)))
	assert.False(t, utils.ToBool("no"))
	assert.False(t, utils.ToBool(nil))
}

func TestTruthy(t *testing.T) {
	assert.False(t, utils.Truthy(nil))
	assert.False(t, utils.Truthy(""))
	assert.False(t, utils.Truthy(float64(0)))
	assert.False(t, utils.Truthy(false))
	assert.True(t, utils.Truthy("x"))
	assert.True(t, utils.Truthy(float64(3)))
	assert.True(t, utils.Truthy(map[string]any{}))
}

func TestToStringSlice(t *testing.T) {
	t.Run("Mixed", func(t *testing.T) {
		got := utils.ToStringSlice([]any{"Action", "", float64(3), nil, map[string]any{"a": "b"}})
		assert.Equal(t, []string{"Action", "3"}, got)
	})

	t.Run("Strings", func(t *testing.T) {
		assert.Equal(t, []string{"RPG"}, utils.ToStringSlice([]string{"RPG"}))
	})

	t.Run("NotASlice", func(t *testing.T) {
		assert.Nil(t, utils.ToStringSlice("Action"))
	})
}

func TestToMap(t *testing.T) {
	m, ok := utils.ToMap(map[string]string{"en": "Hello"})
	assert.True(t, ok)
	assert.Equal(t, "Hello", m["en"])

	_, ok = utils.ToMap("Hello")
	assert.False(t, ok)
}
