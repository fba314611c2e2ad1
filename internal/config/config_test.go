package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Il-Capitano/bozon-sub003/internal/config"
)

func TestParseOptGroup(t *testing.T) {
	cases := map[string]config.OptGroup{
		"0": config.OptO0, "1": config.OptO1, "2": config.OptO2,
		"3": config.OptO3, "s": config.OptOs, "z": config.OptOz,
	}
	for input, want := range cases {
		got, ok := config.ParseOptGroup(input)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := config.ParseOptGroup("4")
	assert.False(t, ok)
}

func TestOptGroupLevelAndSize(t *testing.T) {
	assert.Equal(t, 0, config.OptO0.Level())
	assert.Equal(t, 1, config.OptOs.Level())
	assert.True(t, config.OptOs.OptimiseForSize())
	assert.False(t, config.OptO2.OptimiseForSize())
}

func TestParseEmitType(t *testing.T) {
	got, ok := config.ParseEmitType("llvm-ir")
	assert.True(t, ok)
	assert.Equal(t, config.EmitLLVMIR, got)

	_, ok = config.ParseEmitType("bogus")
	assert.False(t, ok)
}

func TestOptionTableSetClear(t *testing.T) {
	opts := config.NewOptionTable()
	assert.False(t, opts.IsSet("feature_x"))

	opts.Set("feature_x", "on")
	assert.True(t, opts.IsSet("feature_x"))
	v, ok := opts.Value("feature_x")
	assert.True(t, ok)
	assert.Equal(t, "on", v)

	opts.Clear("feature_x")
	assert.False(t, opts.IsSet("feature_x"))
}

func TestConfigDefaults(t *testing.T) {
	c := config.New()
	assert.Equal(t, config.OptO0, c.OptGroup)
	assert.Equal(t, config.EmitObj, c.Emit)
	assert.False(t, c.IsAggressiveConstevalEnabled())
}
