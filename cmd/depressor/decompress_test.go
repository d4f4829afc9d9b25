package depressor

import (
	"testing"

	"github.com/depressor/depressor/internal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideSettings_OnlyChangedFlags(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set(internal.MethodSetting, "zstd")

	flags := pflag.NewFlagSet("decompress", pflag.ContinueOnError)
	flags.Int(ThreadsFlag, 1, "")
	flags.String(MethodFlag, "auto", "")
	flags.Bool(AtomicFlag, false, "")
	require.NoError(t, flags.Parse([]string{"--threads=4", "--atomic"}))

	overrideSettings(flags)

	assert.Equal(t, 4, viper.GetInt(internal.ThreadsSetting))
	assert.True(t, viper.GetBool(internal.AtomicOutputSetting))
	assert.Equal(t, "zstd", viper.GetString(internal.MethodSetting))
}
