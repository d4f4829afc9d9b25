package internal_test

import (
	"testing"

	"github.com/depressor/depressor/internal"
	"github.com/depressor/depressor/internal/decompress"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wal-g/tracelog"
)

func resetToDefaults() {
	viper.Reset()
	internal.InitConfig()
	internal.Configure()
}

func TestConfigureJobConfig_Defaults(t *testing.T) {
	resetToDefaults()

	config, err := internal.ConfigureJobConfig()
	require.NoError(t, err)

	assert.Equal(t, decompress.DefaultConfig(), config)
}

func TestConfigureJobConfig_FromSettings(t *testing.T) {
	resetToDefaults()
	defer resetToDefaults()
	viper.Set(internal.MethodSetting, "zstd")
	viper.Set(internal.BufferSizeSetting, "4096")
	viper.Set(internal.ThreadsSetting, "4")
	viper.Set(internal.PresetSetting, "9")
	viper.Set(internal.AtomicOutputSetting, "true")
	viper.Set(internal.AllowTruncatedSetting, "true")
	viper.Set(internal.DiskRateLimitSetting, "1048576")

	config, err := internal.ConfigureJobConfig()
	require.NoError(t, err)

	assert.Equal(t, "zstd", config.Method)
	assert.Equal(t, 4096, config.BufferSize)
	assert.Equal(t, 4, config.Compression.Threads)
	assert.Equal(t, 9, config.Compression.Preset)
	assert.True(t, config.Atomic)
	assert.True(t, config.AllowTruncated)
	require.NotNil(t, config.Limiter)
	assert.Equal(t, 1048576, config.Limiter.Burst())
}

func TestConfigureJobConfig_InvalidValues(t *testing.T) {
	settings := map[string]string{
		internal.BufferSizeSetting:     "big",
		internal.ThreadsSetting:        "many",
		internal.AtomicOutputSetting:   "sometimes",
		internal.AllowTruncatedSetting: "maybe",
		internal.DiskRateLimitSetting:  "-1",
	}
	for setting, value := range settings {
		resetToDefaults()
		viper.Set(setting, value)

		_, err := internal.ConfigureJobConfig()
		assert.Error(t, err, setting)
	}
	resetToDefaults()
}

func TestConfigureDiskLimiter_NotSet(t *testing.T) {
	resetToDefaults()

	limiter, err := internal.ConfigureDiskLimiter()
	require.NoError(t, err)
	assert.Nil(t, limiter)
}

func TestConfigureLogging_WhenLogLevelSettingIsNotSet(t *testing.T) {
	resetToDefaults()
	assert.NoError(t, internal.ConfigureLogging())
}

func TestConfigureLogging_WhenLogLevelSettingIsInvalid(t *testing.T) {
	resetToDefaults()
	defer resetToDefaults()
	viper.Set(internal.LogLevelSetting, "LOUD")

	assert.Error(t, internal.ConfigureLogging())
}

func TestConfigureLogging_Devel(t *testing.T) {
	resetToDefaults()
	defer func() {
		assert.NoError(t, tracelog.UpdateLogLevel(tracelog.NormalLogLevel))
		resetToDefaults()
	}()
	viper.Set(internal.LogLevelSetting, tracelog.DevelLogLevel)

	assert.NoError(t, internal.ConfigureLogging())
}
