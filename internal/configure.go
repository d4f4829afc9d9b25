package internal

import (
	"strconv"

	"github.com/depressor/depressor/internal/decompress"
	"github.com/depressor/depressor/internal/limiters"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/wal-g/tracelog"
	"golang.org/x/time/rate"
)

func Configure() {
	err := ConfigureLogging()
	if err != nil {
		tracelog.ErrorLogger.Println("Failed to configure logging.")
		tracelog.ErrorLogger.FatalError(err)
	}
	DumpSettings()
}

func ConfigureLogging() error {
	if logLevel, ok := GetSetting(LogLevelSetting); ok && logLevel != "" {
		return tracelog.UpdateLogLevel(logLevel)
	}
	return nil
}

// ConfigureDiskLimiter returns nil when no disk rate limit is configured.
func ConfigureDiskLimiter() (*rate.Limiter, error) {
	limitStr, ok := GetSetting(DiskRateLimitSetting)
	if !ok || limitStr == "" {
		return nil, nil
	}
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", DiskRateLimitSetting)
	}
	if limit <= 0 {
		return nil, errors.Errorf("%s must be positive, got %d", DiskRateLimitSetting, limit)
	}
	return limiters.NewDiskLimiter(limit), nil
}

// ConfigureJobConfig builds a decompression config from the current settings.
func ConfigureJobConfig() (decompress.Config, error) {
	config := decompress.DefaultConfig()
	config.Method = viper.GetString(MethodSetting)

	var err error
	if config.BufferSize, err = GetIntSettingDefault(BufferSizeSetting, config.BufferSize); err != nil {
		return decompress.Config{}, err
	}
	if config.Compression.Threads, err = GetIntSettingDefault(ThreadsSetting, config.Compression.Threads); err != nil {
		return decompress.Config{}, err
	}
	if config.Compression.BlockSize, err = GetIntSettingDefault(BlockSizeSetting, config.Compression.BlockSize); err != nil {
		return decompress.Config{}, err
	}
	if config.Compression.Preset, err = GetIntSettingDefault(PresetSetting, config.Compression.Preset); err != nil {
		return decompress.Config{}, err
	}
	if config.Atomic, err = GetBoolSettingDefault(AtomicOutputSetting, config.Atomic); err != nil {
		return decompress.Config{}, err
	}
	if config.AllowTruncated, err = GetBoolSettingDefault(AllowTruncatedSetting, config.AllowTruncated); err != nil {
		return decompress.Config{}, err
	}
	if config.Limiter, err = ConfigureDiskLimiter(); err != nil {
		return decompress.Config{}, err
	}
	return config, nil
}
