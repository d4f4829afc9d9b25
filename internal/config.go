package internal

import (
	"os"
	"os/user"
	"sort"
	"strconv"
	"strings"

	"github.com/depressor/depressor/internal/compression"
	"github.com/depressor/depressor/internal/decompress"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wal-g/tracelog"
)

const (
	ThreadsSetting         = "DEPRESSOR_THREADS"
	MethodSetting          = "DEPRESSOR_METHOD"
	BufferSizeSetting      = "DEPRESSOR_BUFFER_SIZE"
	BlockSizeSetting       = "DEPRESSOR_BLOCK_SIZE"
	PresetSetting          = "DEPRESSOR_PRESET"
	AtomicOutputSetting    = "DEPRESSOR_ATOMIC_OUTPUT"
	AllowTruncatedSetting  = "DEPRESSOR_ALLOW_TRUNCATED"
	DiskRateLimitSetting   = "DEPRESSOR_DISK_RATE_LIMIT"
	LogLevelSetting        = "DEPRESSOR_LOG_LEVEL"
	StatsdAddressSetting   = "DEPRESSOR_STATSD_ADDRESS"
	MetricsTextfileSetting = "DEPRESSOR_METRICS_TEXTFILE"
)

var (
	CfgFile string

	defaultConfigValues = map[string]string{
		ThreadsSetting:        "1",
		MethodSetting:         compression.AutoMethod,
		BufferSizeSetting:     strconv.Itoa(decompress.DefaultBufferSize),
		BlockSizeSetting:      "0",
		PresetSetting:         strconv.Itoa(compression.DefaultPreset),
		AtomicOutputSetting:   "false",
		AllowTruncatedSetting: "false",
		LogLevelSetting:       tracelog.NormalLogLevel,
	}

	AllowedSettings = map[string]bool{
		ThreadsSetting:         true,
		MethodSetting:          true,
		BufferSizeSetting:      true,
		BlockSizeSetting:       true,
		PresetSetting:          true,
		AtomicOutputSetting:    true,
		AllowTruncatedSetting:  true,
		DiskRateLimitSetting:   true,
		LogLevelSetting:        true,
		StatsdAddressSetting:   true,
		MetricsTextfileSetting: true,
	}
)

func isAllowedSetting(setting string, AllowedSettings map[string]bool) (exists bool) {
	_, exists = AllowedSettings[setting]
	return
}

// GetSetting extract setting by key if key is set, return empty string otherwise
func GetSetting(key string) (value string, ok bool) {
	if viper.IsSet(key) {
		return viper.GetString(key), true
	}
	return "", false
}

func GetBoolSettingDefault(key string, defaultValue bool) (bool, error) {
	value, ok := GetSetting(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(err, "failed to parse %s", key)
	}
	return result, nil
}

func GetIntSettingDefault(key string, defaultValue int) (int, error) {
	value, ok := GetSetting(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse %s", key)
	}
	return result, nil
}

// AddConfigFlags exposes every allowed setting as a persistent flag bound to viper.
func AddConfigFlags(Cmd *cobra.Command) {
	cfgFlags := &pflag.FlagSet{}
	for k := range AllowedSettings {
		flagName := toFlagName(k)
		cfgFlags.String(flagName, "", "can be set through this flag or "+k+" variable")
		_ = viper.BindPFlag(k, cfgFlags.Lookup(flagName))
	}
	Cmd.PersistentFlags().AddFlagSet(cfgFlags)
}

// InitConfig reads config file and ENV variables if set.
func InitConfig() {
	var globalViper = viper.GetViper()
	globalViper.AutomaticEnv() // read in environment variables that match
	SetDefaultValues(globalViper)
	ReadConfigFromFile(globalViper, CfgFile)
	CheckAllowedSettings(globalViper)
}

// ReadConfigFromFile read config to the viper instance
func ReadConfigFromFile(config *viper.Viper, configFile string) {
	if configFile != "" {
		config.SetConfigFile(configFile)
	} else {
		usr, err := user.Current()
		if err != nil {
			tracelog.WarningLogger.Printf("Failed to find home directory: %v", err)
			return
		}

		// Search config in home directory with name ".depressor" (without extension).
		config.AddConfigPath(usr.HomeDir)
		config.SetConfigName(".depressor")
	}

	// If a config file is found, read it in.
	err := config.ReadInConfig()
	if err == nil {
		tracelog.DebugLogger.Println("Using config file:", config.ConfigFileUsed())
	} else if config.ConfigFileUsed() != "" {
		// Config file is found, but parsing failed
		tracelog.WarningLogger.Printf("Failed to parse config file %s. %s.", config.ConfigFileUsed(), err)
	}
}

// SetDefaultValues set default settings to the viper instance
func SetDefaultValues(config *viper.Viper) {
	for setting, value := range defaultConfigValues {
		config.SetDefault(setting, value)
	}
}

// CheckAllowedSettings warnings if a viper instance's setting not allowed
func CheckAllowedSettings(config *viper.Viper) {
	for k := range config.AllSettings() {
		k = strings.ToUpper(k)
		if !isAllowedSetting(k, AllowedSettings) {
			tracelog.WarningLogger.Println(k + " is unknown")
		}
	}
}

// DumpSettings logs every setting that came from the environment.
func DumpSettings() {
	var keys []string
	for k := range AllowedSettings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if val, ok := os.LookupEnv(k); ok {
			tracelog.DebugLogger.Printf("\t%s=%s", k, val)
		}
	}
}

func toFlagName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}
