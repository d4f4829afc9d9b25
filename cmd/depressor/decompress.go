package depressor

import (
	"github.com/depressor/depressor/internal"
	"github.com/depressor/depressor/internal/compression"
	"github.com/depressor/depressor/internal/decompress"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wal-g/tracelog"
)

const (
	DecompressShortDescription = "Decompresses a file and restores its original extension"
	DecompressLongDescription  = "Reads the extension stored in the header of input, decodes the payload " +
		"and writes it to output_base.<extension>."

	ThreadsFlag        = "threads"
	MethodFlag         = "method"
	BufferSizeFlag     = "buffer-size"
	AtomicFlag         = "atomic"
	AllowTruncatedFlag = "allow-truncated"
)

// flagSettings maps command flags to the settings they override.
var flagSettings = map[string]string{
	ThreadsFlag:        internal.ThreadsSetting,
	MethodFlag:         internal.MethodSetting,
	BufferSizeFlag:     internal.BufferSizeSetting,
	AtomicFlag:         internal.AtomicOutputSetting,
	AllowTruncatedFlag: internal.AllowTruncatedSetting,
}

// decompressCmd represents the decompress command
var decompressCmd = &cobra.Command{
	Use:   "decompress input output_base",
	Short: DecompressShortDescription,
	Long:  DecompressLongDescription,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		overrideSettings(cmd.Flags())
		threads, err := internal.GetIntSettingDefault(internal.ThreadsSetting, 1)
		tracelog.ErrorLogger.FatalOnError(err)

		err = internal.HandleDecompress(args[0], args[1], threads)
		internal.PublishMetrics()
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func overrideSettings(flags *pflag.FlagSet) {
	for flagName, setting := range flagSettings {
		if flags.Changed(flagName) {
			viper.Set(setting, flags.Lookup(flagName).Value.String())
		}
	}
}

func init() {
	Cmd.AddCommand(decompressCmd)

	decompressCmd.Flags().Int(ThreadsFlag, 1, "Decoder parallelism hint, ignored by sequential engines")
	decompressCmd.Flags().String(MethodFlag, compression.AutoMethod,
		"Decompression method, one of auto, xz, lzma, zstd, gzip, lz4, brotli, snappy")
	decompressCmd.Flags().Int(BufferSizeFlag, decompress.DefaultBufferSize, "Size of the input and output buffers")
	decompressCmd.Flags().Bool(AtomicFlag, false, "Write to a temporary file and rename it on success")
	decompressCmd.Flags().Bool(AllowTruncatedFlag, false, "Keep the decoded data of a stream that ends without its end marker")
}
