package internal_test

import (
	"bytes"
	"testing"

	"github.com/depressor/depressor/internal"
	"github.com/depressor/depressor/testtools"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectFile(t *testing.T) {
	payload := testtools.Compress(t, "zstd", []byte("inspect me"))
	folder := testtools.NewMockDataFolder()
	folder.PutFile("data.dz", testtools.MakeCompressedFile(t, "json", payload))

	inspection, err := internal.InspectFile(folder, "data.dz")
	require.NoError(t, err)

	assert.Equal(t, internal.Inspection{
		Path:         "data.dz",
		Extension:    "json",
		HeaderSize:   5,
		PayloadSize:  int64(len(payload)),
		Algorithm:    "zstd",
		RestoredPath: "data.json",
	}, *inspection)
}

func TestInspectFile_UnknownSignature(t *testing.T) {
	folder := testtools.NewMockDataFolder()
	folder.PutFile("data.dz", testtools.MakeCompressedFile(t, "txt", []byte("raw")))

	inspection, err := internal.InspectFile(folder, "data.dz")
	require.NoError(t, err)

	assert.Equal(t, "", inspection.Algorithm)
	assert.Equal(t, int64(3), inspection.PayloadSize)
}

func TestInspectFile_Missing(t *testing.T) {
	_, err := internal.InspectFile(testtools.NewMockDataFolder(), "missing.dz")
	assert.Error(t, err)
}

func TestHandleInspect(t *testing.T) {
	inspection := &internal.Inspection{Path: "a.dz", Extension: "txt", HeaderSize: 4, PayloadSize: 10, Algorithm: "xz"}
	var written *internal.Inspection
	infoLogger, errorLogger := testtools.MockLoggers()

	internal.HandleInspect(
		func() (*internal.Inspection, error) { return inspection, nil },
		func(i *internal.Inspection) { written = i },
		internal.Logging{InfoLogger: infoLogger, ErrorLogger: errorLogger},
	)

	assert.Equal(t, inspection, written)
	assert.Equal(t, 0, infoLogger.Stats.PrintfCallsCount)
	assert.Equal(t, 0, errorLogger.Stats.FatalOnErrorCallsCount)
}

func TestHandleInspect_LogsError(t *testing.T) {
	failure := errors.New("broken header")
	writeCalls := 0
	infoLogger, errorLogger := testtools.MockLoggers()

	internal.HandleInspect(
		func() (*internal.Inspection, error) { return nil, failure },
		func(*internal.Inspection) { writeCalls++ },
		internal.Logging{InfoLogger: infoLogger, ErrorLogger: errorLogger},
	)

	assert.Equal(t, 1, errorLogger.Stats.FatalOnErrorCallsCount)
	assert.Equal(t, failure, errorLogger.Stats.Err)
	assert.Equal(t, 0, writeCalls)
}

func TestHandleInspect_UnknownSignature(t *testing.T) {
	infoLogger, errorLogger := testtools.MockLoggers()

	internal.HandleInspect(
		func() (*internal.Inspection, error) { return &internal.Inspection{Path: "a.dz"}, nil },
		func(*internal.Inspection) {},
		internal.Logging{InfoLogger: infoLogger, ErrorLogger: errorLogger},
	)

	assert.Equal(t, "No known signature, decompression would fall back to xz", infoLogger.Stats.LastMessage())
}

func TestWritePrettyInspection(t *testing.T) {
	var output bytes.Buffer

	internal.WritePrettyInspection(&internal.Inspection{
		Path: "a.dz", Extension: "txt", HeaderSize: 4, PayloadSize: 10,
	}, &output)

	assert.Contains(t, output.String(), "a.dz")
	assert.Contains(t, output.String(), "unknown")
}
