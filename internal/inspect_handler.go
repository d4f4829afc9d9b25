package internal

import (
	"io"
	"os"

	"github.com/depressor/depressor/internal/compression"
	"github.com/depressor/depressor/internal/decompress"
	"github.com/depressor/depressor/internal/fsutil"
	"github.com/depressor/depressor/utility"
	"github.com/jedib0t/go-pretty/table"
	"github.com/pkg/errors"
)

// Inspection describes a compressed file without decoding its payload.
type Inspection struct {
	Path         string
	Extension    string
	HeaderSize   int
	PayloadSize  int64
	// Algorithm is empty when the payload starts with no known signature.
	Algorithm    string
	// RestoredPath is where decompression next to the input would write.
	RestoredPath string
}

func InspectFile(folder fsutil.DataFolder, path string) (*Inspection, error) {
	reader, err := folder.OpenReadonlyFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open '%s'", path)
	}
	defer utility.LoggedClose(reader, "failed to close inspected file")

	header, err := decompress.ReadHeader(reader)
	if err != nil {
		return nil, err
	}

	magic := make([]byte, compression.MaxMagicLen)
	n, err := io.ReadFull(reader, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.Wrapf(err, "failed to read payload of '%s'", path)
	}
	rest, err := io.Copy(io.Discard, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read payload of '%s'", path)
	}

	inspection := &Inspection{
		Path:         path,
		Extension:    header.Extension,
		HeaderSize:   header.Size(),
		PayloadSize:  int64(n) + rest,
		RestoredPath: header.OutputPath(utility.TrimFileExtension(path)),
	}
	if decompressor := compression.DetectDecompressor(magic[:n]); decompressor != nil {
		inspection.Algorithm = decompressor.AlgorithmName()
	}
	return inspection, nil
}

func DefaultHandleInspect(path string) {
	inspectFunc := func() (*Inspection, error) {
		return InspectFile(fsutil.NewDiskDataFolder(""), path)
	}
	writeFunc := func(inspection *Inspection) {
		WritePrettyInspection(inspection, os.Stdout)
	}
	HandleInspect(inspectFunc, writeFunc, DefaultLogging())
}

func HandleInspect(
	inspectFunc func() (*Inspection, error),
	writeInspectionFunc func(*Inspection),
	logging Logging,
) {
	inspection, err := inspectFunc()
	logging.ErrorLogger.FatalOnError(err)
	if err != nil {
		return
	}
	if inspection.Algorithm == "" {
		logging.InfoLogger.Printf("No known signature, decompression would fall back to %s",
			compression.DefaultDecompressor.AlgorithmName())
	}
	writeInspectionFunc(inspection)
}

func WritePrettyInspection(inspection *Inspection, output io.Writer) {
	writer := table.NewWriter()
	writer.SetOutputMirror(output)
	defer writer.Render()
	algorithm := inspection.Algorithm
	if algorithm == "" {
		algorithm = "unknown"
	}
	writer.AppendHeader(table.Row{"File", "Extension", "Header size", "Payload size", "Algorithm", "Restores to"})
	writer.AppendRow(table.Row{inspection.Path, inspection.Extension, inspection.HeaderSize,
		inspection.PayloadSize, algorithm, inspection.RestoredPath})
}
