package testtools

import (
	"io"
	"sync"

	"github.com/depressor/depressor/internal/fsutil"
)

// TrackingFolder counts the handles opened through it and can inject output failures.
type TrackingFolder struct {
	fsutil.DataFolder

	OpenWriteErr error
	// WriteErr is returned once more than WriteErrAfter bytes were written to one output.
	WriteErr      error
	WriteErrAfter int
	CloseWriteErr error
	RenameErr     error

	mutex       sync.Mutex
	openHandles int
	opened      int
	doubleClose int
}

func NewTrackingFolder(folder fsutil.DataFolder) *TrackingFolder {
	return &TrackingFolder{DataFolder: folder}
}

// OpenHandles is the number of handles opened and not yet closed.
func (folder *TrackingFolder) OpenHandles() int {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	return folder.openHandles
}

// Opened is the number of handles ever opened.
func (folder *TrackingFolder) Opened() int {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	return folder.opened
}

// DoubleCloses is the number of Close calls on already closed handles.
func (folder *TrackingFolder) DoubleCloses() int {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	return folder.doubleClose
}

func (folder *TrackingFolder) OpenReadonlyFile(filename string) (io.ReadCloser, error) {
	reader, err := folder.DataFolder.OpenReadonlyFile(filename)
	if err != nil {
		return nil, err
	}
	return &trackedReader{Reader: reader, handle: folder.track(reader)}, nil
}

func (folder *TrackingFolder) OpenWriteOnlyFile(filename string) (io.WriteCloser, error) {
	if folder.OpenWriteErr != nil {
		return nil, folder.OpenWriteErr
	}
	writer, err := folder.DataFolder.OpenWriteOnlyFile(filename)
	if err != nil {
		return nil, err
	}
	return &trackedWriter{writer: writer, folder: folder, handle: folder.track(writer)}, nil
}

func (folder *TrackingFolder) RenameFile(oldFileName string, newFileName string) error {
	if folder.RenameErr != nil {
		return folder.RenameErr
	}
	return folder.DataFolder.RenameFile(oldFileName, newFileName)
}

func (folder *TrackingFolder) track(closer io.Closer) *trackedHandle {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	folder.openHandles++
	folder.opened++
	return &trackedHandle{closer: closer, folder: folder}
}

type trackedHandle struct {
	closer io.Closer
	folder *TrackingFolder
	closed bool
}

func (handle *trackedHandle) Close() error {
	handle.folder.mutex.Lock()
	if handle.closed {
		handle.folder.doubleClose++
		handle.folder.mutex.Unlock()
		return nil
	}
	handle.closed = true
	handle.folder.openHandles--
	handle.folder.mutex.Unlock()
	return handle.closer.Close()
}

type trackedReader struct {
	io.Reader
	handle *trackedHandle
}

func (reader *trackedReader) Close() error {
	return reader.handle.Close()
}

type trackedWriter struct {
	writer  io.Writer
	folder  *TrackingFolder
	handle  *trackedHandle
	written int
}

func (writer *trackedWriter) Write(p []byte) (int, error) {
	if writer.folder.WriteErr != nil && writer.written+len(p) > writer.folder.WriteErrAfter {
		return 0, writer.folder.WriteErr
	}
	n, err := writer.writer.Write(p)
	writer.written += n
	return n, err
}

func (writer *trackedWriter) Close() error {
	err := writer.handle.Close()
	if err == nil && writer.folder.CloseWriteErr != nil {
		return writer.folder.CloseWriteErr
	}
	return err
}
