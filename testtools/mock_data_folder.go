package testtools

import (
	"bytes"
	"io"
	"sort"
	"sync"

	"github.com/depressor/depressor/internal/fsutil"
)

// MockDataFolder keeps files in memory. Writes land in the stored file immediately,
// so a partially written output stays visible after a failed job as it would on disk.
type MockDataFolder struct {
	mutex sync.Mutex
	files map[string]*bytes.Buffer
}

func NewMockDataFolder() *MockDataFolder {
	return &MockDataFolder{files: make(map[string]*bytes.Buffer)}
}

func (folder *MockDataFolder) PutFile(filename string, content []byte) {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	folder.files[filename] = bytes.NewBuffer(append([]byte(nil), content...))
}

func (folder *MockDataFolder) Content(filename string) ([]byte, bool) {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	file, ok := folder.files[filename]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), file.Bytes()...), true
}

func (folder *MockDataFolder) FileNames() []string {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	names := make([]string, 0, len(folder.files))
	for name := range folder.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (folder *MockDataFolder) IsEmpty() bool {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	return len(folder.files) == 0
}

func (folder *MockDataFolder) FileExists(filename string) bool {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	_, ok := folder.files[filename]
	return ok
}

func (folder *MockDataFolder) DeleteFile(filename string) error {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	if _, ok := folder.files[filename]; !ok {
		return fsutil.NewNoSuchFileError(filename)
	}
	delete(folder.files, filename)
	return nil
}

func (folder *MockDataFolder) RenameFile(oldFileName string, newFileName string) error {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	file, ok := folder.files[oldFileName]
	if !ok {
		return fsutil.NewNoSuchFileError(oldFileName)
	}
	delete(folder.files, oldFileName)
	folder.files[newFileName] = file
	return nil
}

func (folder *MockDataFolder) OpenReadonlyFile(filename string) (io.ReadCloser, error) {
	content, ok := folder.Content(filename)
	if !ok {
		return nil, fsutil.NewNoSuchFileError(filename)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (folder *MockDataFolder) OpenWriteOnlyFile(filename string) (io.WriteCloser, error) {
	folder.mutex.Lock()
	defer folder.mutex.Unlock()
	file := bytes.NewBuffer(nil)
	folder.files[filename] = file
	return &mockFileWriter{folder: folder, file: file}, nil
}

type mockFileWriter struct {
	folder *MockDataFolder
	file   *bytes.Buffer
}

func (writer *mockFileWriter) Write(p []byte) (int, error) {
	writer.folder.mutex.Lock()
	defer writer.folder.mutex.Unlock()
	return writer.file.Write(p)
}

func (writer *mockFileWriter) Close() error {
	return nil
}
