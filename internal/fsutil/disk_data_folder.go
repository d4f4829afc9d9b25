package fsutil

import (
	"io"
	"os"
	"path/filepath"
)

// DiskDataFolder resolves relative names against path. An empty path means the working directory,
// and absolute names are used as given.
type DiskDataFolder struct {
	path string
}

func NewDiskDataFolder(folderPath string) *DiskDataFolder {
	return &DiskDataFolder{folderPath}
}

func (folder *DiskDataFolder) resolve(filename string) string {
	if folder.path == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(folder.path, filename)
}

func (folder *DiskDataFolder) OpenReadonlyFile(filename string) (io.ReadCloser, error) {
	file, err := os.Open(folder.resolve(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNoSuchFileError(filename)
		}
		return nil, err
	}
	return file, nil
}

func (folder *DiskDataFolder) OpenWriteOnlyFile(filename string) (io.WriteCloser, error) {
	file, err := os.OpenFile(folder.resolve(filename), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (folder *DiskDataFolder) FileExists(filename string) bool {
	_, err := os.Stat(folder.resolve(filename))
	return !os.IsNotExist(err)
}

func (folder *DiskDataFolder) DeleteFile(filename string) error {
	return os.Remove(folder.resolve(filename))
}

func (folder *DiskDataFolder) RenameFile(oldFileName string, newFileName string) error {
	return os.Rename(folder.resolve(oldFileName), folder.resolve(newFileName))
}
