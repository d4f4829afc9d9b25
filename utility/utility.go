package utility

import (
	"io"
	"path"
	"strings"

	"github.com/wal-g/tracelog"
)

const (
	KiB = 1 << 10
	MiB = 1 << 20
)

// LoggedClose closes c and reports a failure to the error log instead of returning it.
func LoggedClose(c io.Closer, errmsg string) {
	err := c.Close()
	if errmsg == "" {
		errmsg = "Problem with closing object"
	}
	if err != nil {
		tracelog.ErrorLogger.Printf(errmsg+": %v", err)
	}
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func GetFileExtension(filePath string) string {
	ext := path.Ext(filePath)
	if ext != "" {
		ext = ext[1:]
	}
	return ext
}

func TrimFileExtension(filePath string) string {
	ext := GetFileExtension(filePath)
	if ext == "" {
		return filePath
	}
	return strings.TrimSuffix(filePath, "."+ext)
}
