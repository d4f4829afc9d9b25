package utility_test

import (
	"errors"
	"testing"

	"github.com/depressor/depressor/utility"
	"github.com/stretchr/testify/assert"
)

type failingCloser struct {
	closed int
}

func (c *failingCloser) Close() error {
	c.closed++
	return errors.New("close failed")
}

func TestLoggedClose_ClosesOnceAndSwallowsError(t *testing.T) {
	closer := &failingCloser{}
	utility.LoggedClose(closer, "")
	assert.Equal(t, 1, closer.closed)
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, utility.Min(1, 2))
	assert.Equal(t, 2, utility.Max(1, 2))
	assert.Equal(t, -1, utility.Min(-1, -1))
}

func TestGetFileExtension(t *testing.T) {
	assert.Equal(t, "xz", utility.GetFileExtension("archive.txt.xz"))
	assert.Equal(t, "", utility.GetFileExtension("archive"))
	assert.Equal(t, "", utility.GetFileExtension("archive."))
}

func TestTrimFileExtension(t *testing.T) {
	assert.Equal(t, "archive.txt", utility.TrimFileExtension("archive.txt.xz"))
	assert.Equal(t, "archive", utility.TrimFileExtension("archive"))
	assert.Equal(t, "dir/report", utility.TrimFileExtension("dir/report.dep"))
}
