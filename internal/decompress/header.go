package decompress

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxExtensionLength is the largest extension a single length byte can describe.
const MaxExtensionLength = math.MaxUint8

// Header precedes the compressed payload: one length byte followed by that many extension bytes.
// The extension is not validated; it may be empty or contain path separators.
type Header struct {
	Extension string
}

// ReadHeader consumes exactly Size() bytes from reader.
func ReadHeader(reader io.Reader) (Header, error) {
	var length [1]byte
	if _, err := io.ReadFull(reader, length[:]); err != nil {
		return Header{}, newHeaderReadError(errors.Wrap(err, "failed to read extension length"))
	}
	extension := make([]byte, length[0])
	if _, err := io.ReadFull(reader, extension); err != nil {
		return Header{}, newHeaderReadError(errors.Wrapf(err, "failed to read %d byte extension", length[0]))
	}
	return Header{Extension: string(extension)}, nil
}

func (header Header) Size() int {
	return 1 + len(header.Extension)
}

func (header Header) MarshalBinary() ([]byte, error) {
	if len(header.Extension) > MaxExtensionLength {
		return nil, errors.Errorf("extension is %d bytes long, at most %d fit the header",
			len(header.Extension), MaxExtensionLength)
	}
	data := make([]byte, 0, header.Size())
	data = append(data, byte(len(header.Extension)))
	return append(data, header.Extension...), nil
}

// OutputPath joins base and the restored extension with a single dot.
func (header Header) OutputPath(base string) string {
	return base + "." + header.Extension
}
