package main

import (
	"bytes"
	"io"
	"os"

	"github.com/intuitionamiga/six5go/memory"
	"github.com/pkg/errors"
)

// MAX_PADDED_IMAGE bounds a padded image to the 16-bit address space.
const MAX_PADDED_IMAGE = 0x10000

var ErrPadTooLarge = errors.New("hex2bin: padded image exceeds 64K")

// Converter turns monitor hexdump text into a binary image.
type Converter struct {
	// pad prefixes the image with zeros so it can be loaded at address 0.
	pad bool
	// fill is the byte used for padding.
	fill byte
}

// NewConverter creates a Converter with default settings.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert parses r and returns the image and the address its first byte
// belongs at. With padding on, the returned address is always 0.
func (c *Converter) Convert(r io.Reader) ([]byte, uint32, error) {
	start, data, err := memory.ParseHexdump(r)
	if err != nil {
		return nil, 0, err
	}
	if !c.pad || start == 0 {
		return data, start, nil
	}
	if uint64(start)+uint64(len(data)) > MAX_PADDED_IMAGE {
		return nil, 0, errors.Wrapf(ErrPadTooLarge, "start $%X", start)
	}
	image := make([]byte, 0, int(start)+len(data))
	image = append(image, bytes.Repeat([]byte{c.fill}, int(start))...)
	return append(image, data...), 0, nil
}

// ConvertFileFromPath reads and converts one hexdump file.
func (c *Converter) ConvertFileFromPath(path string) ([]byte, uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "hex2bin")
	}
	defer f.Close()
	image, start, err := c.Convert(f)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "hex2bin: %s", path)
	}
	return image, start, nil
}
