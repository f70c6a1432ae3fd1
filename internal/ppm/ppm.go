// Package ppm reads and writes plain-text (P3) portable pixmaps.
//
// The header is the magic "P3", the width, the height and the maximum
// channel value, which must be 255. Pixel triplets follow in row-major
// order. Tokens are separated by any whitespace and "#" starts a comment
// that runs to the end of the line. Channel values are kept as plain
// integers.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"seam-carver/internal/models"
)

const (
	Magic    = "P3"
	MaxValue = 255
)

var (
	ErrBadMagic          = errors.New("ppm: expected P3 magic")
	ErrBadHeader         = errors.New("ppm: malformed header")
	ErrBadMaxValue       = errors.New("ppm: max color value must be 255")
	ErrDimensionMismatch = errors.New("ppm: dimensions do not match")
	ErrTruncated         = errors.New("ppm: unexpected end of pixel data")
	ErrBadPixel          = errors.New("ppm: channel value out of range")
)

// Header is the parsed preamble of a P3 file.
type Header struct {
	Width    int
	Height   int
	MaxValue int
}

// Decode reads a complete P3 image from r.
func Decode(r io.Reader) (*models.Image, error) {
	t := newTokenizer(r)

	h, err := t.header()
	if err != nil {
		return nil, err
	}
	return t.pixels(h)
}

// DecodeSized is Decode with an additional check that the header declares
// exactly width×height.
func DecodeSized(r io.Reader, width, height int) (*models.Image, error) {
	t := newTokenizer(r)

	h, err := t.header()
	if err != nil {
		return nil, err
	}
	if h.Width != width {
		return nil, fmt.Errorf("%w: file width %d, expected %d", ErrDimensionMismatch, h.Width, width)
	}
	if h.Height != height {
		return nil, fmt.Errorf("%w: file height %d, expected %d", ErrDimensionMismatch, h.Height, height)
	}
	return t.pixels(h)
}

// DecodeHeader reads only the header from r.
func DecodeHeader(r io.Reader) (Header, error) {
	return newTokenizer(r).header()
}

// Encode writes img to w as P3, one text line per image row.
func Encode(w io.Writer, img *models.Image) error {
	if !img.Valid() {
		return fmt.Errorf("ppm: cannot encode %s image: %w", img, models.ErrInvalidDimensions)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", Magic, img.Width(), img.Height(), MaxValue); err != nil {
		return err
	}

	line := make([]byte, 0, img.Width()*12+1)
	for y := 0; y < img.Height(); y++ {
		line = line[:0]
		for _, p := range img.Row(y) {
			line = strconv.AppendInt(line, int64(p.R), 10)
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(p.G), 10)
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(p.B), 10)
			line = append(line, ' ')
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

type tokenizer struct {
	r   *bufio.Reader
	buf []byte
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{r: bufio.NewReader(r)}
}

func (t *tokenizer) header() (Header, error) {
	magic, err := t.next()
	if err != nil {
		return Header{}, fmt.Errorf("%w: failed to read file type: %v", ErrBadMagic, err)
	}
	if magic != Magic {
		return Header{}, fmt.Errorf("%w, got %q", ErrBadMagic, magic)
	}

	var h Header
	if h.Width, err = t.int(); err != nil {
		return Header{}, fmt.Errorf("%w: failed to read width: %v", ErrBadHeader, err)
	}
	if h.Height, err = t.int(); err != nil {
		return Header{}, fmt.Errorf("%w: failed to read height: %v", ErrBadHeader, err)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return Header{}, fmt.Errorf("%w: size %dx%d", ErrBadHeader, h.Width, h.Height)
	}

	if h.MaxValue, err = t.int(); err != nil {
		return Header{}, fmt.Errorf("%w: failed to read max color value: %v", ErrBadHeader, err)
	}
	if h.MaxValue != MaxValue {
		return Header{}, fmt.Errorf("%w, got %d", ErrBadMaxValue, h.MaxValue)
	}

	return h, nil
}

func (t *tokenizer) pixels(h Header) (*models.Image, error) {
	img, err := models.NewImage(h.Width, h.Height)
	if err != nil {
		return nil, err
	}

	for y := 0; y < h.Height; y++ {
		row := img.Row(y)
		for x := range row {
			p := &row[x]
			for _, c := range []*int{&p.R, &p.G, &p.B} {
				if *c, err = t.int(); err != nil {
					return nil, fmt.Errorf("%w at pixel (%d,%d): %v", ErrTruncated, x, y, err)
				}
				if *c < 0 || *c > h.MaxValue {
					return nil, fmt.Errorf("%w: %d at pixel (%d,%d), max %d", ErrBadPixel, *c, x, y, h.MaxValue)
				}
			}
		}
	}

	return img, nil
}

func (t *tokenizer) int() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

// next returns the next whitespace-delimited token, skipping comments.
func (t *tokenizer) next() (string, error) {
	t.buf = t.buf[:0]
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(t.buf) > 0 {
				return string(t.buf), nil
			}
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}

		switch {
		case c == '#' && len(t.buf) == 0:
			if _, err := t.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case isSpace(c):
			if len(t.buf) > 0 {
				return string(t.buf), nil
			}
		default:
			t.buf = append(t.buf, c)
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
