// Package gridmsg reads and writes the binary grid-message format: a file is
// a sequential concatenation of independently decodable messages, each
// self-containing its metadata and a packed row-major float64 grid.
//
// Message layout, all integers big-endian:
//
//	magic    [4]byte  "GMG1"
//	name     uint8 length + bytes (short field name)
//	levelTy  uint8 length + bytes (level type)
//	level    int32
//	rows     uint32
//	cols     uint32
//	values   rows*cols float64
package gridmsg

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/overcastwx/grib-remap/internal/grib"
)

var magic = [4]byte{'G', 'M', 'G', '1'}

// maxGridCells bounds a single message's payload (a global 0.25° grid is
// 721×1440 ≈ 1M cells; this leaves generous headroom while rejecting
// corrupted length fields before allocation).
const maxGridCells = 64 << 20

// ErrBadMagic reports a message that does not start with the format marker.
var ErrBadMagic = errors.New("gridmsg: bad magic")

// Decoder reads grid messages from a stream.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next decodes and returns the next message. It returns io.EOF at a clean end
// of stream; a stream that ends mid-message yields a wrapped
// io.ErrUnexpectedEOF.
func (d *Decoder) Next() (*grib.Record, error) {
	var got [4]byte
	if _, err := io.ReadFull(d.r, got[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("gridmsg: read magic: %w", err)
	}
	if got != magic {
		return nil, ErrBadMagic
	}

	name, err := d.readString()
	if err != nil {
		return nil, fmt.Errorf("gridmsg: read short name: %w", err)
	}
	levelType, err := d.readString()
	if err != nil {
		return nil, fmt.Errorf("gridmsg: read level type: %w", err)
	}

	var hdr struct {
		Level int32
		Rows  uint32
		Cols  uint32
	}
	if err := binary.Read(d.r, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("gridmsg: read header: %w", err)
	}
	if hdr.Rows == 0 || hdr.Cols == 0 {
		return nil, fmt.Errorf("gridmsg: empty grid (%dx%d)", hdr.Rows, hdr.Cols)
	}
	cells := uint64(hdr.Rows) * uint64(hdr.Cols)
	if cells > maxGridCells {
		return nil, fmt.Errorf("gridmsg: grid %dx%d exceeds %d cells", hdr.Rows, hdr.Cols, maxGridCells)
	}

	values := make([]float64, cells)
	if err := binary.Read(d.r, binary.BigEndian, values); err != nil {
		return nil, fmt.Errorf("gridmsg: read values: %w", err)
	}

	return &grib.Record{
		ShortName: name,
		LevelType: grib.LevelType(levelType),
		Level:     int(hdr.Level),
		Values:    mat.NewDense(int(hdr.Rows), int(hdr.Cols), values),
	}, nil
}

func (d *Decoder) readString() (string, error) {
	n, err := d.r.ReadByte()
	if err != nil {
		return "", noEOF(err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", noEOF(err)
	}
	return string(buf), nil
}

// noEOF converts a clean EOF into ErrUnexpectedEOF; once a message's magic
// has been consumed, any truncation is an error.
func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Encoder writes grid messages to a stream.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns an Encoder writing to w. Call Flush when done.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode appends one message for rec.
func (e *Encoder) Encode(rec *grib.Record) error {
	if rec.Values == nil {
		return fmt.Errorf("gridmsg: record %s has no values", rec)
	}
	rows, cols := rec.Values.Dims()
	if uint64(rows)*uint64(cols) > maxGridCells {
		return fmt.Errorf("gridmsg: grid %dx%d exceeds %d cells", rows, cols, maxGridCells)
	}

	if _, err := e.w.Write(magic[:]); err != nil {
		return err
	}
	if err := e.writeString(rec.ShortName); err != nil {
		return err
	}
	if err := e.writeString(string(rec.LevelType)); err != nil {
		return err
	}

	hdr := struct {
		Level int32
		Rows  uint32
		Cols  uint32
	}{int32(rec.Level), uint32(rows), uint32(cols)}
	if err := binary.Write(e.w, binary.BigEndian, hdr); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		if err := binary.Write(e.w, binary.BigEndian, rec.Values.RawRowView(i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeString(s string) error {
	if len(s) > 255 {
		return fmt.Errorf("gridmsg: string %q too long", s)
	}
	if err := e.w.WriteByte(byte(len(s))); err != nil {
		return err
	}
	_, err := e.w.WriteString(s)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// ReadFile decodes every message in the file at path, in file order. The file
// handle is held only for the duration of the call.
func ReadFile(path string) ([]*grib.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*grib.Record
	dec := NewDecoder(f)
	for {
		rec, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s message %d: %w", path, len(records)+1, err)
		}
		records = append(records, rec)
	}
}

// WriteFile encodes records, in order, to a new file at path.
func WriteFile(path string, records []*grib.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	enc := NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode %s: %w", rec, err)
		}
	}
	return enc.Flush()
}
