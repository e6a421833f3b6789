package flyg

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CompressedExtension is the filename extension which selects the gzip
// decoding path. It is matched case-insensitively against the part of the
// filename after the last dot.
const CompressedExtension = ".gz"

// Loader reads flight recordings from files. The zero value is ready to use
// and has compression support enabled.
//
// Dispatch between the plain and the compressed path is done purely on the
// filename extension, not on the file content. A gzip file renamed to a
// non-reserved extension is decoded directly and fails with
// ErrFileFormatNotRecognized, not ErrDecompressionFailed.
type Loader struct {
	// DisableCompression turns the gzip path off. Files carrying the
	// compressed extension are then decoded directly and will normally
	// fail with ErrFileFormatNotRecognized.
	DisableCompression bool
}

// LoadFlightInformationFromFile reads the recording stored at path using a
// default Loader with compression support enabled.
func LoadFlightInformationFromFile(path string) (*FlightRecording, error) {
	var l Loader
	return l.Load(path)
}

// Load reads the recording stored at path. On failure it returns one of the
// three FormatError values; no partial result is ever returned.
func (l *Loader) Load(path string) (*FlightRecording, error) {
	if !l.DisableCompression && strings.EqualFold(filepath.Ext(path), CompressedExtension) {
		return l.loadCompressed(path)
	}
	return l.loadDirect(path)
}

func (l *Loader) loadDirect(path string) (*FlightRecording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrCouldNotOpenFile
	}
	defer f.Close()

	rec, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, ErrFileFormatNotRecognized
	}
	return rec, nil
}

func (l *Loader) loadCompressed(path string) (*FlightRecording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrCouldNotOpenFile
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, ErrDecompressionFailed
	}
	defer zr.Close()

	// Recordings are single-member gzip files.
	zr.Multistream(false)

	rec, err := decode(&gzipErrorTagger{r: zr})
	if err != nil {
		if errors.Is(err, errGzipRead) {
			return nil, ErrDecompressionFailed
		}
		return nil, ErrFileFormatNotRecognized
	}

	// The JSON decoder stops at the end of the document and never reads the
	// gzip trailer; drain the member so its checksum is verified.
	if _, err := io.Copy(io.Discard, zr); err != nil {
		return nil, ErrDecompressionFailed
	}

	return rec, nil
}

func decode(r io.Reader) (*FlightRecording, error) {
	var rec FlightRecording
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// errGzipRead tags read failures coming from the decompression layer.
var errGzipRead = errors.New("gzip read failed")

// gzipErrorTagger marks every non-EOF error returned by the decompression
// layer, so that a truncated or corrupted gzip member surfacing through the
// JSON decoder can be told apart from a JSON error on the same stream. A
// clean EOF passes through untouched.
type gzipErrorTagger struct {
	r io.Reader
}

func (t *gzipErrorTagger) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = fmt.Errorf("%w: %v", errGzipRead, err)
	}
	return n, err
}
