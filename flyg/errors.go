package flyg

// FormatError classifies the ways loading a recorded flight can fail. The
// set is closed: a loader returns exactly one of the values below and never
// wraps the underlying cause (OS error codes, parser positions and the like
// are deliberately not exposed).
type FormatError string

func (e FormatError) Error() string { return string(e) }

const (
	// ErrCouldNotOpenFile means the file could not be opened for reading,
	// for whatever reason (missing, permissions, is a directory).
	ErrCouldNotOpenFile FormatError = "could not open the supplied file"

	// ErrFileFormatNotRecognized means the content of the supplied file
	// did not decode as a flight recording.
	ErrFileFormatNotRecognized FormatError = "content of supplied file is not recognized"

	// ErrDecompressionFailed means the compressed stream could not be set
	// up or failed while being read.
	ErrDecompressionFailed FormatError = "could not decompress the supplied file"
)
