package export

import (
	"github.com/Faultbox/texfuse/pkg/diag"
)

// OutputMode selects what happens to produced pixel data.
type OutputMode int

const (
	// ModeWriteFiles writes images to the output directory as they are
	// produced. Cube detection runs against the written files.
	ModeWriteFiles OutputMode = iota
	// ModeAttach keeps composited bitmaps on the returned records for a
	// later packaging step. Cube is always false in this mode.
	ModeAttach
)

// Options configure one exporter instance. The mode is explicit state
// passed to every call that needs it; there is no process-wide switch.
type Options struct {
	// OutputDir receives copied, converted, and composited images.
	OutputDir string
	// Mode selects write-now versus buffered output.
	Mode OutputMode
	// CopyTextures gates all file I/O and pixel compositing. When false
	// the pipeline only produces descriptors.
	CopyTextures bool
}

// Exporter runs the texture pipeline for one export session.
type Exporter struct {
	opts Options
	sink *diag.Sink
}

// New creates an exporter reporting through the given sink.
func New(opts Options, sink *diag.Sink) *Exporter {
	return &Exporter{opts: opts, sink: sink}
}

// Options returns the exporter configuration.
func (e *Exporter) Options() Options { return e.opts }
