// Package gdml writes tessellated scenes as GDML documents.
//
// A Writer session has exactly one legal call order:
//
//	WriteIntro, AddSolid (any number of times), WriteExtro
//
// Calling an operation out of order panics with a StateError. I/O failures
// are returned as *WriteError and stick to the session.
package gdml

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chazu/gdmlexport/pkg/bounds"
	"github.com/chazu/gdmlexport/pkg/kernel"
	"github.com/sirupsen/logrus"
)

// DefaultMargin is the padding in mm added around the scene on every axis
// of the world box.
const DefaultMargin = 5.0

// DefaultPrecision selects the shortest decimal text that reads back as the
// same float64.
const DefaultPrecision = -1

// LegacyPrecision reproduces six-decimal fixed output.
const LegacyPrecision = 6

// SchemaLocation is the GDML schema referenced by the document header.
const SchemaLocation = "http://service-spi.web.cern.ch/service-spi/app/releases/GDML/GDML_3_0_0/schema/gdml.xsd"

// State is the position of a session in its call sequence.
type State int

const (
	StateCreated State = iota
	StateIntroWritten
	StateBodyWritten
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateIntroWritten:
		return "intro-written"
	case StateBodyWritten:
		return "body-written"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger for per-solid diagnostics and warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Writer) {
		w.log = l
	}
}

// WithPrecision sets the number of decimals for coordinates and sizes.
// Negative values select DefaultPrecision.
func WithPrecision(digits int) Option {
	return func(w *Writer) {
		if digits < 0 {
			digits = DefaultPrecision
		}
		w.precision = digits
	}
}

// WithMargin sets the world box padding in mm.
func WithMargin(mm float64) Option {
	return func(w *Writer) {
		w.margin = mm
	}
}

// WithSchema overrides the schema location in the document header.
func WithSchema(url string) Option {
	return func(w *Writer) {
		w.schema = url
	}
}

// entry is one added solid, as referenced by the structure section.
type entry struct {
	name     string // sanitized
	material string // resolved
}

// Writer is one GDML output session. It is not safe for concurrent use.
type Writer struct {
	out    *bufio.Writer
	closer io.Closer
	state  State
	err    error

	log       logrus.FieldLogger
	precision int
	margin    float64
	schema    string

	bounds  bounds.Accumulator
	entries []entry
	names   map[string]bool
}

// NewWriter starts a session writing to w. The caller keeps ownership of w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	gw := &Writer{
		out:       bufio.NewWriter(w),
		log:       discard,
		precision: DefaultPrecision,
		margin:    DefaultMargin,
		schema:    SchemaLocation,
		names:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(gw)
	}
	return gw
}

// Create opens path for writing and starts a session that owns the file.
// The file is closed by WriteExtro or Abandon.
func Create(path string, opts ...Option) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &WriteError{Op: "create", Err: err}
	}
	w := NewWriter(f, opts...)
	w.closer = f
	return w, nil
}

// State returns the session state.
func (w *Writer) State() State {
	return w.state
}

// Err returns the sticky I/O error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Count returns the number of solids added so far.
func (w *Writer) Count() int {
	return len(w.entries)
}

// Bounds returns the scene box accumulated so far.
func (w *Writer) Bounds() (bounds.Box, error) {
	return w.bounds.Get()
}

// require panics unless the session is in one of the allowed states.
func (w *Writer) require(op string, allowed ...State) {
	for _, s := range allowed {
		if w.state == s {
			return
		}
	}
	panic(StateError{Op: op, State: w.state})
}

// printf writes formatted text; errors surface at the next flush.
func (w *Writer) printf(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

// flush pushes buffered output and records the first failure.
func (w *Writer) flush(op string) error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		w.err = &WriteError{Op: op, Err: err}
	}
	return w.err
}

// num formats a length in the configured precision.
func (w *Writer) num(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', w.precision, 64)
}

// WriteIntro emits the document header and the material table. It must be
// called first, exactly once.
func (w *Writer) WriteIntro() error {
	w.require("WriteIntro", StateCreated)
	w.state = StateIntroWritten

	w.printf("<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n")
	w.printf("<gdml xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\" xsi:noNamespaceSchemaLocation=\"%s\">\n", w.schema)

	w.printf("  <materials>\n")
	for _, m := range materialTable {
		w.printf("    <material Z=\"%d\" name=\"%s\">\n", m.Z, m.Name)
		w.printf("      <atom unit=\"g/mole\" value=\"%s\"/>\n", m.Atom)
		w.printf("      <D value=\"%s\"/>\n", m.Density)
		w.printf("    </material>\n")
	}
	w.printf("  </materials>\n")

	return w.flush("write intro")
}

// AddSolid emits the vertex definitions and the tessellated solid for one
// mesh and records the solid for the structure section. The name is
// sanitized, then rejected if it is empty, reserved, or already used;
// nothing is written for a rejected solid. An unknown or empty material
// falls back to DefaultMaterial. The scene bounds are widened by the
// solid's native bounding box, or by the mesh extent when solid is nil. A
// solid with no extent is recorded but leaves the bounds unchanged.
func (w *Writer) AddSolid(solid kernel.Solid, mesh *kernel.Mesh, name, material string) error {
	w.require("AddSolid", StateIntroWritten, StateBodyWritten)
	if w.err != nil {
		return w.err
	}
	if mesh == nil {
		return ErrNilMesh
	}

	clean := Sanitize(name)
	if err := CheckName(clean); err != nil {
		return err
	}
	if w.names[clean] {
		return fmt.Errorf("%w: %q", ErrDuplicateName, clean)
	}

	resolved, ok := ResolveMaterial(material)
	if !ok {
		l := w.log.WithFields(logrus.Fields{
			"solid":    clean,
			"material": material,
			"fallback": resolved,
		})
		if material == "" {
			l.Debug("no material, using default")
		} else {
			l.Warn("unknown material, using default")
		}
	}

	w.printf("  <define>\n")
	for i, v := range mesh.Vertices {
		w.printf("    <position name=\"%s%s-%d\" x=\"%s\" y=\"%s\" z=\"%s\" unit=\"mm\"/>\n",
			PositionPrefix, clean, i, w.num(v[0]), w.num(v[1]), w.num(v[2]))
	}
	w.printf("  </define>\n")

	w.printf("  <solids>\n")
	w.printf("    <tessellated name=\"%s%s\">\n", TessellatedPrefix, clean)
	for _, t := range mesh.Triangles {
		w.printf("      <triangular vertex1=\"%s%s-%d\" vertex2=\"%s%s-%d\" vertex3=\"%s%s-%d\" type=\"ABSOLUTE\"/>\n",
			PositionPrefix, clean, t[0], PositionPrefix, clean, t[1], PositionPrefix, clean, t[2])
	}
	w.printf("    </tessellated>\n")
	w.printf("  </solids>\n")

	w.state = StateBodyWritten
	w.names[clean] = true
	w.entries = append(w.entries, entry{name: clean, material: resolved})
	switch {
	case solid != nil:
		w.bounds.Add(solid)
	case len(mesh.Vertices) > 0:
		w.bounds.AddBox(meshBox(mesh))
	}

	w.log.WithFields(logrus.Fields{
		"solid":     clean,
		"vertices":  mesh.VertexCount(),
		"triangles": mesh.TriangleCount(),
	}).Info("solid written")

	return w.flush("add solid " + clean)
}

func meshBox(m *kernel.Mesh) bounds.Box {
	b := bounds.Box{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b = b.Union(bounds.Box{Min: v, Max: v})
	}
	return b
}

// WriteExtro emits the world box, the structure section and the setup
// record, then ends the document and closes an owned output file. It fails
// with ErrEmptyScene, writing nothing, when the scene has no extent.
func (w *Writer) WriteExtro() error {
	w.require("WriteExtro", StateIntroWritten, StateBodyWritten)
	if w.err != nil {
		return w.err
	}
	box, err := w.bounds.Get()
	if err != nil || len(w.entries) == 0 {
		return ErrEmptyScene
	}

	world := box.Grow(w.margin)
	center := world.Center()
	size := world.Size()

	w.printf("  <define>\n")
	w.printf("    <position name=\"%s\" x=\"%s\" y=\"%s\" z=\"%s\" unit=\"mm\"/>\n",
		CenterName, w.num(-center[0]), w.num(-center[1]), w.num(-center[2]))
	w.printf("  </define>\n")

	w.printf("  <solids>\n")
	w.printf("    <box name=\"%s\" x=\"%s\" y=\"%s\" z=\"%s\" lunit=\"mm\"/>\n",
		WorldBoxName, w.num(size[0]), w.num(size[1]), w.num(size[2]))
	w.printf("  </solids>\n")

	w.printf("  <structure>\n")
	for _, e := range w.entries {
		w.printf("    <volume name=\"%s%s\">\n", VolumePrefix, e.name)
		w.printf("      <materialref ref=\"%s\"/>\n", e.material)
		w.printf("      <solidref ref=\"%s%s\"/>\n", TessellatedPrefix, e.name)
		w.printf("    </volume>\n")
	}
	w.printf("    <volume name=\"%s\">\n", WorldName)
	w.printf("      <materialref ref=\"%s\"/>\n", DefaultMaterial())
	w.printf("      <solidref ref=\"%s\"/>\n", WorldBoxName)
	for _, e := range w.entries {
		w.printf("      <physvol name=\"%s%s\">\n", PhysvolPrefix, e.name)
		w.printf("        <volumeref ref=\"%s%s\"/>\n", VolumePrefix, e.name)
		w.printf("        <positionref ref=\"%s\"/>\n", CenterName)
		w.printf("      </physvol>\n")
	}
	w.printf("    </volume>\n")
	w.printf("  </structure>\n")

	w.printf("  <setup name=\"Default\" version=\"1.0\">\n")
	w.printf("    <world ref=\"%s\"/>\n", WorldName)
	w.printf("  </setup>\n")
	w.printf("</gdml>\n")

	w.state = StateClosed
	flushErr := w.flush("write extro")
	if err := w.closeOwned(); err != nil && flushErr == nil {
		w.err = &WriteError{Op: "close", Err: err}
		return w.err
	}
	return flushErr
}

// Abandon ends the session without completing the document. The output
// written so far is invalid and should be discarded by the caller. It
// returns the sticky error, including a failure to flush or close.
// Abandoning a closed session is a no-op.
func (w *Writer) Abandon() error {
	if w.state == StateClosed {
		return nil
	}
	w.state = StateClosed
	if err := w.out.Flush(); err != nil && w.err == nil {
		w.err = &WriteError{Op: "abandon", Err: err}
	}
	if err := w.closeOwned(); err != nil && w.err == nil {
		w.err = &WriteError{Op: "close", Err: err}
	}
	return w.err
}

func (w *Writer) closeOwned() error {
	if w.closer == nil {
		return nil
	}
	c := w.closer
	w.closer = nil
	return c.Close()
}
