package bandreport

// HAlign is the horizontal alignment encoding from the external
// interface: 0=left, 1=center, 2=right, 3=justify.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// VAlign is the vertical alignment encoding: 0=top, 1=center, 2=bottom.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// ImageSizeMode is the image sizing encoding: 0=normal, 1=center,
// 2=auto, 3=zoom (keep aspect), 4=stretch (fill).
type ImageSizeMode uint8

const (
	ImageNormal ImageSizeMode = iota
	ImageCenter
	ImageAuto
	ImageZoom
	ImageStretch
)

// Direction is the stroke direction of a Line object.
type Direction uint8

const (
	DirectionHorizontal Direction = iota
	DirectionVertical
)

// Geometry is the shared position/size block every band object carries.
type Geometry struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Highlight overrides a Text object's styling when Condition renders to
// the literal string "True".
type Highlight struct {
	Condition  string
	Background string
	BrushStyle string
}

// ImageSource names where an Image or watermark gets its bytes from:
// inline data, a record field, or a report variable, never more than
// one at a time.
type ImageSource struct {
	Bytes    []byte
	Field    string
	Variable string
}

// BarcodeSource names where a Barcode gets its encoded value from:
// a literal string, a record field, or a template expression.
type BarcodeSource struct {
	Literal  string
	Field    string
	Template string
}

// Object is the closed set of band-object kinds: Text, Image, Line,
// Barcode, Table. Each carries its own Geometry and name.
type Object interface {
	ObjectName() string
	ObjectGeometry() Geometry
}

// Text is a template-driven text box.
type Text struct {
	Name          string
	Geom          Geometry
	Source        string // raw template string
	Font          string
	Borders       string
	Padding       float64
	HAlign        HAlign
	VAlign        VAlign
	Background    string
	DisplayFormat string
	CanGrow       bool
	CanShrink     bool
	WordWrap      bool
	AllowTags     bool
	Highlight     *Highlight
}

func (t *Text) ObjectName() string        { return t.Name }
func (t *Text) ObjectGeometry() Geometry  { return t.Geom }

// Image renders a bitmap positioned and scaled per SizeMode.
type Image struct {
	Name     string
	Geom     Geometry
	Source   ImageSource
	SizeMode ImageSizeMode
}

func (i *Image) ObjectName() string       { return i.Name }
func (i *Image) ObjectGeometry() Geometry { return i.Geom }

// Line draws a single stroke.
type Line struct {
	Name      string
	Geom      Geometry
	Direction Direction
	Stroke    float64
}

func (l *Line) ObjectName() string       { return l.Name }
func (l *Line) ObjectGeometry() Geometry { return l.Geom }

// Barcode encodes Source under the named symbology.
type Barcode struct {
	Name      string
	Geom      Geometry
	Symbology string
	Source    BarcodeSource
}

func (b *Barcode) ObjectName() string       { return b.Name }
func (b *Barcode) ObjectGeometry() Geometry { return b.Geom }

// TableColumn is one column of a Table object: a label and a template
// rendered once per row against the table's own datasource.
type TableColumn struct {
	Name   string
	Width  float64
	Label  string
	Source string // per-cell template
}

// Table is an embedded grid of rows x columns, driven by its own named
// datasource independent of the enclosing band's iteration.
type Table struct {
	Name       string
	Geom       Geometry
	DataSource string
	Columns    []TableColumn
}

func (tb *Table) ObjectName() string       { return tb.Name }
func (tb *Table) ObjectGeometry() Geometry { return tb.Geom }

// Subreport embeds another page's root bands inline at this object's
// position. The referenced page is never driven as a page of its own -
// markSubreportTargets marks it skip once a Subreport names it.
type Subreport struct {
	Name string
	Geom Geometry
	Page string
}

func (s *Subreport) ObjectName() string       { return s.Name }
func (s *Subreport) ObjectGeometry() Geometry { return s.Geom }
