package bandreport

// Document is the final output: an ordered list of prepared pages with
// page_count fully resolved. Prepared objects hold no references back
// into the definition tree - they are self-contained and serialisable.
type Document struct {
	Pages []*PreparedPage `json:"pages"`
}

// PreparedPage is one physical page of output.
type PreparedPage struct {
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Margin    Margins            `json:"margin"`
	Index     int                `json:"index"`
	Bands     []*PreparedBand    `json:"bands"`
	Watermark *PreparedWatermark `json:"watermark,omitempty"`
}

// PreparedWatermark is the resolved, geometry-free watermark image for
// a single page.
type PreparedWatermark struct {
	Source  ImageSource `json:"source"`
	Opacity float64     `json:"opacity"`
	Angle   float64     `json:"angle"`
}

// PreparedBand is one band placed at a fixed position on a page.
type PreparedBand struct {
	Left    float64          `json:"left"`
	Top     float64          `json:"top"`
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Kind    BandKind         `json:"kind"`
	Objects []PreparedObject `json:"objects"`
}

// PreparedObject is the closed set of prepared (rendered, positioned)
// band-object kinds.
type PreparedObject interface {
	isPreparedObject()
}

// PreparedText is a fully rendered, positioned text box.
type PreparedText struct {
	Geometry
	Text       string `json:"text"`
	Errored    bool   `json:"errored,omitempty"`
	HAlign     HAlign `json:"halign"`
	VAlign     VAlign `json:"valign"`
	Background string `json:"background,omitempty"`
	BrushStyle string `json:"brush_style,omitempty"`
	Font       string `json:"font,omitempty"`
}

func (*PreparedText) isPreparedObject() {}

// PreparedImage is a positioned, resolved image reference.
type PreparedImage struct {
	Geometry
	Source   ImageSource   `json:"source"`
	SizeMode ImageSizeMode `json:"size_mode"`
}

func (*PreparedImage) isPreparedObject() {}

// PreparedLine is a positioned stroke.
type PreparedLine struct {
	Geometry
	Direction Direction `json:"direction"`
	Stroke    float64   `json:"stroke"`
}

func (*PreparedLine) isPreparedObject() {}

// PreparedBarcode is a positioned, resolved barcode value.
type PreparedBarcode struct {
	Geometry
	Symbology string `json:"symbology"`
	Value     string `json:"value"`
}

func (*PreparedBarcode) isPreparedObject() {}

// PreparedTable is a positioned grid of already-rendered cell text.
type PreparedTable struct {
	Geometry
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (*PreparedTable) isPreparedObject() {}
