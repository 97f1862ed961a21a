package bandreport

// BandKind is the closed set of band roles a Band definition can take.
type BandKind uint8

const (
	KindPageHeader BandKind = iota
	KindPageFooter
	KindReportTitle
	KindReportSummary
	KindHeader
	KindFooter
	KindDataBand
	KindGroupHeader
	KindGroupFooter
	KindChildBand
)

func (k BandKind) String() string {
	switch k {
	case KindPageHeader:
		return "PageHeader"
	case KindPageFooter:
		return "PageFooter"
	case KindReportTitle:
		return "ReportTitle"
	case KindReportSummary:
		return "ReportSummary"
	case KindHeader:
		return "Header"
	case KindFooter:
		return "Footer"
	case KindDataBand:
		return "DataBand"
	case KindGroupHeader:
		return "GroupHeader"
	case KindGroupFooter:
		return "GroupFooter"
	case KindChildBand:
		return "ChildBand"
	default:
		return "Unknown"
	}
}

// Band is one declared strip on a page. Cross-references to other bands
// (a data band's header/footer/group header, a group footer's group
// header) are held by name here and resolved to list indices into the
// owning page's Bands slice during the page band pass - see
// resolveCrossReferences in engine.go. Indices avoid the ownership
// cycles a direct pointer-based graph would create.
type Band struct {
	Name          string
	Kind          BandKind
	Height        float64
	Width         float64 // 0 means "page content width"
	Background    string
	PrintOnBottom bool
	ChildBand     string // name of a ChildBand continuation, if any
	Objects       []Object
	Visible       string // template; empty means always visible
	Stretched     bool

	// DataBand fields.
	DataSource  string // name of the driving DataSource, mutually
	RowCount    int    // exclusive with DataSource - see ErrAmbiguousDataBand
	Header      string // name of a Header band bracketing this data band
	Footer      string // name of a Footer band bracketing this data band
	GroupHeader string // name of the GroupHeader this data band is nested under

	// GroupHeader fields.
	Expression string // group expression template
	Field      string // group field name, alternative to Expression
	DataBand   string // name of the DataBand this group header drives
	Parent     string // name of an enclosing GroupHeader, for nested grouping

	// GroupFooter fields.
	OfGroupHeader string // name of the GroupHeader this footer closes

	resolved bandLinks
}

// bandLinks holds the index form of the name-based cross-references
// above, -1 meaning "unresolved/absent". Populated once per page by
// resolveCrossReferences.
type bandLinks struct {
	header      int
	footer      int
	groupHeader int
	dataBand    int
	childBand   int
	ofGroupHdr  int
}

func newBandLinks() bandLinks {
	return bandLinks{-1, -1, -1, -1, -1, -1}
}

// validate checks the invariants a Band must satisfy independent of its
// page context: the ambiguous-DataBand open question, and that a group
// header/footer actually names a group expression or field.
func (b *Band) validate() error {
	switch b.Kind {
	case KindDataBand:
		if b.RowCount != 0 && b.DataSource != "" {
			return ErrAmbiguousDataBand
		}
	case KindGroupHeader:
		if b.Expression == "" && b.Field == "" {
			return configErrorf("group header %q has neither Expression nor Field", b.Name)
		}
	}
	return nil
}
