package extract

// Region names the bounded text window a strategy scans. Slicing is purely a
// performance device: a strategy whose field appears unpredictably declares
// RegionFull instead, and header/footer fold to the full text on short
// documents, so no content is ever lost to slicing.
type Region int

const (
	// RegionHeader is the first pages' worth of text: case number, court
	// name, caption and party block all sit there.
	RegionHeader Region = iota
	// RegionFooter is the signature tail: judge signature and the
	// lawyer/representation clauses.
	RegionFooter
	// RegionFull is the whole document.
	RegionFull
)

// Regions are the pre-sliced windows of one document.
type Regions struct {
	Header string
	Footer string
	Full   string
}

// Slice derives the scan windows for a document. The Chinese footer is cut by
// lines rather than runes because its signature block is line-oriented.
func (c Config) Slice(text string, language Language) Regions {
	footer := tailRunes(text, c.FooterRunes)
	if language == LanguageChinese {
		footer = tailLines(text, c.FooterLines)
	}
	return Regions{
		Header: headRunes(text, c.HeaderRunes),
		Footer: footer,
		Full:   text,
	}
}

func (r Regions) of(region Region) string {
	switch region {
	case RegionHeader:
		return r.Header
	case RegionFooter:
		return r.Footer
	default:
		return r.Full
	}
}
