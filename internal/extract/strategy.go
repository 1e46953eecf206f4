package extract

import "regexp"

// Strategy is one candidate rule for extracting a field value. Strategies are
// tried strictly in declaration order and the first accepted match wins.
//
// Most strategies are a regular expression with a capture group plus optional
// normalization and validity steps. Rules that need more than one expression
// (line scans, block parsing, windowed searches) set Run instead, which
// receives the strategy's region text and is then responsible for its own
// normalization and validation.
type Strategy struct {
	Name   string
	Region Region

	Pattern   *regexp.Regexp
	Group     int
	Normalize func(string) string
	Valid     func(string) bool

	Run func(text string) (string, bool)
}

// Attempt reports how a field was resolved. Only the first accepted attempt
// is retained; strategies that missed are not reported.
type Attempt struct {
	Field    string
	Strategy int // index of the accepted strategy, -1 when all missed
	Name     string
	Raw      string
	Value    string
	Accepted bool
}

// fieldSpec is the ordered strategy list for one field in one language,
// together with the sentinel reported when every strategy misses.
type fieldSpec struct {
	field      string
	sentinel   string
	strategies []Strategy
}

// apply runs the strategy against its region. A miss is silent: the caller
// simply advances to the next strategy.
func (s Strategy) apply(doc *Document) (raw, value string, ok bool) {
	text := doc.Regions.of(s.Region)
	if s.Run != nil {
		v, hit := s.Run(text)
		if !hit || v == "" {
			return "", "", false
		}
		return v, v, true
	}
	m := s.Pattern.FindStringSubmatch(text)
	if m == nil || s.Group >= len(m) {
		return "", "", false
	}
	raw = m[s.Group]
	value = raw
	if s.Normalize != nil {
		value = s.Normalize(value)
	}
	if value == "" {
		return raw, "", false
	}
	if s.Valid != nil && !s.Valid(value) {
		return raw, "", false
	}
	return raw, value, true
}

// extract walks the strategy list in order, short-circuiting on the first
// accepted match. Exhaustion is not an error: the field resolves to its
// sentinel and the attempt records that no strategy was accepted.
func (f fieldSpec) extract(doc *Document) Attempt {
	for i, s := range f.strategies {
		raw, value, ok := s.apply(doc)
		if ok {
			return Attempt{
				Field:    f.field,
				Strategy: i,
				Name:     s.Name,
				Raw:      raw,
				Value:    value,
				Accepted: true,
			}
		}
	}
	return Attempt{Field: f.field, Strategy: -1, Value: f.sentinel}
}
