package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Party is one litigant read out of a caption. Ordinal is 0 when the
// caption carries no numbering.
type Party struct {
	Ordinal int
	Name    string
	Role    string
}

// PartyList is an ordered caption side. Formatting is positional: a single
// party renders as a bare name, multiple parties carry their role
// annotations and join with " | ".
type PartyList []Party

func ordinalSuffix(n int) string {
	if m := n % 100; m >= 10 && m <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func (p Party) annotation() string {
	if p.Role == "" {
		return p.Name
	}
	if p.Ordinal > 0 {
		if hanCount(p.Role) > 0 {
			return fmt.Sprintf("%s (第%d%s)", p.Name, p.Ordinal, p.Role)
		}
		return fmt.Sprintf("%s (%d%s %s)", p.Name, p.Ordinal, ordinalSuffix(p.Ordinal), p.Role)
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Role)
}

// Format renders the list for the record field.
func (pl PartyList) Format() string {
	switch len(pl) {
	case 0:
		return ""
	case 1:
		return pl[0].Name
	}
	parts := make([]string, len(pl))
	for i, p := range pl {
		parts[i] = p.annotation()
	}
	return strings.Join(parts, " | ")
}

var (
	rePartyAnnotEN = regexp.MustCompile(`^(.+?)\s*\((\d+)(?:st|nd|rd|th)\s+([A-Za-z]+)\)$`)
	rePartyAnnotZH = regexp.MustCompile(`^(.+?)\s*\(第(\d+)([^)]+)\)$`)
	rePartyAnnot   = regexp.MustCompile(`^(.+?)\s*\(([^()]+)\)$`)

	partyRoleWords = map[string]bool{
		"Plaintiff": true, "Defendant": true, "Applicant": true,
		"Respondent": true, "Appellant": true,
		"原告人": true, "被告人": true, "申請人": true, "上訴人": true, "答辯人": true,
	}
)

// ParsePartyList reads a formatted field value back into parties. A bare
// name (or one whose parenthetical is not a role annotation) parses as a
// single unnumbered party with the given default role.
func ParsePartyList(s, role string) PartyList {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var parties PartyList
	for _, part := range strings.Split(s, " | ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := rePartyAnnotEN.FindStringSubmatch(part); m != nil {
			n, _ := strconv.Atoi(m[2])
			parties = append(parties, Party{Ordinal: n, Name: m[1], Role: m[3]})
			continue
		}
		if m := rePartyAnnotZH.FindStringSubmatch(part); m != nil {
			n, _ := strconv.Atoi(m[2])
			parties = append(parties, Party{Ordinal: n, Name: m[1], Role: m[3]})
			continue
		}
		if m := rePartyAnnot.FindStringSubmatch(part); m != nil && partyRoleWords[m[2]] {
			parties = append(parties, Party{Name: m[1], Role: m[2]})
			continue
		}
		parties = append(parties, Party{Name: part, Role: role})
	}
	return parties
}

// English caption parsing.

var (
	reBetweenBlock  = regexp.MustCompile(`(?is)BETWEEN\s*(.*?)\s*(?:Before:|_{10}|Date|主審)`)
	reAndSeparator  = regexp.MustCompile(`(?i)\s+AND\s+`)
	reUnderscoreCut = regexp.MustCompile(`(?s)_{5,}.*$`)
	reAndLower      = regexp.MustCompile(`(?i)\s+and\s+`)

	rePartyLeadJoin  = regexp.MustCompile(`(?i)^(?:and\s+|&\s+)`)
	rePartyTrailJoin = regexp.MustCompile(`(?i)\s*(?:and|&)\s*$`)
	rePartyDigits    = regexp.MustCompile(`^\d+$`)
	rePartyHasAlpha  = regexp.MustCompile(`[A-Za-z]`)
)

var partyBadWords = map[string]bool{
	"and": true, "or": true, "the": true, "a": true, "an": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "of": true, "with": true,
	"before": true, "after": true, "during": true, "plaintiff": true,
	"defendant": true, "court": true, "judge": true, "chambers": true,
	"sitting": true, "hearing": true, "date": true, "action": true, "case": true,
}

// betweenRoleSection cuts the BETWEEN block out of the caption and returns
// the side belonging to role. The plaintiff side precedes the AND
// separator, the defendant side follows it. When the separator is missing
// the whole block is returned for both roles, flagged unsplit: the numbered
// grammar can still pick out labelled parties, but the single-name fallback
// must not swallow a mixed section.
func betweenRoleSection(text, role string) (section string, split, ok bool) {
	m := reBetweenBlock.FindStringSubmatch(text)
	if m == nil {
		return "", false, false
	}
	content := strings.TrimSpace(m[1])
	loc := reAndSeparator.FindStringIndex(content)
	if loc == nil {
		return strings.TrimSpace(reUnderscoreCut.ReplaceAllString(content, "")), false, true
	}
	if role == "Plaintiff" {
		return strings.TrimSpace(content[:loc[0]]), true, true
	}
	rest := content[loc[1]:]
	return strings.TrimSpace(reUnderscoreCut.ReplaceAllString(rest, "")), true, true
}

func isValidPartyName(name string, cfg Config) bool {
	n := runeLen(name)
	if n < cfg.MinPartyName || n > cfg.MaxPartyName {
		return false
	}
	if !rePartyHasAlpha.MatchString(name) {
		return false
	}
	if rePartyDigits.MatchString(name) {
		return false
	}
	return !partyBadWords[strings.ToLower(strings.TrimSpace(name))]
}

func cleanPartyName(name string, cfg Config) string {
	clean := collapseSpace(name)
	clean = rePartyLeadJoin.ReplaceAllString(clean, "")
	clean = rePartyTrailJoin.ReplaceAllString(clean, "")
	clean = strings.Trim(clean, ", ")
	if !isValidPartyName(clean, cfg) {
		return ""
	}
	return clean
}

// The numbered grammar. Four layouts cover the captions seen in practice:
// name above ordinal, name and ordinal inline, ordinal above name, and a
// bare name with a role label. Patterns run in order and the first one
// that yields parties wins, so an inline layout is not reparsed by the
// looser bare-label pattern.
const partyNameExpr = `[A-Z][A-Za-z\s,.()&'（）-]+?(?:\([^)]*\))?(?:（[^）]*）)?`

type numberedPatterns struct {
	nameAboveOrdinal *regexp.Regexp
	inline           *regexp.Regexp
	ordinalAboveName *regexp.Regexp
	bareLabel        *regexp.Regexp
}

func buildNumberedPatterns(role string) numberedPatterns {
	return numberedPatterns{
		nameAboveOrdinal: regexp.MustCompile(`(?i)(` + partyNameExpr + `)\s*\n\s*(\d+)(?:st|nd|rd|th)\s+` + role),
		inline:           regexp.MustCompile(`(?i)(` + partyNameExpr + `)\s+(\d+)(?:st|nd|rd|th)\s+` + role),
		ordinalAboveName: regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)\s+` + role + `\s*\n\s*(` + partyNameExpr + `)`),
		bareLabel:        regexp.MustCompile(`(?i)(` + partyNameExpr + `)\s+` + role),
	}
}

var (
	numberedPlaintiff = buildNumberedPatterns("Plaintiff")
	numberedDefendant = buildNumberedPatterns("Defendant")
)

func numberedPatternsFor(role string) numberedPatterns {
	if role == "Defendant" {
		return numberedDefendant
	}
	return numberedPlaintiff
}

func extractNumberedParties(section, role string, cfg Config) PartyList {
	pats := numberedPatternsFor(role)
	var parties PartyList

	collect := func(re *regexp.Regexp, ordinalFirst bool) PartyList {
		var found PartyList
		for _, m := range re.FindAllStringSubmatch(section, -1) {
			nameRaw, numRaw := m[1], m[2]
			if ordinalFirst {
				numRaw, nameRaw = m[1], m[2]
			}
			name := cleanPartyName(nameRaw, cfg)
			if name == "" {
				continue
			}
			n, err := strconv.Atoi(numRaw)
			if err != nil {
				continue
			}
			found = append(found, Party{Ordinal: n, Name: name, Role: role})
		}
		return found
	}

	if parties = collect(pats.nameAboveOrdinal, false); len(parties) == 0 {
		parties = collect(pats.inline, false)
	}
	if len(parties) == 0 {
		parties = collect(pats.ordinalAboveName, true)
	}
	if len(parties) == 0 {
		for _, m := range pats.bareLabel.FindAllStringSubmatchIndex(section, -1) {
			if followedByDigit(section, m[1]) {
				continue
			}
			name := cleanPartyName(section[m[2]:m[3]], cfg)
			if name == "" {
				continue
			}
			parties = append(parties, Party{Name: name, Role: role})
		}
	}

	return dedupeParties(parties)
}

// dedupeParties drops repeated names and repeated ordinals, then orders by
// ordinal with unnumbered parties first.
func dedupeParties(parties PartyList) PartyList {
	seenNames := make(map[string]bool, len(parties))
	seenOrdinals := make(map[int]bool, len(parties))
	unique := parties[:0:0]
	for _, p := range parties {
		if seenNames[p.Name] {
			continue
		}
		if p.Ordinal > 0 && seenOrdinals[p.Ordinal] {
			continue
		}
		seenNames[p.Name] = true
		if p.Ordinal > 0 {
			seenOrdinals[p.Ordinal] = true
		}
		unique = append(unique, p)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Ordinal < unique[j].Ordinal
	})
	return unique
}

var roleSuffixPatterns = map[string]*regexp.Regexp{
	"Plaintiff": regexp.MustCompile(`(?i)\s*Plaintiff\s*$`),
	"Defendant": regexp.MustCompile(`(?i)\s*Defendant\s*$`),
}

// simpleParty handles a one-name section with no numbering at all.
func simpleParty(section, role string, cfg Config) (Party, bool) {
	clean := collapseSpace(section)
	if re := roleSuffixPatterns[role]; re != nil {
		clean = re.ReplaceAllString(clean, "")
	}
	clean = rePartyTrailJoin.ReplaceAllString(clean, "")
	if !isValidPartyName(clean, cfg) {
		return Party{}, false
	}
	return Party{Name: clean, Role: role}, true
}

// extractPartiesRobust tries the numbered grammar, then, only on a properly
// split section, the single-name fallback. An unsplit BETWEEN block may mix
// both sides, so a bare name read from it could belong to either party.
func extractPartiesRobust(section, role string, split bool, cfg Config) PartyList {
	parties := extractNumberedParties(section, role, cfg)
	if len(parties) == 0 && split {
		if p, ok := simpleParty(section, role, cfg); ok {
			parties = PartyList{p}
		}
	}
	return parties
}

// Full-document defendant scan, for captions too mangled for the BETWEEN
// grammar.
var (
	fulltextNumberedDefendant = regexp.MustCompile(`(?i)([A-Za-z\s,.()&'-]+?)\s*\n\s*(\d+)(?:st|nd|rd|th)\s+Defendant`)
	fulltextSingleDefendant   = regexp.MustCompile(`(?i)and\s+([A-Z][A-Za-z\s,.()&'-]{10,80}?)\s*\n\s*Defendant`)
	rePartyLeadAnd            = regexp.MustCompile(`(?i)^(?:and\s+)?`)
)

func fulltextDefendants(text string) PartyList {
	var parties PartyList

	for _, m := range fulltextNumberedDefendant.FindAllStringSubmatch(text, -1) {
		name := rePartyLeadAnd.ReplaceAllString(collapseSpace(m[1]), "")
		if runeLen(name) <= 3 {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		parties = append(parties, Party{Ordinal: n, Name: name, Role: "Defendant"})
	}
	for _, m := range fulltextSingleDefendant.FindAllStringSubmatchIndex(text, -1) {
		if followedByDigit(text, m[1]) {
			continue
		}
		name := rePartyLeadAnd.ReplaceAllString(collapseSpace(text[m[2]:m[3]]), "")
		if runeLen(name) <= 3 {
			continue
		}
		parties = append(parties, Party{Name: name, Role: "Defendant"})
	}

	seen := make(map[string]bool, len(parties))
	unique := parties[:0:0]
	for _, p := range parties {
		key := fmt.Sprintf("%d|%s", p.Ordinal, p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
		if len(unique) >= 10 {
			break
		}
	}
	return unique
}

// Simple AND-split fallbacks over the BETWEEN block.

var (
	rePlaintiffSuffix = regexp.MustCompile(`(?i)\s*Plaintiff\s*$`)
	reDefendantTail   = regexp.MustCompile(`(?i)\s*Defendant.*$`)
)

func splitPlaintiff(text string) (string, bool) {
	m := reBetweenBlock.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	content := strings.TrimSpace(m[1])
	parts := reAndLower.Split(content, -1)
	if len(parts) < 2 {
		return "", false
	}
	clean := rePlaintiffSuffix.ReplaceAllString(collapseSpace(parts[0]), "")
	if n := runeLen(clean); n > 3 && n < 300 {
		return clean, true
	}
	return "", false
}

func splitDefendant(text string) (string, bool) {
	m := reBetweenBlock.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	content := strings.TrimSpace(m[1])
	locs := reAndLower.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return "", false
	}
	last := locs[len(locs)-1]
	section := strings.TrimSpace(content[last[1]:])
	section = reDefendantTail.ReplaceAllString(section, "")
	section = collapseSpace(section)
	if n := runeLen(section); n > 5 && n < 200 {
		return section, true
	}
	return "", false
}

// Caption-label patterns: an upper-case name directly above or beside the
// role label, the layout used in District Court money claims.
func captionLabelPatterns(role string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?m)([A-Z][A-Z\s&.,()]+?)\s*\n\s*` + role + `\s*(?:\n|$)`),
		regexp.MustCompile(`(?m)([A-Z][A-Z\s&.,()]+?)\s+` + role + `\s*(?:\n|$)`),
		regexp.MustCompile(`([A-Z][A-Z\s&.,()-]+?)\s*\n\s*` + role),
		regexp.MustCompile(`([A-Z][A-Z\s&.,()-]+?)\s+` + role),
	}
}

var (
	captionPlaintiffPatterns = captionLabelPatterns("Plaintiff")
	captionDefendantPatterns = captionLabelPatterns("Defendant")
)

func captionLabelParty(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			clean := rePartyLeadJoin.ReplaceAllString(collapseSpace(m[1]), "")
			if n := runeLen(clean); n > 3 && n < 100 {
				return clean, true
			}
		}
	}
	return "", false
}

func englishPlaintiffField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "plaintiff",
		sentinel: SentinelText,
		strategies: []Strategy{
			{
				Name:   "between-block",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					section, split, ok := betweenRoleSection(text, "Plaintiff")
					if !ok {
						return "", false
					}
					parties := extractPartiesRobust(section, "Plaintiff", split, cfg)
					if len(parties) == 0 {
						return "", false
					}
					return parties.Format(), true
				},
			},
			{
				Name:   "simple-split",
				Region: RegionHeader,
				Run:    splitPlaintiff,
			},
			{
				Name:   "caption-label",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					return captionLabelParty(text, captionPlaintiffPatterns)
				},
			},
		},
	}
}

func englishDefendantField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "defendant",
		sentinel: SentinelText,
		strategies: []Strategy{
			{
				Name:   "between-block",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					section, split, ok := betweenRoleSection(text, "Defendant")
					if !ok {
						return "", false
					}
					parties := extractPartiesRobust(section, "Defendant", split, cfg)
					if len(parties) == 0 {
						return "", false
					}
					return parties.Format(), true
				},
			},
			{
				Name:   "fulltext-numbered",
				Region: RegionFull,
				Run: func(text string) (string, bool) {
					parties := fulltextDefendants(text)
					if len(parties) == 0 {
						return "", false
					}
					return parties.Format(), true
				},
			},
			{
				Name:   "simple-split",
				Region: RegionHeader,
				Run:    splitDefendant,
			},
			{
				Name:   "caption-label",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					return captionLabelParty(text, captionDefendantPatterns)
				},
			},
		},
	}
}

// Chinese parties. Captions are rarer in the Chinese corpus; the reliable
// sources are the litigation narrative (原告人X起訴第一被告人Y、第二被告人Z)
// and numbered caption lines, with anchored labels as the last resort.

var chineseLawyerClauseWords = []string{
	"律師", "代表", "事務所", "無律師代表", "親自行事", "親自出庭",
}

// isChineseLawyerClause reports whether a captured value is a
// representation clause rather than a party name. The footer lists both
// under the same 原告人/被告人 anchors.
func isChineseLawyerClause(s string) bool {
	for _, w := range chineseLawyerClauseWords {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

var (
	litigationPlaintiffPatterns = []*regexp.Regexp{
		regexp.MustCompile(`之原告人([^起訴\n]+?)(?:起訴|女士起訴|先生起訴)`),
		regexp.MustCompile(`原告人([^起訴\n]+?)(?:起訴|女士起訴|先生起訴)`),
		regexp.MustCompile(`申請人([^申請\n]+?)(?:申請|女士申請|先生申請)`),
	}
	reLeadingNonHan = regexp.MustCompile(`^[^\x{4e00}-\x{9fff}]*`)

	litigationDefendantsFull   = regexp.MustCompile(`起訴.*?第一被告人([^，、第]+?)(?:女士|先生)?[，、].*?第二被告人([^，、第]+?)(?:女士|先生)?(?:[，、].*?第三被告人([^，、第]+?)(?:女士|先生)?)?(?:[，、].*?第四被告人([^，、第]+?)(?:女士|先生)?)?`)
	litigationDefendantsSimple = regexp.MustCompile(`第([一二三四五六七八九十])被告人([^，、第\n]+?)(?:女士|先生)?(?:[，、]|$)`)

	chineseNumerals = map[string]int{
		"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
		"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
	}

	directDefendantPatterns = []*regexp.Regexp{
		regexp.MustCompile(`第一被告人[：:\s]*([^，、第\n]+?)(?:女士|先生)?(?:[，、]|、第二被告人)`),
		regexp.MustCompile(`第二被告人[：:\s]*([^，、第\n]+?)(?:女士|先生)?(?:[，、]|、第三被告人)`),
		regexp.MustCompile(`第三被告人[：:\s]*([^，、第\n]+?)(?:女士|先生)?(?:[，、]|、第四被告人)`),
		regexp.MustCompile(`第四被告人[：:\s]*([^，、第\n]+?)(?:女士|先生)?(?:[，、]|$)`),
	}

	standardChinesePlaintiffPatterns = []*regexp.Regexp{
		regexp.MustCompile(`第一原告人\s*([^第\n]+)(?:第二原告人|第三原告人|被告)`),
		regexp.MustCompile(`第二原告人\s*([^第\n]+)(?:第三原告人|第四原告人|被告)`),
		regexp.MustCompile(`第三原告人\s*([^第\n]+)(?:第四原告人|第五原告人|被告)`),
		regexp.MustCompile(`第四原告人\s*([^第\n]+)(?:第五原告人|第六原告人|被告)`),
		regexp.MustCompile(`第五原告人\s*([^第\n]+)(?:第六原告人|被告)`),
	}
	standardChineseDefendantPatterns = []*regexp.Regexp{
		regexp.MustCompile(`第一被告人\s*([^第\n]+)(?:第二被告人|第三被告人|Before)`),
		regexp.MustCompile(`第二被告人\s*([^第\n]+)(?:第三被告人|第四被告人|Before)`),
		regexp.MustCompile(`第三被告人\s*([^第\n]+)(?:第四被告人|第五被告人|Before)`),
		regexp.MustCompile(`第四被告人\s*([^第\n]+)(?:第五被告人|第六被告人|Before)`),
		regexp.MustCompile(`第五被告人\s*([^第\n]+)(?:第六被告人|Before)`),
	}

	chineseSuffixHonorific = regexp.MustCompile(`(?:女士|先生|小姐)$`)
	chineseLeadingJoiners  = regexp.MustCompile(`^(?:及|、|，|,|\s)+`)
	chineseTrailingJoiners = regexp.MustCompile(`(?:及|、|，|,|\s)+$`)
	chineseJunkOnly        = regexp.MustCompile(`^[\s\d，、,]+$`)
	reLeadingColon         = regexp.MustCompile(`^\s*[：:]\s*`)
)

func cleanChineseDefendantName(name string) string {
	clean := collapseSpace(name)
	clean = chineseSuffixHonorific.ReplaceAllString(clean, "")
	clean = chineseLeadingJoiners.ReplaceAllString(clean, "")
	clean = chineseTrailingJoiners.ReplaceAllString(clean, "")
	if strings.Contains(clean, "無律師代") || strings.Contains(clean, "缺席應訊") || strings.Contains(clean, "親自出庭") {
		return ""
	}
	if n := runeLen(clean); n < 2 || n > 30 {
		return ""
	}
	if chineseJunkOnly.MatchString(clean) {
		return ""
	}
	return clean
}

func litigationPlaintiff(text string) (string, bool) {
	for _, re := range litigationPlaintiffPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		clean := collapseSpace(m[1])
		clean = strings.TrimSpace(reLeadingNonHan.ReplaceAllString(clean, ""))
		if n := runeLen(clean); n >= 2 && n <= 50 {
			return clean, true
		}
	}
	return "", false
}

func litigationDefendants(text string) (string, bool) {
	var defendants []string

	for _, m := range litigationDefendantsFull.FindAllStringSubmatch(text, -1) {
		for i := 1; i <= 4 && i < len(m); i++ {
			if strings.TrimSpace(m[i]) == "" {
				continue
			}
			if clean := cleanChineseDefendantName(m[i]); clean != "" {
				defendants = append(defendants, fmt.Sprintf("%s (第%d被告人)", clean, i))
			}
		}
	}
	for _, m := range litigationDefendantsSimple.FindAllStringSubmatch(text, -1) {
		n, ok := chineseNumerals[m[1]]
		if !ok {
			continue
		}
		if clean := cleanChineseDefendantName(m[2]); clean != "" {
			defendants = append(defendants, fmt.Sprintf("%s (第%d被告人)", clean, n))
		}
	}

	if len(defendants) == 0 {
		for i, re := range directDefendantPatterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if clean := cleanChineseDefendantName(m[1]); clean != "" {
				defendants = append(defendants, fmt.Sprintf("%s (第%d被告人)", clean, i+1))
			}
		}
	}

	seen := make(map[string]bool, len(defendants))
	unique := defendants[:0:0]
	for _, d := range defendants {
		if seen[d] {
			continue
		}
		seen[d] = true
		unique = append(unique, d)
	}
	if len(unique) == 0 {
		return "", false
	}
	return strings.Join(unique, " | "), true
}

func standardChineseParties(text string, patterns []*regexp.Regexp, role string) (string, bool) {
	var parties []string
	for i, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := collapseSpace(m[1])
		if runeLen(name) > 2 {
			parties = append(parties, fmt.Sprintf("%s (第%d%s)", name, i+1, role))
		}
	}
	if len(parties) == 0 {
		return "", false
	}
	return strings.Join(parties, " | "), true
}

// Anchored caption labels, the oldest fallback. The validity check rejects
// representation clauses so footer lawyer lines cannot leak into the party
// fields on short documents where the header window covers the footer.
var (
	anchoredChinesePlaintiffPatterns = []*regexp.Regexp{
		regexp.MustCompile(`原告人\s*\n\s*([A-Za-z\s,]+?)(?:\n|\s*及\s*)`),
		regexp.MustCompile(`原告人\s*\n\s*([^\n]+?)(?:\s*第|\s*被告|\s*_)`),
		regexp.MustCompile(`(?:第一原告人|原告人)\s*[：:]\s*([^\n第被]+)`),
		regexp.MustCompile(`(?:第一原告人|原告人)\s*([A-Za-z\s,.]+)(?:\s*第|\s*被告|\s*及)`),
		regexp.MustCompile(`原告[：:]\s*([^\n]+)`),
		regexp.MustCompile(`申請人[：:]\s*([^\n]+)`),
		regexp.MustCompile(`上訴人[：:]\s*([^\n]+)`),
		regexp.MustCompile(`第一原告人\s*([A-Za-z\s,]+)(?:\n|第二|第三|被告)`),
	}

	anchoredChineseDefendantPatterns = []*regexp.Regexp{
		regexp.MustCompile(`第一被告人\s*\n?\s*([A-Za-z\s,]+?)(?:\s*第二被告人|\s*第三被告人|\s*_)`),
		regexp.MustCompile(`第一被告人\s*([A-Za-z\s,.]+)(?:\s*第二|\s*第三|\s*_)`),
		regexp.MustCompile(`第三被告人\s*([^_\n]+?)(?:_|Before|Date|\s*$)`),
		regexp.MustCompile(`第三被告人\s*([^\n]+?)(?:\s*主審|\s*聆訊|\s*判)`),
		regexp.MustCompile(`(?:第一被告人|被告人)\s*[：:]\s*([^\n第原]+)`),
		regexp.MustCompile(`(?:被告|被申請人)\s*[：:]\s*([^\n]+)`),
		regexp.MustCompile(`被告[：:]\s*([^\n]+)`),
		regexp.MustCompile(`被申請人[：:]\s*([^\n]+)`),
		regexp.MustCompile(`被上訴人[：:]\s*([^\n]+)`),
		regexp.MustCompile(`(?:第一被告人|被告人)\s*([A-Za-z\s,]+)(?:\n|第二|第三|原告|Before)`),
	}

	rePartyDigitsLoose = regexp.MustCompile(`^\d+\s*$`)
)

func anchoredChineseParty(text string, patterns []*regexp.Regexp, maxLen int) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := collapseSpace(m[1])
		value = reLeadingColon.ReplaceAllString(value, "")
		n := runeLen(value)
		if n <= 3 || n >= maxLen {
			continue
		}
		if rePartyDigitsLoose.MatchString(value) || isChineseLawyerClause(value) {
			continue
		}
		return value, true
	}
	return "", false
}

func chinesePlaintiffField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "plaintiff",
		sentinel: SentinelText,
		strategies: []Strategy{
			{
				Name:   "litigation-narrative",
				Region: RegionFull,
				Run:    litigationPlaintiff,
			},
			{
				Name:   "numbered-caption",
				Region: RegionFull,
				Run: func(text string) (string, bool) {
					return standardChineseParties(text, standardChinesePlaintiffPatterns, "原告人")
				},
			},
			{
				Name:   "caption-anchored",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					return anchoredChineseParty(text, anchoredChinesePlaintiffPatterns, 200)
				},
			},
		},
	}
}

func chineseDefendantField(cfg Config) fieldSpec {
	return fieldSpec{
		field:    "defendant",
		sentinel: SentinelText,
		strategies: []Strategy{
			{
				Name:   "litigation-narrative",
				Region: RegionFull,
				Run:    litigationDefendants,
			},
			{
				Name:   "numbered-caption",
				Region: RegionFull,
				Run: func(text string) (string, bool) {
					return standardChineseParties(text, standardChineseDefendantPatterns, "被告人")
				},
			},
			{
				Name:   "caption-anchored",
				Region: RegionHeader,
				Run: func(text string) (string, bool) {
					return anchoredChineseParty(text, anchoredChineseDefendantPatterns, 500)
				},
			},
		},
	}
}
