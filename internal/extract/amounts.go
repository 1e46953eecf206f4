package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Amount extraction runs three widening passes over positional windows.
// Each candidate figure is scored by its surrounding context and the
// survivors are rolled up into a single currency total when possible.

type amountKind int

const (
	amountClaim amountKind = iota
	amountJudgment
)

var baseAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)HK\$[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)USD?[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)US\$[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)RMB[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)(?:Hong Kong|US|United States)\s+Dollars?\s*[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)(?:the\s+)?sum of\s+HK\$[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)(?:the\s+)?amount of\s+USD?[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)HK\$[\d,]+(?:\.\d{2})?\s+(?:plus|together with|and)\s+interest`),
	regexp.MustCompile(`(?i)principal sum of\s+HK\$[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)outstanding balance of\s+USD?[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)[\d,]+(?:\.\d{2})?\s*(?:Hong Kong Dollars|US Dollars|USD|HKD)`),
	regexp.MustCompile(`(?i)[\d,]+(?:\.\d{2})?\s*(?:million|billion|thousand)?\s*(?:dollars?|USD|HKD)`),
	regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)[\d]{1,3}(?:,\d{3})+(?:\.\d{2})?`),
}

var chineseAmountPatterns = append(append([]*regexp.Regexp{}, baseAmountPatterns...),
	regexp.MustCompile(`(?i)(?:港幣|港币|美金|美元|人民幣|人民币)[\d,.]+(?:萬|万|億|亿)?`),
	regexp.MustCompile(`(?i)[\d,]+(?:\.\d{2})?\s*(?:港元|美元|人民币)`),
	regexp.MustCompile(`(?i)[\d,]+\s*(?:萬|万|億|亿)\s*(?:港元|美元)`),
)

var (
	englishClaimKeywords = []string{
		"claims", "seeks", "damages", "compensation", "plaintiff seeks",
		"applicant seeks", "prays for", "relief sought",
		"sum of", "amount of", "payment of", "recovery of", "reimbursement of",
		"refund of", "outstanding", "principal amount", "principal sum",
		"loan amount", "debt of", "owing", "due and owing", "balance of",
		"unpaid sum", "contractual amount", "agreed sum", "deposit of",
		"security of", "guarantee of", "liability of", "quantum of",
		"monetary claim", "financial claim", "pecuniary loss", "loss and damage",
	}
	englishClaimContext = []string{
		"claim", "seek", "damage", "compensation", "debt", "owing", "recovery", "loss",
	}

	englishJudgmentKeywords = []string{
		"ordered to pay", "judgment for", "costs assessed", "defendant shall pay",
		"award", "grant", "summarily assessed",
		"I order", "the court orders", "hereby ordered", "it is ordered",
		"judgment is entered", "decree that", "direct payment", "liable to pay",
		"responsible for", "costs of", "costs in the sum", "interest on",
		"penalty of", "fine of", "damages awarded", "compensation ordered",
		"restitution of", "refund ordered", "payment directed", "sum awarded",
		"amount granted", "relief granted", "monetary judgment", "pecuniary award",
		"costs summarily assessed", "costs taxed", "interest at", "compound interest",
		"default judgment for", "judgment in favour", "enter judgment for",
	}
	englishJudgmentContext = []string{
		"order", "pay", "costs", "assess", "award", "judgment", "grant", "liable",
	}

	chineseClaimKeywords = []string{
		"申請", "索償", "賠償", "損失", "要求", "請求", "原告申請", "申請人請求",
		"欠款", "債務", "借款", "貸款", "本金", "利息", "違約金", "罰款",
	}
	chineseClaimContext = []string{"申請", "索償", "賠償", "要求", "損失", "債務"}

	chineseJudgmentKeywords = []string{
		"判令", "命令", "賠償", "支付", "費用", "法庭命令", "判決", "裁定支付",
		"責令", "判給", "給予", "授予", "課以", "罰款", "利息",
	}
	chineseJudgmentContext = []string{"判令", "支付", "費用", "賠償", "命令", "判決"}

	claimNegativeWords    = []string{"costs", "legal fees", "court fees", "filing fee", "ordered to pay"}
	judgmentNegativeWords = []string{"claims", "seeks damages", "plaintiff seeks", "applicant seeks"}
)

func amountPatterns(lang Language) []*regexp.Regexp {
	if lang == LanguageChinese {
		return chineseAmountPatterns
	}
	return baseAmountPatterns
}

func amountKeywords(lang Language, kind amountKind) (keywords, contextWords []string) {
	if lang == LanguageEnglish {
		if kind == amountClaim {
			return englishClaimKeywords, englishClaimContext
		}
		return englishJudgmentKeywords, englishJudgmentContext
	}
	if kind == amountClaim {
		return chineseClaimKeywords, chineseClaimContext
	}
	return chineseJudgmentKeywords, chineseJudgmentContext
}

type amountHit struct {
	amount   string
	context  string
	position int
	total    int
}

// findPotentialAmounts collects every currency expression with ±150 runes of
// surrounding context.
func findPotentialAmounts(section string, patterns []*regexp.Regexp) []amountHit {
	total := runeLen(section)
	var hits []amountHit
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(section, -1) {
			context := collapseSpace(expandRunes(section, loc[0], loc[1], 150))
			hits = append(hits, amountHit{
				amount:   section[loc[0]:loc[1]],
				context:  context,
				position: runeLen(section[:loc[0]]),
				total:    total,
			})
		}
	}
	return hits
}

// scoreAmountContext weighs keyword hits around a candidate figure. Long
// keywords count more, negative phrases pull the score down, and the figure's
// position in the section nudges it toward the expected end of the document.
func scoreAmountContext(hit amountHit, kind amountKind, keywords, contextWords []string) float64 {
	context := strings.ToLower(hit.context)
	score := 0.0

	for _, keyword := range keywords {
		if strings.Contains(context, strings.ToLower(keyword)) {
			switch n := runeLen(keyword); {
			case n > 10:
				score += 3
			case n > 5:
				score += 2
			default:
				score++
			}
		}
	}

	for _, word := range contextWords {
		if strings.Contains(context, strings.ToLower(word)) {
			score++
		}
	}

	negatives := claimNegativeWords
	if kind == amountJudgment {
		negatives = judgmentNegativeWords
	}
	for _, neg := range negatives {
		if strings.Contains(context, neg) {
			score -= 1.5
		}
	}

	if hit.total > 0 {
		position := float64(hit.position) / float64(hit.total)
		if kind == amountJudgment && position > 0.6 {
			score++
		} else if kind == amountClaim && position < 0.4 {
			score++
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}

func extractAmountsByKeywords(section string, lang Language, kind amountKind, threshold float64) string {
	if runeLen(section) < 50 {
		return ""
	}

	keywords, contextWords := amountKeywords(lang, kind)
	hits := findPotentialAmounts(section, amountPatterns(lang))

	type validated struct {
		context string
		score   float64
	}
	var accepted []validated
	for _, hit := range hits {
		if score := scoreAmountContext(hit, kind, keywords, contextWords); score >= threshold {
			accepted = append(accepted, validated{context: hit.context, score: score})
		}
	}
	if len(accepted) == 0 {
		return ""
	}

	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].score > accepted[j].score })
	if len(accepted) > 3 {
		accepted = accepted[:3]
	}
	contexts := make([]string, len(accepted))
	for i, v := range accepted {
		contexts[i] = v.context
	}
	combined := strings.Join(contexts, " | ")
	if runeLen(combined) > 3000 {
		combined = headRunes(combined, 2997) + "..."
	}

	if rolled := rollUpAmounts(combined); rolled != "" {
		return rolled
	}
	return combined
}

var rollupAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)HK\$[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)USD?\s*[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)US\$[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)RMB[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)(?:Hong Kong|US|United States)\s+Dollars?\s*[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)(?:the\s+)?sum of\s+(?:HK\$|USD?|US\$)[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)(?:the\s+)?amount of\s+(?:HK\$|USD?|US\$)[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)[\d,]+(?:\.\d{2})?\s*(?:Hong Kong Dollars|US Dollars|USD|HKD)`),
	regexp.MustCompile(`(?i)[\d,]+(?:\.\d{2})?\s*(?:million|billion|thousand)?\s*(?:dollars?|USD|HKD)`),
	regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand))?`),
	regexp.MustCompile(`(?i)[\d]{1,3}(?:,\d{3})+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)(?:港币|港幣|美金|美元|人民币|人民幣)[\d,]+(?:\.\d{2})?(?:\s*(?:万|萬|亿|億))?`),
	regexp.MustCompile(`(?i)[\d,]+(?:\.\d{2})?\s*(?:港元|美元|人民币|元)`),
	regexp.MustCompile(`(?i)[\d,]+\s*(?:万|萬|亿|億)\s*(?:港元|美元|元)`),
	regexp.MustCompile(`(?i)damages?\s+(?:of|in the sum of|totaling|amounting to)\s+(?:HK\$|USD?|US\$|\$)[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)compensation\s+(?:of|in the sum of)\s+(?:HK\$|USD?|US\$|\$)[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)costs?\s+(?:of|in the sum of|assessed at)\s+(?:HK\$|USD?|US\$|\$)[\d,]+(?:\.\d{2})?`),
}

var (
	reAmountNumber = regexp.MustCompile(`[\d,]+(?:\.\d{2})?`)
	reUnitMillion  = regexp.MustCompile(`(?i)\bmillion\b`)
	reUnitBillion  = regexp.MustCompile(`(?i)\bbillion\b`)
	reUnitThousand = regexp.MustCompile(`(?i)\bthousand\b`)
)

// parseAmountMatch resolves a currency expression to its numeric value and
// currency symbol.
func parseAmountMatch(match string) (float64, string, bool) {
	upper := strings.ToUpper(match)
	var currency string
	switch {
	case strings.Contains(upper, "HK") || strings.Contains(match, "港"):
		currency = "HK$"
	case strings.Contains(upper, "USD") || strings.Contains(upper, "US$") ||
		strings.Contains(upper, "US ") || strings.Contains(match, "美"):
		currency = "USD"
	case strings.Contains(upper, "RMB") || strings.Contains(match, "人民"):
		currency = "RMB"
	default:
		currency = "$"
	}

	number := reAmountNumber.FindString(match)
	if number == "" {
		return 0, "", false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0, "", false
	}

	switch {
	case reUnitMillion.MatchString(match):
		value *= 1_000_000
	case reUnitBillion.MatchString(match):
		value *= 1_000_000_000
	case reUnitThousand.MatchString(match):
		value *= 1_000
	case strings.Contains(match, "万") || strings.Contains(match, "萬"):
		value *= 10_000
	case strings.Contains(match, "亿") || strings.Contains(match, "億"):
		value *= 100_000_000
	}

	return value, currency, true
}

func formatThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// rollUpAmounts reduces an evidence string to one figure: the sum when every
// match shares a currency, otherwise the largest single amount.
func rollUpAmounts(text string) string {
	if runeLen(strings.TrimSpace(text)) < 20 {
		return ""
	}

	var (
		formatted  []string
		values     []float64
		currencies = map[string]bool{}
	)
	for _, re := range rollupAmountPatterns {
		for _, match := range re.FindAllString(text, -1) {
			value, currency, ok := parseAmountMatch(match)
			if !ok || value <= 0 {
				continue
			}
			values = append(values, value)
			currencies[currency] = true
			formatted = append(formatted, currency+formatThousands(value))
		}
	}
	if len(values) == 0 {
		return ""
	}

	if len(currencies) == 1 {
		var currency string
		for c := range currencies {
			currency = c
		}
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return currency + formatThousands(sum)
	}

	maxIdx := 0
	for i, v := range values {
		if v > values[maxIdx] {
			maxIdx = i
		}
	}
	return formatted[maxIdx]
}

func combineAmountResults(results []string) string {
	var valid []string
	for _, r := range results {
		if strings.TrimSpace(r) != "" {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return ""
	}

	var unique []string
	for _, result := range valid {
		duplicate := false
		for _, existing := range unique {
			if runeLen(result) > 50 && runeLen(existing) > 50 &&
				headRunes(result, 50) == headRunes(existing, 50) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, result)
		}
	}

	combined := strings.Join(unique, " | ")
	if runeLen(combined) > 3000 {
		combined = headRunes(combined, 2997) + "..."
	}
	return combined
}

// Layer one narrows to where each figure usually sits: claims near the front
// plus the closing orders, judgment sums in the back 40%.
func claimAmountPrecise(text string, lang Language, threshold float64) string {
	total := runeLen(text)
	frontEnd := minInt(total*3/10, 10000)
	backStart := maxInt(total*7/10, total-8000)

	front := extractAmountsByKeywords(sliceRunes(text, 0, frontEnd), lang, amountClaim, threshold)
	back := extractAmountsByKeywords(sliceRunes(text, backStart, total), lang, amountClaim, threshold)
	return combineAmountResults([]string{front, back})
}

func judgmentAmountPrecise(text string, lang Language, threshold float64) string {
	total := runeLen(text)
	backStart := maxInt(total*6/10, total-12000)
	return extractAmountsByKeywords(sliceRunes(text, backStart, total), lang, amountJudgment, threshold)
}

func claimAmountExtended(text string, lang Language, threshold float64) string {
	total := runeLen(text)
	frontEnd := minInt(total*5/10, 15000)

	front := extractAmountsByKeywords(sliceRunes(text, 0, frontEnd), lang, amountClaim, threshold)
	middle := extractAmountsByKeywords(sliceRunes(text, total*3/10, total*8/10), lang, amountClaim, threshold)
	return combineAmountResults([]string{front, middle})
}

func judgmentAmountExtended(text string, lang Language, threshold float64) string {
	total := runeLen(text)
	return extractAmountsByKeywords(sliceRunes(text, total*4/10, total*9/10), lang, amountJudgment, threshold)
}

func claimAmountField(lang Language, cfg Config) fieldSpec {
	return fieldSpec{
		field:    "claim_amount",
		sentinel: SentinelAmount,
		strategies: []Strategy{
			{Name: "precise-window", Region: RegionFull, Run: func(text string) (string, bool) {
				r := claimAmountPrecise(text, lang, cfg.PreciseScore)
				return r, r != ""
			}},
			{Name: "extended-window", Region: RegionFull, Run: func(text string) (string, bool) {
				r := claimAmountExtended(text, lang, cfg.ExtendedScore)
				return r, r != ""
			}},
			{Name: "loose-fulltext", Region: RegionFull, Run: func(text string) (string, bool) {
				r := extractAmountsByKeywords(text, lang, amountClaim, cfg.LooseScore)
				return r, r != ""
			}},
		},
	}
}

func judgmentAmountField(lang Language, cfg Config) fieldSpec {
	return fieldSpec{
		field:    "judgment_amount",
		sentinel: SentinelAmount,
		strategies: []Strategy{
			{Name: "precise-window", Region: RegionFull, Run: func(text string) (string, bool) {
				r := judgmentAmountPrecise(text, lang, cfg.PreciseScore)
				return r, r != ""
			}},
			{Name: "extended-window", Region: RegionFull, Run: func(text string) (string, bool) {
				r := judgmentAmountExtended(text, lang, cfg.ExtendedScore)
				return r, r != ""
			}},
			{Name: "loose-fulltext", Region: RegionFull, Run: func(text string) (string, bool) {
				r := extractAmountsByKeywords(text, lang, amountJudgment, cfg.LooseScore)
				return r, r != ""
			}},
		},
	}
}
