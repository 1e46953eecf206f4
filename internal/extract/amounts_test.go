package extract

import "testing"

func TestParseAmountMatch(t *testing.T) {
	cases := []struct {
		in       string
		value    float64
		currency string
		ok       bool
	}{
		{"HK$1,250,000", 1250000, "HK$", true},
		{"US$1,000.50", 1000.50, "USD", true},
		{"USD2 million", 2000000, "USD", true},
		{"RMB75,000", 75000, "RMB", true},
		{"人民幣3億", 300000000, "RMB", true},
		{"港幣120萬", 1200000, "HK$", true},
		{"$500", 500, "$", true},
		{"3 billion dollars", 3000000000, "$", true},
		{"no figures here", 0, "", false},
	}
	for _, tc := range cases {
		value, currency, ok := parseAmountMatch(tc.in)
		if ok != tc.ok {
			t.Errorf("parseAmountMatch(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if value != tc.value || currency != tc.currency {
			t.Errorf("parseAmountMatch(%q) = %v %q, want %v %q", tc.in, value, currency, tc.value, tc.currency)
		}
	}
}

func TestFormatThousands(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		850000:  "850,000",
		1234567: "1,234,567",
	}
	for v, want := range cases {
		if got := formatThousands(v); got != want {
			t.Errorf("formatThousands(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestRollUpAmountsSingleCurrencySums(t *testing.T) {
	got := rollUpAmounts("本庭判令被告人支付港幣50萬其後再支付港幣30萬以及相關安排")
	if got != "HK$800,000" {
		t.Errorf("Expected the shared currency to sum, got %q", got)
	}
}

func TestRollUpAmountsMixedCurrenciesKeepLargest(t *testing.T) {
	got := rollUpAmounts("the plaintiff paid HK$100,000 and separately USD50,000 on account")
	if got != "HK$100,000" {
		t.Errorf("Expected the largest single figure, got %q", got)
	}
}

func TestRollUpAmountsBounds(t *testing.T) {
	if got := rollUpAmounts("HK$5,000"); got != "" {
		t.Errorf("Evidence under the length floor must roll up to nothing, got %q", got)
	}
	if got := rollUpAmounts("this text mentions no figures at all"); got != "" {
		t.Errorf("Text without amounts must roll up to nothing, got %q", got)
	}
}

func TestExtractAmountsByKeywordsThresholds(t *testing.T) {
	section := "HK$2,000,000 was paid for the property at Nathan Road in central Kowloon during March."

	if got := extractAmountsByKeywords(section, LanguageEnglish, amountClaim, 2.5); got != "" {
		t.Errorf("Weak context must not pass the precise threshold, got %q", got)
	}
	if got := extractAmountsByKeywords(section, LanguageEnglish, amountClaim, 1.0); got != "HK$2,000,000" {
		t.Errorf("Loose threshold should accept the early figure, got %q", got)
	}
	if got := extractAmountsByKeywords("HK$9,000 short", LanguageEnglish, amountClaim, 1.0); got != "" {
		t.Errorf("Sections under 50 runes are skipped, got %q", got)
	}
}

func TestCombineAmountResults(t *testing.T) {
	if got := combineAmountResults([]string{"HK$1,000,000", "", "USD500"}); got != "HK$1,000,000 | USD500" {
		t.Errorf("combineAmountResults = %q", got)
	}
	if got := combineAmountResults([]string{"", "   "}); got != "" {
		t.Errorf("Blank results must combine to nothing, got %q", got)
	}

	long := "the plaintiff claims the total outstanding balance of HK$1,000,000 together with contractual interest accrued"
	if got := combineAmountResults([]string{long, long}); got != long {
		t.Errorf("Identical long evidence must deduplicate, got %q", got)
	}
}
