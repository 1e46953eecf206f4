package extract

import "testing"

func TestScanActionLines(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "clean line",
			text: "COURT OF FIRST INSTANCE\nACTION NO 1812 OF 2022\n\nBETWEEN",
			want: "ACTION NO 1812 OF 2022",
			ok:   true,
		},
		{
			name: "split NO",
			text: "ACTION N O 1812 OF 2022",
			want: "ACTION NO 1812 OF 2022",
			ok:   true,
		},
		{
			name: "dotted NO",
			text: "ACTION NO. 181 OF 2022",
			want: "ACTION NO 181 OF 2022",
			ok:   true,
		},
		{
			name: "split year",
			text: "ACTION NO 1812 OF 20 22",
			want: "ACTION NO 1812 OF 2022",
			ok:   true,
		},
		{
			name: "torn across two lines",
			text: "ACTION NO 1812\nOF 2022",
			want: "ACTION NO 1812 OF 2022",
			ok:   true,
		},
		{
			name: "rebuilt from nearby year",
			text: "IN THE HIGH COURT\nACTION NO 1812\n\n2022\nBETWEEN",
			want: "ACTION NO 1812 OF 2022",
			ok:   true,
		},
		{
			name: "partial without year",
			text: "ACTION NO 1812",
			want: "ACTION NO 1812",
			ok:   true,
		},
		{
			name: "suffix letter",
			text: "ACTION NO 1812A OF 2022",
			want: "ACTION NO 1812A OF 2022",
			ok:   true,
		},
		{
			name: "no action line",
			text: "IN THE HIGH COURT OF THE\nHONG KONG SPECIAL ADMINISTRATIVE REGION",
			want: "",
			ok:   false,
		},
	}
	for _, tc := range cases {
		got, ok := scanActionLines(tc.text)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s: scanActionLines = %q, %v; want %q, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestHCASlashRewrite(t *testing.T) {
	engine := NewEngine()
	doc := engine.Prepare("IN THE HIGH COURT\nHCA 1812/2022\nBETWEEN\nA\tPlaintiff\nand\nB LIMITED\tDefendant\n", "a.pdf")

	att := engine.Field(doc, FieldCaseNumber)
	if !att.Accepted || att.Value != "ACTION NO 1812 OF 2022" {
		t.Fatalf("Expected rewritten HCA reference, got %+v", att)
	}
	if att.Strategy != 1 || att.Name != "hca-rewrite" {
		t.Errorf("Expected the second strategy to fire, got %d %q", att.Strategy, att.Name)
	}
}

func TestStandardizeChineseCaseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"民事訴訟 2019年第1289號", "民事訴訟 2019 年第 1289 號"},
		{"2020年第45號", "民事訴訟 2020 年第 45 號"},
		{"高院民事訴訟2018年第333號", "高院民事訴訟2018 年第 333 號"},
		{"民事訴訟  2019 年 第 1289 號", "民事訴訟 2019 年第 1289 號"},
		{"第123號", "第123號"},
	}
	for _, tc := range cases {
		if got := standardizeChineseCaseNumber(tc.in); got != tc.want {
			t.Errorf("standardizeChineseCaseNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPositionedChineseCaseNumber(t *testing.T) {
	text := "香港特別行政區高等法院原訟法庭\n案件編號: HCMP 1234/2020\n申請人 陳一\n"
	got, ok := positionedChineseCaseNumber(text)
	if !ok || got != "案件編號: HCMP 1234/2020" {
		t.Errorf("Expected the labelled reference, got %q ok=%v", got, ok)
	}

	if _, ok := positionedChineseCaseNumber("沒有法院標題的文件\n2020年第45號\n原告人 陳一"); ok {
		t.Error("Without a court anchor the window search must miss")
	}
	if _, ok := positionedChineseCaseNumber("高等法院原訟法庭\n2020年第45號"); ok {
		t.Error("Without a party anchor the window search must miss")
	}
}

func TestChineseHeaderFallbacks(t *testing.T) {
	engine := NewEngine()
	doc := engine.Prepare("香港法院判決書\n檔案 HCA001812_2022\n本案雙方已達成和解。", "x.pdf")
	if doc.Language != LanguageChinese {
		t.Fatalf("Expected chinese, got %s", doc.Language)
	}

	att := engine.Field(doc, FieldCaseNumber)
	if !att.Accepted || att.Value != "HCA001812_2022" {
		t.Fatalf("Expected the file-reference fallback, got %+v", att)
	}
	if att.Strategy != 2 || att.Name != "header-fallbacks" {
		t.Errorf("Expected the third strategy to fire, got %d %q", att.Strategy, att.Name)
	}
}
