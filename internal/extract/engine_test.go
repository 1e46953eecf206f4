package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const sampleEnglishJudgment = `IN THE HIGH COURT OF THE
HONG KONG SPECIAL ADMINISTRATIVE REGION
COURT OF FIRST INSTANCE
ACTION NO 1812 OF 2022

____________

BETWEEN

	CHEUNG WING HONG	Plaintiff

	and

	CAPITAL CENTURY TEXTILE COMPANY LIMITED	1st Defendant
	LAI SIU KUEN	2nd Defendant

____________

Before: Maria Yuen, J. in Chambers
Date of Hearing: 3 May 2023
Date of Judgment: 12 June 2023

JUDGMENT

1. This is an action for breach of contract arising from a series of textile supply agreements made between the parties in 2019. The plaintiff seeks damages in the sum of HK$1,250,000 against the defendants for their failure to deliver conforming goods under the agreements.

2. The plaintiff carried on business as a garment wholesaler in Kowloon. The 1st defendant was at all material times a textile manufacturer in Tsuen Wan and the 2nd defendant was its managing director, who gave a personal guarantee for the performance of the supply agreements.

3. Under the agreements the 1st defendant undertook to deliver dyed cotton fabric of a specified grade in monthly consignments. The plaintiff relied on those consignments to fulfil its own forward contracts with overseas buyers, a fact well known to both defendants at the time the agreements were made.

4. From March 2020 onwards the consignments fell short of the contractual grade. The plaintiff rejected three consecutive consignments and gave notice requiring the defects to be remedied. The defendants did not remedy the defects and deliveries ceased altogether by June 2020.

5. The defendants advanced two answers at trial. First, they said the fabric delivered was of merchantable quality and that the plaintiff had waived any right to reject by accepting earlier consignments. Secondly, they said the guarantee was unenforceable for want of consideration.

6. Neither answer withstands scrutiny. The contemporaneous correspondence shows the plaintiff complained promptly on each occasion, and the inspection reports confirm the fabric fell below the specified grade. The waiver argument was not pleaded and is in any event inconsistent with the express terms of the agreements.

7. As to the guarantee, the continued supply of fabric to the 1st defendant after the date of the guarantee was ample consideration. The 2nd defendant signed the document with the benefit of independent advice and the plain words of the instrument bind him.

8. The plaintiff proved its loss through its accountant, whose evidence I accept. The shortfall on the resale contracts, after credit for the goods actually delivered, comes to the figure claimed.

9. For these reasons, I enter judgment for the plaintiff against the 1st and 2nd defendants in the sum of HK$850,000 together with interest at judgment rate from the date of the writ.

10. It is ordered that the defendants do pay the plaintiff the costs of this action, summarily assessed at HK$120,000.

Mr Julian Lam, instructed by Messrs Wong & Partners, for the plaintiff
Mr Bernard Chow, instructed by Messrs Tang & Associates, for the 1st and 2nd defendants
`

const sampleChineseJudgment = `香港特別行政區高等法院原訟法庭
民事訴訟 2019年第1289號
判案書

聆訊日期：2019年5月20日
判案書日期：2019年6月1日

1. 本案原告人陳大文起訴第一被告人黃志強，追討欠款。原告人要求被告人賠償港幣120萬元，連同利息及訟費。

2. 被告人聲稱有關款項屬於餽贈而非借貸，法庭不接納此說法。雙方就借貸協議的條款及還款安排提出爭議，本庭經詳細考慮所有書面及口頭證據後，認為原告人的陳述前後一致且可信，被告人未能就款項的性質提出合理解釋，亦未能提交任何文件證明其說法。本案的爭議焦點在於雙方之間是否存在具法律約束力的借貸協議，以及被告人是否有責任償還有關款項。

3. 根據雙方提交的文件，原告人於二零一八年十月透過銀行轉帳向被告人交付有關款項，雙方其後多次會面商討還款安排，原告人亦多次以書面形式催促被告人履行承諾，惟被告人一直沒有回應。銀行提供的往來紀錄顯示，有關款項於同月內分三筆轉入被告人的戶口，與原告人所述的安排完全脗合。本庭認為，有關轉帳紀錄與原告人的證供脗合，足以支持原告人的申索。

4. 被告人在盤問下承認曾收取有關款項，但未能解釋為何從未就所謂餽贈作出任何書面確認，其證供在多個重要環節上前後矛盾。此外，被告人聲稱餽贈乃基於雙方多年交情，但在庭上未能就雙方何時相識及交往細節作出連貫描述，其電話短訊內容亦與此說法明顯不符。本庭裁定被告人的說法不可信，原告人與被告人之間確實存在口頭借貸協議，被告人有責任償還有關款項。

5. 綜上所述，本庭判令被告人支付港幣80萬元及利息，訟費由被告人承擔。

原告人: 由張三律師事務所委派李四律師代表
第一被告人: 無律師代表，親自行事

(陳美蘭)
高等法院原訟法庭法官`

func TestExtractEnglishJudgment(t *testing.T) {
	engine := NewEngine()
	rec := engine.Extract(sampleEnglishJudgment, "/data/judgments/HCA001812_2022.pdf")

	if rec.Language != LanguageEnglish {
		t.Errorf("Expected english, got %s", rec.Language)
	}
	if rec.FileName != "HCA001812_2022.pdf" {
		t.Errorf("Expected base file name, got %q", rec.FileName)
	}
	if rec.FilePath != "/data/judgments/HCA001812_2022.pdf" {
		t.Errorf("Expected full file path, got %q", rec.FilePath)
	}
	if rec.DocumentType != "HCA" {
		t.Errorf("Expected document type HCA, got %q", rec.DocumentType)
	}
	if rec.CaseNumber != "ACTION NO 1812 OF 2022" {
		t.Errorf("Expected repaired action line, got %q", rec.CaseNumber)
	}
	if rec.CourtName != "HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION COURT OF FIRST INSTANCE" {
		t.Errorf("Unexpected court name %q", rec.CourtName)
	}
	if rec.TrialDate != "3 May 2023" {
		t.Errorf("Expected hearing date, got %q", rec.TrialDate)
	}
	if rec.Plaintiff != "CHEUNG WING HONG" {
		t.Errorf("Expected single plaintiff as bare name, got %q", rec.Plaintiff)
	}
	wantDefendant := "CAPITAL CENTURY TEXTILE COMPANY LIMITED (1st Defendant) | LAI SIU KUEN (2nd Defendant)"
	if rec.Defendant != wantDefendant {
		t.Errorf("Expected numbered defendants %q, got %q", wantDefendant, rec.Defendant)
	}
	if rec.Judge != "Maria Yuen" {
		t.Errorf("Expected judge name without title, got %q", rec.Judge)
	}
	if rec.ClaimAmount != "HK$1,250,000" {
		t.Errorf("Expected claim amount HK$1,250,000, got %q", rec.ClaimAmount)
	}
	if rec.JudgmentAmount != "HK$850,000" {
		t.Errorf("Expected judgment amount HK$850,000, got %q", rec.JudgmentAmount)
	}
	if !strings.Contains(rec.JudgmentResult, "defendants do pay") {
		t.Errorf("Expected order text in judgment result, got %q", rec.JudgmentResult)
	}
	if !strings.Contains(rec.Lawyer, "instructed by") {
		t.Errorf("Expected representation segment, got %q", rec.Lawyer)
	}
	if !strings.Contains(rec.CaseType, "breach of contract") {
		t.Errorf("Expected narrative evidence in case type, got %q", rec.CaseType)
	}
	if rec.TextLength != utf8.RuneCountInString(sampleEnglishJudgment) {
		t.Errorf("Expected rune length %d, got %d", utf8.RuneCountInString(sampleEnglishJudgment), rec.TextLength)
	}
}

func TestExtractChineseJudgment(t *testing.T) {
	engine := NewEngine()
	rec := engine.Extract(sampleChineseJudgment, "HCA001289_2019.pdf")

	if rec.Language != LanguageChinese {
		t.Fatalf("Expected chinese, got %s", rec.Language)
	}
	if rec.DocumentType != "HCA" {
		t.Errorf("Expected document type HCA, got %q", rec.DocumentType)
	}
	if rec.CaseNumber != "民事訴訟 2019 年第 1289 號" {
		t.Errorf("Expected standardized case number, got %q", rec.CaseNumber)
	}
	if rec.CourtName != "香港特別行政區高等法院原訟法庭" {
		t.Errorf("Unexpected court name %q", rec.CourtName)
	}
	if rec.TrialDate != "2019年5月20日" {
		t.Errorf("Expected hearing date, got %q", rec.TrialDate)
	}
	if rec.Plaintiff != "陳大文" {
		t.Errorf("Expected plaintiff from litigation narrative, got %q", rec.Plaintiff)
	}
	if rec.Defendant != "黃志強 (第1被告人)" {
		t.Errorf("Expected numbered defendant, got %q", rec.Defendant)
	}
	if rec.Judge != "陳美蘭" {
		t.Errorf("Expected judge from footer signature, got %q", rec.Judge)
	}
	if rec.PlaintiffLawyer != "由張三律師事務所委派李四律師代表" {
		t.Errorf("Expected plaintiff lawyer clause, got %q", rec.PlaintiffLawyer)
	}
	if rec.DefendantLawyer != "無律師代表，親自行事" {
		t.Errorf("Expected in-person clause for defendant, got %q", rec.DefendantLawyer)
	}
	wantLawyer := "原告人: 由張三律師事務所委派李四律師代表\n第一被告人: 無律師代表，親自行事"
	if rec.Lawyer != wantLawyer {
		t.Errorf("Expected recomposed lawyer block %q, got %q", wantLawyer, rec.Lawyer)
	}
	if rec.ClaimAmount != "HK$1,200,000" {
		t.Errorf("Expected claim amount HK$1,200,000, got %q", rec.ClaimAmount)
	}
	if rec.JudgmentAmount != "HK$800,000" {
		t.Errorf("Expected judgment amount HK$800,000, got %q", rec.JudgmentAmount)
	}
	if !strings.Contains(rec.JudgmentResult, "判令") {
		t.Errorf("Expected order text in judgment result, got %q", rec.JudgmentResult)
	}
	if !strings.Contains(rec.CaseType, "爭議") {
		t.Errorf("Expected narrative evidence in case type, got %q", rec.CaseType)
	}
}

func TestExtractEmptyText(t *testing.T) {
	engine := NewEngine()
	rec := engine.Extract("", "empty.pdf")

	if rec.Language != LanguageEnglish {
		t.Errorf("Empty text should default to english, got %s", rec.Language)
	}
	if rec.CaseNumber != SentinelText {
		t.Errorf("Expected text sentinel, got %q", rec.CaseNumber)
	}
	if rec.ClaimAmount != SentinelAmount || rec.JudgmentAmount != SentinelAmount {
		t.Errorf("Expected amount sentinels, got %q / %q", rec.ClaimAmount, rec.JudgmentAmount)
	}
	if rec.TextLength != 0 {
		t.Errorf("Expected zero text length, got %d", rec.TextLength)
	}
	if rec.DocumentType != DocumentTypeGeneric {
		t.Errorf("Expected GENERIC document type, got %q", rec.DocumentType)
	}
}

func TestExtractMissingCaseNumber(t *testing.T) {
	text := `IN THE DISTRICT COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION

BETWEEN

	WONG MEI LING	Plaintiff

	and

	CHAN KA FAI	Defendant

____________

Before: Deputy District Judge Lo
Date of Hearing: 8 February 2021
`
	engine := NewEngine()
	rec := engine.Extract(text, "judgment.pdf")

	if rec.CaseNumber != SentinelText {
		t.Errorf("Missing case number must resolve to sentinel, got %q", rec.CaseNumber)
	}
	if rec.Plaintiff != "WONG MEI LING" {
		t.Errorf("Other fields should still extract, got plaintiff %q", rec.Plaintiff)
	}
}

func TestExtractDetailedAttempts(t *testing.T) {
	engine := NewEngine()
	_, attempts := engine.ExtractDetailed(sampleEnglishJudgment, "HCA001812_2022.pdf")

	if len(attempts) != 11 {
		t.Fatalf("Expected one attempt per catalog field, got %d", len(attempts))
	}
	first := attempts[0]
	if first.Field != FieldCaseNumber {
		t.Errorf("Expected case_number first, got %s", first.Field)
	}
	if !first.Accepted || first.Strategy != 0 || first.Name != "action-line-scan" {
		t.Errorf("Expected action-line-scan acceptance, got %+v", first)
	}

	for _, a := range attempts {
		if a.Field == FieldJudge {
			if a.Name != "before-block" {
				t.Errorf("Expected before-block to resolve the judge, got %q", a.Name)
			}
		}
	}
}

func TestExtractDetailedMissRecorded(t *testing.T) {
	engine := NewEngine()
	_, attempts := engine.ExtractDetailed("Short note with no caption at all. The parties settled their own dispute privately before any writ was issued and nothing further happened in this matter.", "note.pdf")

	var caseAttempt *Attempt
	for i := range attempts {
		if attempts[i].Field == FieldCaseNumber {
			caseAttempt = &attempts[i]
		}
	}
	if caseAttempt == nil {
		t.Fatal("Expected a case_number attempt")
	}
	if caseAttempt.Accepted || caseAttempt.Strategy != -1 {
		t.Errorf("Exhausted field must record a miss, got %+v", caseAttempt)
	}
	if caseAttempt.Value != SentinelText {
		t.Errorf("Exhausted field must carry its sentinel, got %q", caseAttempt.Value)
	}
}

func TestFieldLookup(t *testing.T) {
	engine := NewEngine()
	doc := engine.Prepare(sampleEnglishJudgment, "HCA001812_2022.pdf")

	att := engine.Field(doc, FieldJudge)
	if att.Value != "Maria Yuen" {
		t.Errorf("Expected Maria Yuen, got %q", att.Value)
	}

	unknown := engine.Field(doc, "no_such_field")
	if unknown.Accepted || unknown.Strategy != -1 {
		t.Errorf("Unknown field must miss, got %+v", unknown)
	}
}

func TestPrepareRegions(t *testing.T) {
	engine := NewEngine()

	en := engine.Prepare(sampleEnglishJudgment, "a.pdf")
	if en.Language != LanguageEnglish {
		t.Fatalf("Expected english, got %s", en.Language)
	}
	if en.Regions.Full != sampleEnglishJudgment {
		t.Error("Full region must hold the entire text")
	}
	if en.Regions.Header != sampleEnglishJudgment {
		t.Error("Header of a short document folds to the full text")
	}

	zh := engine.Prepare(sampleChineseJudgment, "b.pdf")
	if zh.Language != LanguageChinese {
		t.Fatalf("Expected chinese, got %s", zh.Language)
	}
	if zh.Regions.Footer != sampleChineseJudgment {
		t.Error("Chinese footer of a short document folds to the full text")
	}
}

func TestExtractCorrigendum(t *testing.T) {
	text := `IN THE HIGH COURT OF THE
HONG KONG SPECIAL ADMINISTRATIVE REGION
COURT OF FIRST INSTANCE
ACTION NO 891 OF 2020

BETWEEN

	GOLDEN HARVEST LOGISTICS LIMITED	Plaintiff

	and

	TSANG WAI KEUNG	Defendant

C O R R I G E N D U M

Please note the following corrigendum in the Judgment dated 5 March 2021 handed down by this court:

At page 3, line 2, "HK$1,000" be corrected to "HK$10,000".

Date of Corrigendum: 12 March 2021
`
	engine := NewEngine()
	rec := engine.Extract(text, "HCA000891_2020.pdf")

	if rec.DocumentType != DocumentTypeCorrigendum {
		t.Errorf("Expected Corrigendum document type, got %q", rec.DocumentType)
	}
	if rec.CaseType != CaseTypeCorrigendum {
		t.Errorf("Expected corrigendum case type marker, got %q", rec.CaseType)
	}
	if rec.JudgmentResult != JudgmentResultCorrigendum {
		t.Errorf("Expected corrigendum judgment marker, got %q", rec.JudgmentResult)
	}
	if rec.ClaimAmount != "" || rec.JudgmentAmount != "" {
		t.Errorf("Corrigendum notices carry no amounts, got %q / %q", rec.ClaimAmount, rec.JudgmentAmount)
	}
	if rec.CaseNumber != "ACTION NO 891 OF 2020" {
		t.Errorf("Identifying fields still extract, got %q", rec.CaseNumber)
	}
	if rec.Plaintiff != "GOLDEN HARVEST LOGISTICS LIMITED" {
		t.Errorf("Expected plaintiff, got %q", rec.Plaintiff)
	}
	if rec.CorrectedDocumentType != "Judgment" || rec.OriginalDocumentDate != "5 March 2021" {
		t.Errorf("Expected corrected document metadata, got %q / %q", rec.CorrectedDocumentType, rec.OriginalDocumentDate)
	}
	if rec.CorrigendumDate != "12 March 2021" {
		t.Errorf("Expected corrigendum date, got %q", rec.CorrigendumDate)
	}
	if !strings.Contains(rec.CorrectionSummary, "HK$1,000 → HK$10,000") {
		t.Errorf("Expected correction pair in summary, got %q", rec.CorrectionSummary)
	}
}

func TestEngineSharedAcrossDocuments(t *testing.T) {
	engine := NewEngine()

	en := engine.Extract(sampleEnglishJudgment, "HCA001812_2022.pdf")
	zh := engine.Extract(sampleChineseJudgment, "HCA001289_2019.pdf")
	en2 := engine.Extract(sampleEnglishJudgment, "HCA001812_2022.pdf")

	if en.Language == zh.Language {
		t.Error("Expected different languages for the two documents")
	}
	if en != en2 {
		t.Error("Extraction must be deterministic for identical input")
	}
}
