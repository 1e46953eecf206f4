package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hkjudgments/courtextract/internal/extract"
)

const systemPrompt = "You are a professional Hong Kong legal document analyst. " +
	"Always return valid JSON format. Pay special attention to lawyer " +
	"information extraction from provided segments."

const analysisRequirements = `## Analysis requirements:

### 1. case_type
Choose the most appropriate type:
- "Contract Dispute", "Trust Dispute", "Appeal", "Setting Aside Application"
- "Security for Costs Application", "Mareva Injunction Discharge Application"
- "Commercial Dispute", "Debt Recovery", "Amendment Application"
- "Miscellaneous Proceedings", "Civil Action" (default)

### 2. judgment_result
Use EXACTLY one of these 5 labels:
- "Win": plaintiff succeeds, defendant ordered to pay or perform
- "Lose": plaintiff application dismissed or refused
- "Appeal Dismissed": appeal rejected
- "Judgment Affirmed": original judgment upheld
- "Plaintiff Withdrawn": plaintiff withdraws the action

### 3. claim_amount
Total amount claimed against all defendants by the plaintiff, with currency
(HK$, USD, RMB). Separate multiple amounts with commas. Use "unknown" if
unclear.

### 4. judgment_amount
Total amount the court ordered the defendants to pay, with currency.
Use "unknown" if unclear.

### 5. plaintiff_lawyer and defendant_lawyer
From the lawyer paragraph, extract each side's lawyers.
Format: "Lawyer Name (Law Firm)", comma separated when a side has several.

### 6. judgment_relationships
Express the claim, award and costs relationships as triples:
- claim: (plaintiff/applicant, claims damages from, defendant/respondent, amount)
- award: (defendant/respondent, ordered to pay, plaintiff/applicant, amount)
- costs: (losing party, pay costs to, winning party, amount or percentage)

Example:
"(Plaintiff, claims damages from, 1st Defendant, HK$100,000); (2nd Defendant, ordered to pay, Plaintiff, HK$50,000); (1st Defendant, pay costs to, Plaintiff, 70%)"

## Output format:
Return ONLY a JSON object, no explanations:

{
  "case_type": "",
  "judgment_result": "",
  "claim_amount": "",
  "judgment_amount": "",
  "plaintiff_lawyer": "",
  "defendant_lawyer": "",
  "judgment_relationships": ""
}`

// buildPrompt renders the per-case analysis request. The lawyer paragraph
// extracted by the engine rides along verbatim when it carries enough text
// for the model to split into per-side entries.
func buildPrompt(rec extract.Record) string {
	var b strings.Builder
	b.WriteString("Analyze the following Hong Kong court document information and provide standardized results.\n\n")
	b.WriteString("## Extracted document information:\n")
	fmt.Fprintf(&b, "- Case Number: %s\n", rec.CaseNumber)
	fmt.Fprintf(&b, "- Plaintiff: %s\n", rec.Plaintiff)
	fmt.Fprintf(&b, "- Defendant: %s\n", rec.Defendant)
	fmt.Fprintf(&b, "- Judge: %s\n", rec.Judge)
	fmt.Fprintf(&b, "- Case Type Text: %s\n", rec.CaseType)
	fmt.Fprintf(&b, "- Judgment Text: %s\n", rec.JudgmentResult)
	fmt.Fprintf(&b, "- Claim Amount Text: %s\n", rec.ClaimAmount)
	fmt.Fprintf(&b, "- Judgment Amount Text: %s\n", rec.JudgmentAmount)
	b.WriteString("\n## Lawyer information:\n")

	segment := strings.TrimSpace(rec.Lawyer)
	if utf8.RuneCountInString(segment) > 10 {
		b.WriteString("Separate the plaintiff and defendant lawyers from the following paragraph.\n\n")
		b.WriteString("Lawyer paragraph:\n")
		b.WriteString(segment)
		b.WriteString("\n")
	} else {
		b.WriteString("No lawyer paragraph was found.\n")
	}

	b.WriteString("\n")
	b.WriteString(analysisRequirements)
	return b.String()
}
