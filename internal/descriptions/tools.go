package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Extraction Tools
	JudgmentExtractFileDescription = `Extract structured case fields from a single Hong Kong court judgment PDF.

**When to use:** Need the case number, parties, judge, amounts and the other caption fields from one judgment document.

**Why it's useful:** Runs the full layered extraction pipeline (language detection, caption parsing, footer disambiguation, amount roll-up) and returns one structured record, with sentinel values marking fields the document does not state.

**Examples:**
• Case triage: "Extract fields from HCA001812_2022.pdf to see the parties and claim amount"
• Docket building: "Pull the case number and judge from each new judgment before filing"
• Bilingual handling: "Extract 判案書.pdf - Chinese judgments are detected and parsed automatically"

**Common workflows:**
1. Intake: Validate file → Extract fields → Review record → Store in docket
2. Research: Extract fields → Check judgment amounts → Pull full text only when relevant
3. Audit: Extract fields → Compare against registry data → Flag mismatches

**Best practices:** Validate the file first with judgment_validate_file; empty strings mean the field is absent in the document, "unknown" marks amounts that could not be standardized.`

	JudgmentExtractDirectoryDescription = `Run batch field extraction over every judgment PDF in a directory.

**When to use:** Need records for a whole folder of judgments rather than one file at a time.

**Why it's useful:** Walks the directory with a worker pool, tolerates corrupt files without aborting, and returns every record plus a run summary with language, court and completeness statistics.

**Examples:**
• Corpus building: "Extract all judgments under /data/2022/ for the case database"
• Completeness check: "Process /data/hca/ and report which fields extract poorly"
• Migration: "Re-extract the archive after the pattern tables were extended"

**Common workflows:**
1. Bulk Processing: Extract directory → Review summary → Chase the failures separately
2. Quality Tracking: Extract directory → Compare field completeness over time
3. Selection: Extract directory → Filter records by court or amount → Retrieve matching files

**Best practices:** Failures are listed per file and never abort the run; large directories take time, so prefer the batch CLI for very big corpora.`

	JudgmentDetectLanguageDescription = `Classify raw judgment text as English or Chinese.

**When to use:** Have text from another source (OCR, copy-paste, a database) and need to know which extraction patterns apply.

**Why it's useful:** Uses the same classifier as the extraction pipeline - legal keyword scan first, Han-character ratio as fallback - so the answer matches what extraction would do.

**Examples:**
• Pre-check: "Classify this pasted judgment text before asking for field extraction"
• Routing: "Detect language of OCR output to choose the right review queue"

**Best practices:** The classifier reads only the head of the text; pass at least the first few hundred characters.`

	JudgmentValidateFileDescription = `Verify a judgment PDF is structurally valid and readable before extraction.

**When to use:** Before extracting from unknown or user-supplied files, or when extraction fails and you need to know whether the file itself is the problem.

**Why it's useful:** Catches empty files, oversize files, wrong extensions and corrupt PDF structure early, with a specific message for each failure.

**Examples:**
• Batch safety: "Validate all PDFs in /uploads/ before bulk extraction"
• Triage: "Check why HCA000123_2019.pdf failed - corrupt file or extraction gap?"

**Common workflows:**
1. Automated Processing: Validate → Extract if valid → Handle rejects separately
2. Quality Control: Validate → Report issues → Fix or discard bad files

**Best practices:** Validation parses the PDF structure but never extracts text, so it is cheap enough to run on everything first.`

	JudgmentServerInfoDescription = `Get server status, configuration, directory contents, and available tools.

**When to use:** Starting a session, troubleshooting missing files, or discovering what the server can do.

**Why it's useful:** Reports the configured judgment directory and its PDF count, the file-size limit, and every tool with usage guidance.

**Best practices:** Run at the start of a session to confirm the server sees the directory you expect.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"judgment_extract_file":      JudgmentExtractFileDescription,
	"judgment_extract_directory": JudgmentExtractDirectoryDescription,
	"judgment_detect_language":   JudgmentDetectLanguageDescription,
	"judgment_validate_file":     JudgmentValidateFileDescription,
	"judgment_server_info":       JudgmentServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
