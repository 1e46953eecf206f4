package extract

// Field names of the record catalog, in extraction order.
const (
	FieldCaseNumber     = "case_number"
	FieldTrialDate      = "trial_date"
	FieldCourtName      = "court_name"
	FieldPlaintiff      = "plaintiff"
	FieldDefendant      = "defendant"
	FieldJudge          = "judge"
	FieldCaseType       = "case_type"
	FieldLawyer         = "lawyer"
	FieldJudgmentResult = "judgment_result"
	FieldClaimAmount    = "claim_amount"
	FieldJudgmentAmount = "judgment_amount"
)

// Values written on corrigendum notices in place of analysis fields.
const (
	DocumentTypeCorrigendum   = "Corrigendum"
	CaseTypeCorrigendum       = "Corrigendum Document"
	JudgmentResultCorrigendum = "N/A - Corrigendum"
)

type fieldTable struct {
	specs []fieldSpec
}

func (t fieldTable) lookup(field string) (fieldSpec, bool) {
	for _, spec := range t.specs {
		if spec.field == field {
			return spec, true
		}
	}
	return fieldSpec{}, false
}

func newEnglishTable(cfg Config) fieldTable {
	return fieldTable{specs: []fieldSpec{
		englishCaseNumberField(cfg),
		englishTrialDateField(cfg),
		englishCourtField(cfg),
		englishPlaintiffField(cfg),
		englishDefendantField(cfg),
		englishJudgeField(cfg),
		englishCaseTypeField(cfg),
		englishLawyerField(cfg),
		englishJudgmentResultField(cfg),
		claimAmountField(LanguageEnglish, cfg),
		judgmentAmountField(LanguageEnglish, cfg),
	}}
}

func newChineseTable(cfg Config) fieldTable {
	return fieldTable{specs: []fieldSpec{
		chineseCaseNumberField(cfg),
		chineseTrialDateField(cfg),
		chineseCourtField(cfg),
		chinesePlaintiffField(cfg),
		chineseDefendantField(cfg),
		chineseJudgeField(cfg),
		chineseCaseTypeField(cfg),
		chineseLawyerField(cfg),
		chineseJudgmentResultField(cfg),
		claimAmountField(LanguageChinese, cfg),
		judgmentAmountField(LanguageChinese, cfg),
	}}
}

// Engine extracts the field catalog from court judgment text. Both language
// tables are built once at construction and never mutated, so a single Engine
// is safe for concurrent use across documents.
type Engine struct {
	cfg     Config
	english fieldTable
	chinese fieldTable
}

// NewEngine creates an engine with the default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates an engine with a custom configuration.
func NewEngineWithConfig(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		english: newEnglishTable(cfg),
		chinese: newChineseTable(cfg),
	}
}

func (e *Engine) table(lang Language) fieldTable {
	if lang == LanguageChinese {
		return e.chinese
	}
	return e.english
}

// Prepare classifies the document's language and slices its scan regions.
func (e *Engine) Prepare(text, fileName string) *Document {
	lang := e.cfg.DetectLanguage(text)
	return &Document{
		Text:     text,
		FileName: fileName,
		Language: lang,
		Regions:  e.cfg.Slice(text, lang),
	}
}

// Field resolves a single field of the catalog against a prepared document.
// The returned attempt records which strategy was accepted; when every
// strategy missed, the value is the field's sentinel and Strategy is -1.
func (e *Engine) Field(doc *Document, field string) Attempt {
	spec, ok := e.table(doc.Language).lookup(field)
	if !ok {
		return Attempt{Field: field, Strategy: -1}
	}
	return spec.extract(doc)
}

// Extract resolves the whole catalog for one document. Content never causes
// an error: fields whose strategies all miss hold their sentinel values.
func (e *Engine) Extract(text, fileName string) Record {
	rec, _ := e.ExtractDetailed(text, fileName)
	return rec
}

// ExtractDetailed is Extract plus the per-field resolution attempts, in
// catalog order.
func (e *Engine) ExtractDetailed(text, fileName string) (Record, []Attempt) {
	rec := newRecord(text, fileName)

	if text == "" {
		rec.Language = e.cfg.DetectLanguage(text)
		rec.ClaimAmount = SentinelAmount
		rec.JudgmentAmount = SentinelAmount
		return rec, nil
	}

	doc := e.Prepare(text, fileName)
	rec.Language = doc.Language
	table := e.table(doc.Language)

	if IsCorrigendum(text) {
		return e.extractCorrigendum(doc, table, rec)
	}

	var attempts []Attempt
	for _, spec := range table.specs {
		attempt := spec.extract(doc)
		attempts = append(attempts, attempt)
		rec.set(attempt.Field, attempt.Value)
	}

	if doc.Language == LanguageChinese {
		e.applyFooterFields(&rec, text)
	}
	return rec, attempts
}

// extractCorrigendum handles correction notices: only the identifying fields
// are extracted, the analysis fields are fixed markers, and the correction
// metadata is pulled from the notice body.
func (e *Engine) extractCorrigendum(doc *Document, table fieldTable, rec Record) (Record, []Attempt) {
	rec.DocumentType = DocumentTypeCorrigendum
	rec.CaseType = CaseTypeCorrigendum
	rec.JudgmentResult = JudgmentResultCorrigendum
	rec.ClaimAmount = ""
	rec.JudgmentAmount = ""

	var attempts []Attempt
	for _, field := range []string{
		FieldCaseNumber, FieldTrialDate, FieldCourtName, FieldPlaintiff, FieldDefendant,
	} {
		spec, ok := table.lookup(field)
		if !ok {
			continue
		}
		attempt := spec.extract(doc)
		attempts = append(attempts, attempt)
		rec.set(attempt.Field, attempt.Value)
	}

	corrigendumDetails(doc.Text, &rec)
	return rec, attempts
}

// applyFooterFields overlays the Chinese footer pass onto the record. Party
// and judge values from the footer win when present; otherwise the pattern
// table's values stand. The split lawyer fields come from the footer alone.
func (e *Engine) applyFooterFields(rec *Record, text string) {
	f := extractFooterFields(text, e.cfg)

	if f.plaintiff != "" {
		rec.Plaintiff = f.plaintiff
	}
	if f.defendant != "" {
		rec.Defendant = f.defendant
	}
	if f.judge != "" {
		rec.Judge = f.judge
	}

	rec.PlaintiffLawyer = f.plaintiffLawyer
	rec.DefendantLawyer = f.defendantLawyer
	if f.plaintiffLawyer != "" || f.defendantLawyer != "" {
		rec.Lawyer = "原告人: " + f.plaintiffLawyer + "\n第一被告人: " + f.defendantLawyer
	}
}

// set assigns a resolved field value to its record slot.
func (r *Record) set(field, value string) {
	switch field {
	case FieldCaseNumber:
		r.CaseNumber = value
	case FieldTrialDate:
		r.TrialDate = value
	case FieldCourtName:
		r.CourtName = value
	case FieldPlaintiff:
		r.Plaintiff = value
	case FieldDefendant:
		r.Defendant = value
	case FieldJudge:
		r.Judge = value
	case FieldCaseType:
		r.CaseType = value
	case FieldLawyer:
		r.Lawyer = value
	case FieldJudgmentResult:
		r.JudgmentResult = value
	case FieldClaimAmount:
		r.ClaimAmount = value
	case FieldJudgmentAmount:
		r.JudgmentAmount = value
	}
}
