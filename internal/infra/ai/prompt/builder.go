package prompt

import (
	"fmt"
	"strings"
	"time"

	domain "github.com/progcheck/progcheck/internal/domain/analysis"
)

// File markers wrap each submitted file so the model can tell where one
// file ends and the next begins. The name is repeated in the end marker.
const (
	beginMarker = "===== BEGIN FILE: %s ====="
	endMarker   = "===== END FILE: %s ====="
)

// untitled is rendered when the caller sent no title. Missing metadata
// is tolerated, never rejected.
const untitled = "(untitled program)"

// instructionBlock carries the five evaluation questions, the required
// output schema and the decision-priority rule. The runId and
// processedAt values are illustrative placeholders filled from the
// clock, not real request metadata.
const instructionBlock = `You are a strict program auditor reviewing a user-submitted application bundle. You must produce one valid JSON object only (no markdown, no commentary, no code fences).

Evaluate the program below and answer these five questions:
1. Scam check: does the code contain malicious or scam behavior (hidden redirects, credential theft, wallet draining, payment fraud, deceptive UI)?
2. Validity check: is each file syntactically valid for the language its file name implies?
3. Sensational check: does any code, string literal, or comment contain objectionable or sensational content?
4. Data collection check: does the code collect sensitive user data (contacts, location, credentials, device identifiers) without a purpose evident from the program itself?
5. Logic check: are there logical errors, or places where the code contradicts its own comments?

Choose finalDecision by this priority, exactly:
- if the scam check found anything -> "SCAM_DETECTED"
- else if the code is not syntactically valid -> "INVALID_FORMAT"
- else if any of the sensational, data collection, or logic checks found anything -> "CONTENT_WARNING"
- else -> "CLEAN"

Respond with a single JSON object following this schema (fill every field; issues arrays stay empty when a check passes):
{
  "runId": "AUD-%s-XXXX",
  "status": "SUCCESS" or "ERROR",
  "processedAt": "%s",
  "finalDecision": "SCAM_DETECTED" | "INVALID_FORMAT" | "CONTENT_WARNING" | "CLEAN",
  "summary": "<one paragraph verdict>",
  "reportDetails": {
    "scamCheck": {"valid": true, "issues": []},
    "validityCheck": {"valid": true, "issues": []},
    "sensationalCheck": {"valid": true, "issues": []},
    "dataCollectionCheck": {"valid": true, "issues": []},
    "logicCheck": {"valid": true, "issues": []}
  }
}`

// Render produces the full evaluation prompt for one bundle: the fixed
// instruction block, a program header line, then every file in input
// order wrapped by begin/end markers. Content is reproduced verbatim,
// no escaping, no truncation.
func Render(meta domain.ProgramMeta, files []domain.CodeFile, now time.Time) string {
	title := meta.Title
	if title == "" {
		title = untitled
	}

	var b strings.Builder
	fmt.Fprintf(&b, instructionBlock, now.Format("20060102"), now.UTC().Format(time.RFC3339))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Program title: %s\n", title)
	for _, f := range files {
		b.WriteString("\n")
		fmt.Fprintf(&b, beginMarker, f.FileName)
		b.WriteString("\n")
		b.WriteString(f.Content)
		b.WriteString("\n")
		fmt.Fprintf(&b, endMarker, f.FileName)
		b.WriteString("\n")
	}
	return b.String()
}

// Report mirrors the schema the instruction block asks the model to
// produce. The service never decodes into it; it keeps the schema text
// honest and gives tests a way to build well-formed stub completions.
type Report struct {
	RunID         string        `json:"runId"`
	Status        string        `json:"status"`
	ProcessedAt   string        `json:"processedAt"`
	FinalDecision string        `json:"finalDecision"`
	Summary       string        `json:"summary"`
	ReportDetails ReportDetails `json:"reportDetails"`
}

type ReportDetails struct {
	ScamCheck           Check `json:"scamCheck"`
	ValidityCheck       Check `json:"validityCheck"`
	SensationalCheck    Check `json:"sensationalCheck"`
	DataCollectionCheck Check `json:"dataCollectionCheck"`
	LogicCheck          Check `json:"logicCheck"`
}

type Check struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}
