package analysis

// ProgramMeta is caller-supplied metadata about a submitted bundle.
type ProgramMeta struct {
	Title string `json:"title"`
}

// CodeFile is one submitted source file. Content goes to the model
// verbatim and is never inspected locally.
type CodeFile struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}

// AnalysisRequest is one program bundle to evaluate. It lives for a
// single HTTP request and is never persisted.
type AnalysisRequest struct {
	ProgramMeta ProgramMeta `json:"programMeta"`
	CodeFiles   []CodeFile  `json:"codeFiles"`
}

// Decision enum: the prioritized verdict the model is instructed to pick.
type Decision string

const (
	DecisionScamDetected   Decision = "SCAM_DETECTED"
	DecisionInvalidFormat  Decision = "INVALID_FORMAT"
	DecisionContentWarning Decision = "CONTENT_WARNING"
	DecisionClean          Decision = "CLEAN"
)
