package model

// Violation is one detected design issue. Immutable once produced by a rule.
type Violation struct {
	RuleID         string         `json:"ruleId"`
	Severity       Severity       `json:"severity"`
	File           string         `json:"file"`
	Line           int            `json:"line"`
	Message        string         `json:"message"`
	Recommendation string         `json:"recommendation,omitempty"`
	Snippet        string         `json:"snippet,omitempty"`
	Fingerprint    string         `json:"fingerprint,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

type RuleCategory string

const (
	CategoryDesign        RuleCategory = "design"
	CategoryComplexity    RuleCategory = "complexity"
	CategoryDuplication   RuleCategory = "duplication"
	CategoryErrorHandling RuleCategory = "error-handling"
	CategoryCoupling      RuleCategory = "coupling"
)

// RuleMeta is the catalog entry registered once at startup.
type RuleMeta struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Category RuleCategory `json:"category"`
	Severity Severity     `json:"severity"`
	Version  string       `json:"version,omitempty"`
	Enabled  bool         `json:"enabled"`
}
