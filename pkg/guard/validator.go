// Package guard validates and auto-corrects generated replies before they
// reach the user. Checks run in a fixed order with first-fix semantics:
// later checks assume earlier ones already ran.
package guard

import (
	"regexp"
	"strings"

	"companion-chat-be/pkg/religion"
)

// IssueType names one class of policy violation.
type IssueType string

const (
	IssueIdentityDisclosure  IssueType = "identity_disclosure"
	IssueReligiousCounseling IssueType = "religious_counseling"
	IssueUnrequestedList     IssueType = "unrequested_list"
	IssueTerminology         IssueType = "terminology_leakage"
	IssueExcessiveLength     IssueType = "excessive_length"
	IssueOverApology         IssueType = "over_apology"
)

// Severity classes. Critical and high are always auto-fixed; medium and
// low are reported only.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

type Issue struct {
	Type     IssueType `json:"type"`
	Severity Severity  `json:"severity"`
	Detail   string    `json:"detail"`
}

// Context carries the per-turn inputs the checks depend on.
type Context struct {
	UserReligion     religion.Context
	UserAskedForList bool
}

// Result is the validated output plus everything found along the way.
type Result struct {
	CorrectedText     string
	Issues            []Issue
	HadCriticalIssues bool
}

// Validate runs the ordered check sequence over generated text.
// Order matters: disclosure replacement first, then religious replacement,
// then list collapsing, then terminology substitution, then the two
// report-only flags.
func Validate(text string, ctx Context) Result {
	res := Result{CorrectedText: text}

	// 1. Identity-disclosure leakage. Total replacement, final.
	if pattern := matchAny(res.CorrectedText, identityDisclosurePatterns); pattern != "" {
		res.CorrectedText = SafeRedirectSentence
		res.HadCriticalIssues = true
		res.Issues = append(res.Issues, Issue{
			Type:     IssueIdentityDisclosure,
			Severity: SeverityCritical,
			Detail:   "matched disclosure pattern " + pattern,
		})
	}

	// 2. Religious-counseling leakage. Only when a religion context exists.
	if ctx.UserReligion != religion.ContextNone && ctx.UserReligion != "" {
		patterns := genericCounselingPatterns
		pivot := SecularPivotGeneric
		if ctx.UserReligion == religion.ContextMuslim {
			patterns = islamCounselingPatterns
			pivot = SecularPivotIslam
		}
		if pattern := matchAny(res.CorrectedText, patterns); pattern != "" {
			res.CorrectedText = pivot
			res.HadCriticalIssues = true
			res.Issues = append(res.Issues, Issue{
				Type:     IssueReligiousCounseling,
				Severity: SeverityCritical,
				Detail:   "matched counseling pattern " + pattern,
			})
		}
	}

	// 3. Unrequested numbered list. Collapsed into prose, not discarded.
	if !ctx.UserAskedForList && containsNumberedList(res.CorrectedText) {
		res.CorrectedText = collapseNumberedList(res.CorrectedText)
		res.Issues = append(res.Issues, Issue{
			Type:     IssueUnrequestedList,
			Severity: SeverityHigh,
			Detail:   "numbered list rewritten as prose",
		})
	}

	// 4. Terminology leakage. Table-driven substitution over the whole text.
	if corrected, replaced := replaceTerms(res.CorrectedText); replaced != "" {
		res.CorrectedText = corrected
		res.Issues = append(res.Issues, Issue{
			Type:     IssueTerminology,
			Severity: SeverityHigh,
			Detail:   "replaced terms: " + replaced,
		})
	}

	// 5. Length flag. Report only.
	if words := len(strings.Fields(res.CorrectedText)); words > maxWordCount {
		res.Issues = append(res.Issues, Issue{
			Type:     IssueExcessiveLength,
			Severity: SeverityMedium,
			Detail:   "reply too long",
		})
	}

	// 6. Over-apology flag. Report only.
	if n := len(apologyPattern.FindAllString(res.CorrectedText, -1)); n > maxApologyCnt {
		res.Issues = append(res.Issues, Issue{
			Type:     IssueOverApology,
			Severity: SeverityLow,
			Detail:   "excessive apologizing",
		})
	}

	return res
}

func matchAny(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if p.MatchString(text) {
			return p.String()
		}
	}
	return ""
}

func containsNumberedList(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if numberedItemPattern.MatchString(line) {
			return true
		}
	}
	return false
}

// collapseNumberedList rewrites contiguous numbered items into a single
// comma-joined sentence, leaving surrounding prose lines intact.
func collapseNumberedList(text string) string {
	var out []string
	var items []string

	flush := func() {
		if len(items) == 0 {
			return
		}
		out = append(out, strings.Join(items, ", ")+".")
		items = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if numberedItemPattern.MatchString(line) {
			item := numberedItemPattern.ReplaceAllString(line, "")
			item = strings.TrimRight(strings.TrimSpace(item), ".,;:")
			if item != "" {
				items = append(items, item)
			}
			continue
		}
		flush()
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	flush()

	return strings.Join(out, "\n")
}

func replaceTerms(text string) (string, string) {
	var replaced []string
	for _, tr := range termReplacements {
		if tr.pattern.MatchString(text) {
			text = tr.pattern.ReplaceAllString(text, tr.replacement)
			replaced = append(replaced, tr.replacement)
		}
	}
	return text, strings.Join(replaced, ", ")
}
