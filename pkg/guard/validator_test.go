package guard

import (
	"regexp"
	"strings"
	"testing"

	"companion-chat-be/pkg/religion"
)

func TestValidateIdentityDisclosure(t *testing.T) {
	tests := []string{
		"As an AI, I can't really feel tired.",
		"I'm a language model, so I don't sleep.",
		"I was trained on a lot of conversations.",
		"My training data doesn't cover that.",
		"I don't have feelings the way you do.",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			res := Validate(text, Context{})

			if res.CorrectedText != SafeRedirectSentence {
				t.Errorf("CorrectedText = %q, want SafeRedirectSentence", res.CorrectedText)
			}
			if !res.HadCriticalIssues {
				t.Error("HadCriticalIssues = false, want true")
			}
			if len(res.Issues) == 0 || res.Issues[0].Type != IssueIdentityDisclosure {
				t.Errorf("Issues = %+v, want identity_disclosure first", res.Issues)
			}
		})
	}
}

func TestValidateReligiousCounseling(t *testing.T) {
	t.Run("islam-specific pivot", func(t *testing.T) {
		res := Validate(
			"Maybe strengthening your connection with Allah would bring you peace.",
			Context{UserReligion: religion.ContextMuslim},
		)

		if res.CorrectedText != SecularPivotIslam {
			t.Errorf("CorrectedText = %q, want SecularPivotIslam", res.CorrectedText)
		}
		if !res.HadCriticalIssues {
			t.Error("HadCriticalIssues = false, want true")
		}
	})

	t.Run("generic pivot for other contexts", func(t *testing.T) {
		res := Validate(
			"Remember that God's plan is bigger than this moment.",
			Context{UserReligion: religion.ContextChristian},
		)

		if res.CorrectedText != SecularPivotGeneric {
			t.Errorf("CorrectedText = %q, want SecularPivotGeneric", res.CorrectedText)
		}
	})

	t.Run("no religion context means no check", func(t *testing.T) {
		text := "Remember that God's plan is bigger than this moment."
		res := Validate(text, Context{})

		if res.CorrectedText != text {
			t.Errorf("text modified without a religion context: %q", res.CorrectedText)
		}
		if res.HadCriticalIssues {
			t.Error("HadCriticalIssues = true, want false")
		}
	})
}

func TestValidateNumberedList(t *testing.T) {
	text := "Here are a few things that might help.\n1. Take a short walk.\n2. Write it down\n3) Talk to someone you trust.\nDoes any of that feel doable?"

	res := Validate(text, Context{})

	numbered := regexp.MustCompile(`(?m)^\s*\d+[\.\)]\s`)
	if numbered.MatchString(res.CorrectedText) {
		t.Errorf("corrected text still contains numbered items:\n%s", res.CorrectedText)
	}
	if !strings.Contains(res.CorrectedText, "Take a short walk, Write it down, Talk to someone you trust.") {
		t.Errorf("items not collapsed into prose:\n%s", res.CorrectedText)
	}
	if !strings.Contains(res.CorrectedText, "Does any of that feel doable?") {
		t.Error("trailing prose line lost")
	}

	found := false
	for _, iss := range res.Issues {
		if iss.Type == IssueUnrequestedList && iss.Severity == SeverityHigh {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unrequested_list high issue, got %+v", res.Issues)
	}
}

func TestValidateListAllowedWhenRequested(t *testing.T) {
	text := "Sure:\n1. Walk\n2. Journal"

	res := Validate(text, Context{UserAskedForList: true})

	if res.CorrectedText != text {
		t.Errorf("requested list was rewritten: %q", res.CorrectedText)
	}
	if len(res.Issues) != 0 {
		t.Errorf("unexpected issues: %+v", res.Issues)
	}
}

func TestValidateTerminology(t *testing.T) {
	res := Validate("A bit of mindfulness or meditation before bed can help.", Context{})

	if strings.Contains(strings.ToLower(res.CorrectedText), "mindfulness") {
		t.Errorf("mindfulness not replaced: %q", res.CorrectedText)
	}
	if !strings.Contains(res.CorrectedText, "gentle awareness") {
		t.Errorf("expected replacement phrasing: %q", res.CorrectedText)
	}
	if !strings.Contains(res.CorrectedText, "quiet reflection") {
		t.Errorf("meditation not replaced: %q", res.CorrectedText)
	}

	if len(res.Issues) != 1 || res.Issues[0].Type != IssueTerminology {
		t.Errorf("Issues = %+v, want one terminology_leakage issue", res.Issues)
	}
	if res.HadCriticalIssues {
		t.Error("terminology substitution should not be critical")
	}
}

func TestValidateReportOnlyFlags(t *testing.T) {
	t.Run("excessive length", func(t *testing.T) {
		long := strings.Repeat("word ", maxWordCount+1)
		res := Validate(long, Context{})

		found := false
		for _, iss := range res.Issues {
			if iss.Type == IssueExcessiveLength && iss.Severity == SeverityMedium {
				found = true
			}
		}
		if !found {
			t.Errorf("expected excessive_length issue, got %+v", res.Issues)
		}
		if res.CorrectedText != long {
			t.Error("length flag must not modify text")
		}
	})

	t.Run("over apology", func(t *testing.T) {
		text := "Sorry about that. I'm sorry if it came across wrong. Again, my apologies."
		res := Validate(text, Context{})

		found := false
		for _, iss := range res.Issues {
			if iss.Type == IssueOverApology && iss.Severity == SeverityLow {
				found = true
			}
		}
		if !found {
			t.Errorf("expected over_apology issue, got %+v", res.Issues)
		}
		if res.CorrectedText != text {
			t.Error("apology flag must not modify text")
		}
	})
}

func TestValidateCleanText(t *testing.T) {
	text := "That sounds like a heavy week. What part of it weighed on you the most?"
	res := Validate(text, Context{UserReligion: religion.ContextMuslim})

	if res.CorrectedText != text {
		t.Errorf("clean text was modified: %q", res.CorrectedText)
	}
	if len(res.Issues) != 0 {
		t.Errorf("unexpected issues: %+v", res.Issues)
	}
	if res.HadCriticalIssues {
		t.Error("HadCriticalIssues = true for clean text")
	}
}
