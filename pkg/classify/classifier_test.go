package classify

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantType      QueryType
		wantRetrieval bool
		wantSkip      SkipReason
	}{
		{
			name:     "off-topic coding request",
			text:     "can you debug my python code?",
			wantType: QueryTypeOffTopic,
		},
		{
			name:     "off-topic wins over emotional content",
			text:     "I'm so anxious about this lawsuit, I need legal advice",
			wantType: QueryTypeOffTopic,
		},
		{
			name:     "short greeting is casual",
			text:     "hey there",
			wantType: QueryTypeCasual,
		},
		{
			name:     "status update is casual",
			text:     "hi, starting work now",
			wantType: QueryTypeCasual,
		},
		{
			name:     "bare acknowledgement is casual",
			text:     "thanks",
			wantType: QueryTypeCasual,
		},
		{
			name:          "short emotional question skips retriever",
			text:          "why do I feel anxious?",
			wantType:      QueryTypeEmotional,
			wantRetrieval: true,
			wantSkip:      SkipShortEmotional,
		},
		{
			name:          "long emotional message keeps retriever",
			text:          "I've been feeling really anxious about work lately and I can't figure out why it keeps happening",
			wantType:      QueryTypeEmotional,
			wantRetrieval: true,
		},
		{
			name:          "substantive question about habits",
			text:          "how do I build a better morning routine for my sleep?",
			wantType:      QueryTypeSubstantive,
			wantRetrieval: true,
		},
		{
			name:          "substantive statement over length limit without keywords",
			text:          "lately everything at the office has been piling up and I keep putting things off until the last minute",
			wantType:      QueryTypeSubstantive,
			wantRetrieval: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)

			if got.QueryType != tt.wantType {
				t.Errorf("QueryType = %q, want %q", got.QueryType, tt.wantType)
			}
			if got.UsedRetrieval != tt.wantRetrieval {
				t.Errorf("UsedRetrieval = %v, want %v", got.UsedRetrieval, tt.wantRetrieval)
			}
			if got.SkipReason != tt.wantSkip {
				t.Errorf("SkipReason = %q, want %q", got.SkipReason, tt.wantSkip)
			}
		})
	}
}

func TestIsCasualUpdate(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"just got home", true},
		{"good morning", true},
		{"ok", true},
		{"heading to bed now", true},
		// distress vocabulary vetoes the length-based casual label
		{"i'm so anxious", false},
		{"panic attack", false},
		{"feeling hopeless today", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := IsCasualUpdate(tt.text); got != tt.want {
				t.Errorf("IsCasualUpdate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestShouldUseRetrieval(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"hello", false},
		{"how are you?", false},
		{"what should I do when my mind races at night?", true},
		{"I feel stuck in the same pattern with my partner", true},
		{"lately I keep snapping at everyone around me and then regretting it afterwards", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ShouldUseRetrieval(tt.text); got != tt.want {
				t.Errorf("ShouldUseRetrieval(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsListRequest(t *testing.T) {
	if !IsListRequest("give me a list of ways to unwind") {
		t.Error("explicit list request should be detected")
	}
	if !IsListRequest("what are some steps I could try?") {
		t.Error("steps request should be detected")
	}
	if IsListRequest("I feel tired today") {
		t.Error("plain statement should not be a list request")
	}
}
