package persona

import (
	"strings"
	"testing"
	"time"

	"companion-chat-be/internal/constant"
	"companion-chat-be/pkg/religion"
	"companion-chat-be/pkg/store"
)

func at(hour int) time.Time {
	return time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
}

func TestBuildSectionOrder(t *testing.T) {
	prompt := NewBuilder(at(9)).
		WithReligion(religion.ContextMuslim).
		WithSession(&store.Session{GuidedPhase: store.PhaseExplore, TurnCount: 6}).
		WithKnowledge([]store.Passage{{ID: "1", Content: "Slowing the exhale settles the nervous system."}}).
		Build()

	sections := []string{
		constant.PersonaIdentityBlock,
		constant.PersonaRuleBlock,
		constant.PersonaToneMorning,
		constant.PersonaSecularMuslim,
		constant.PersonaPhaseExplore,
		constant.PersonaDepthWarmingUp,
		constant.PersonaExamplesBlock,
		constant.PersonaKnowledgeInstruction,
		"- Slowing the exhale settles the nervous system.",
	}

	pos := -1
	for _, section := range sections {
		idx := strings.Index(prompt, section)
		if idx < 0 {
			t.Fatalf("section missing from prompt: %.60q", section)
		}
		if idx <= pos {
			t.Fatalf("section out of order: %.60q", section)
		}
		pos = idx
	}
}

func TestBuildOmitsAbsentSections(t *testing.T) {
	prompt := NewBuilder(at(14)).Build()

	for _, directive := range []string{
		constant.PersonaSecularMuslim,
		constant.PersonaSecularChristian,
		constant.PersonaSecularHindu,
		constant.PersonaSecularBuddhist,
	} {
		if strings.Contains(prompt, directive) {
			t.Error("secular directive present without a religion context")
		}
	}
	if strings.Contains(prompt, constant.PersonaKnowledgeInstruction) {
		t.Error("knowledge section present without passages")
	}
	if strings.Contains(prompt, constant.PersonaDepthOpening) {
		t.Error("depth hint present without a session")
	}
	if strings.Contains(prompt, constant.PersonaOffTopicInstruction) {
		t.Error("off-topic instruction present without redirect mode")
	}
}

func TestBuildExactlyOneSecularDirective(t *testing.T) {
	prompt := NewBuilder(at(20)).WithReligion(religion.ContextBuddhist).Build()

	count := 0
	for _, directive := range []string{
		constant.PersonaSecularMuslim,
		constant.PersonaSecularChristian,
		constant.PersonaSecularHindu,
		constant.PersonaSecularBuddhist,
	} {
		if strings.Contains(prompt, directive) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d secular directives, want exactly 1", count)
	}
	if !strings.Contains(prompt, constant.PersonaSecularBuddhist) {
		t.Error("wrong directive selected")
	}
}

func TestBuildOffTopicDropsKnowledge(t *testing.T) {
	prompt := NewBuilder(at(23)).
		WithKnowledge([]store.Passage{{ID: "1", Content: "ignored"}}).
		WithOffTopicRedirect().
		Build()

	if !strings.Contains(prompt, constant.PersonaOffTopicInstruction) {
		t.Error("off-topic instruction missing")
	}
	if strings.Contains(prompt, constant.PersonaKnowledgeInstruction) {
		t.Error("knowledge section should be dropped in redirect mode")
	}
	if !strings.Contains(prompt, constant.PersonaToneNight) {
		t.Error("late-hour tone hint missing")
	}
}

func TestToneHintBuckets(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, constant.PersonaToneMorning},
		{11, constant.PersonaToneMorning},
		{12, constant.PersonaToneAfternoon},
		{16, constant.PersonaToneAfternoon},
		{17, constant.PersonaToneEvening},
		{21, constant.PersonaToneEvening},
		{22, constant.PersonaToneNight},
		{3, constant.PersonaToneNight},
	}

	for _, tt := range tests {
		if got := toneHint(tt.hour); got != tt.want {
			t.Errorf("toneHint(%d) picked the wrong block", tt.hour)
		}
	}
}

func TestSessionDepthHint(t *testing.T) {
	tests := []struct {
		turns int
		want  string
	}{
		{1, constant.PersonaDepthOpening},
		{4, constant.PersonaDepthWarmingUp},
		{10, constant.PersonaDepthEstablished},
	}

	for _, tt := range tests {
		prompt := NewBuilder(at(9)).
			WithSession(&store.Session{GuidedPhase: store.PhaseCheckIn, TurnCount: tt.turns}).
			Build()
		if !strings.Contains(prompt, tt.want) {
			t.Errorf("turn count %d: expected depth hint missing", tt.turns)
		}
	}
}
