// Package persona assembles the instruction text sent to the generation
// provider. Composition is pure string assembly in a fixed section order;
// an absent dynamic input omits its section entirely.
package persona

import (
	"strings"
	"time"

	"companion-chat-be/internal/constant"
	"companion-chat-be/pkg/religion"
	"companion-chat-be/pkg/store"
)

// Builder collects the dynamic inputs for one turn's instruction text.
type Builder struct {
	now      time.Time
	religion religion.Context
	session  *store.Session
	passages []store.Passage
	offTopic bool
}

func NewBuilder(now time.Time) *Builder {
	return &Builder{
		now:      now,
		religion: religion.ContextNone,
	}
}

func (b *Builder) WithReligion(ctx religion.Context) *Builder {
	b.religion = ctx
	return b
}

func (b *Builder) WithSession(session *store.Session) *Builder {
	b.session = session
	return b
}

func (b *Builder) WithKnowledge(passages []store.Passage) *Builder {
	b.passages = passages
	return b
}

// WithOffTopicRedirect switches the builder into redirect mode: the
// knowledge section is dropped and the off-topic instruction is appended.
func (b *Builder) WithOffTopicRedirect() *Builder {
	b.offTopic = true
	return b
}

// Build concatenates, in fixed order: identity, rules, dynamic context,
// worked examples, then either the knowledge block or the off-topic
// redirect instruction.
func (b *Builder) Build() string {
	var prompt strings.Builder

	prompt.WriteString(constant.PersonaIdentityBlock)
	prompt.WriteString("\n\n")
	prompt.WriteString(constant.PersonaRuleBlock)
	prompt.WriteString("\n\n")

	b.writeDynamicContext(&prompt)

	prompt.WriteString(constant.PersonaExamplesBlock)

	if b.offTopic {
		prompt.WriteString("\n\n")
		prompt.WriteString(constant.PersonaOffTopicInstruction)
		return prompt.String()
	}

	b.writeKnowledge(&prompt)

	return prompt.String()
}

func (b *Builder) writeDynamicContext(prompt *strings.Builder) {
	prompt.WriteString(toneHint(b.now.Hour()))
	prompt.WriteString("\n\n")

	if directive := secularDirective(b.religion); directive != "" {
		prompt.WriteString(directive)
		prompt.WriteString("\n\n")
	}

	if b.session != nil {
		if directive := phaseDirective(b.session.GuidedPhase); directive != "" {
			prompt.WriteString(directive)
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(depthHint(b.session.DepthHint()))
		prompt.WriteString("\n\n")
	}
}

func (b *Builder) writeKnowledge(prompt *strings.Builder) {
	if len(b.passages) == 0 {
		return
	}

	prompt.WriteString("\n\n")
	prompt.WriteString(constant.PersonaKnowledgeInstruction)
	prompt.WriteString("\n")
	for _, p := range b.passages {
		prompt.WriteString("\n- ")
		prompt.WriteString(strings.TrimSpace(p.Content))
	}
}

func toneHint(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return constant.PersonaToneMorning
	case hour >= 12 && hour < 17:
		return constant.PersonaToneAfternoon
	case hour >= 17 && hour < 22:
		return constant.PersonaToneEvening
	default:
		return constant.PersonaToneNight
	}
}

// secularDirective picks exactly one of four mutually exclusive blocks,
// or "" for no detected affiliation.
func secularDirective(ctx religion.Context) string {
	switch ctx {
	case religion.ContextMuslim:
		return constant.PersonaSecularMuslim
	case religion.ContextChristian:
		return constant.PersonaSecularChristian
	case religion.ContextHindu:
		return constant.PersonaSecularHindu
	case religion.ContextBuddhist:
		return constant.PersonaSecularBuddhist
	default:
		return ""
	}
}

func phaseDirective(phase string) string {
	switch phase {
	case store.PhaseCheckIn:
		return constant.PersonaPhaseCheckIn
	case store.PhaseExplore:
		return constant.PersonaPhaseExplore
	case store.PhaseReflection:
		return constant.PersonaPhaseReflection
	default:
		return ""
	}
}

func depthHint(depth string) string {
	switch depth {
	case "established":
		return constant.PersonaDepthEstablished
	case "warming_up":
		return constant.PersonaDepthWarmingUp
	default:
		return constant.PersonaDepthOpening
	}
}
