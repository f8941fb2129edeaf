package guard

import "regexp"

// SafeRedirectSentence replaces any output that leaks what the companion
// is. The substitution is total and final.
const SafeRedirectSentence = "I'd rather we keep talking about you — what's been on your mind today?"

// Secular-pivot templates for religious-counseling leakage. One
// Islam-specific variant, one generic for everything else.
const (
	SecularPivotIslam   = "I hear how much this matters to you. I'm not the right one for questions of faith, but I'd love to hear what's been weighing on you underneath it — how have you been feeling lately?"
	SecularPivotGeneric = "That touches on something deeper than I can speak to. What I can do is sit with what you're feeling — what's been on your heart lately?"
)

// identityDisclosurePatterns match self-disclosure of being an AI, model,
// or program. Any match discards the whole output.
var identityDisclosurePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bas an ai\b`),
	regexp.MustCompile(`(?i)\bi('| a)?m an? (ai|artificial intelligence|language model|chatbot|bot|computer program|virtual assistant)\b`),
	regexp.MustCompile(`(?i)\bi am (just )?an? (ai|language model|chatbot|bot|program|assistant)\b`),
	regexp.MustCompile(`(?i)\bi (was|am) (trained|programmed|designed|built|created) (on|by|to)\b`),
	regexp.MustCompile(`(?i)\bmy (training data|programming|algorithm|developers|creators)\b`),
	regexp.MustCompile(`(?i)\bi don'?t have (feelings|emotions|a body|personal experiences)\b`),
	regexp.MustCompile(`(?i)\blarge language model\b`),
}

// Religion-specific forbidden-phrase patterns. Checked only when a
// religion context was detected for the user.
var islamCounselingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\ballah\b`),
	regexp.MustCompile(`(?i)\bquran\b|\bqur'an\b`),
	regexp.MustCompile(`(?i)\binsha'?allah\b`),
	regexp.MustCompile(`(?i)\bmake du'?a\b`),
	regexp.MustCompile(`(?i)\bpray(er)?s? (to|for guidance)\b`),
	regexp.MustCompile(`(?i)\bfaith in (allah|god)\b`),
	regexp.MustCompile(`(?i)\btrust (in )?(allah|god)('s plan)?\b`),
}

var genericCounselingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bgod('s)? (plan|will|love|grace)\b`),
	regexp.MustCompile(`(?i)\bjesus\b|\bchrist\b`),
	regexp.MustCompile(`(?i)\bscripture\b|\bbible\b|\bpsalm\b`),
	regexp.MustCompile(`(?i)\bpray(er)?s? (to|for guidance|about)\b`),
	regexp.MustCompile(`(?i)\bkarma will\b`),
	regexp.MustCompile(`(?i)\bthe buddha (taught|said)\b`),
	regexp.MustCompile(`(?i)\bturn to (god|faith|prayer)\b`),
	regexp.MustCompile(`(?i)\bhave faith\b`),
}

// numberedItemPattern matches one numbered list item at the start of a line.
var numberedItemPattern = regexp.MustCompile(`^\s*\d+[\.\)]\s+`)

// termReplacements substitutes religious/Eastern terminology with neutral
// phrasing, case-insensitively, everywhere it appears.
var termReplacements = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bmindfulness\b`), "gentle awareness"},
	{regexp.MustCompile(`(?i)\bmeditation\b`), "quiet reflection"},
	{regexp.MustCompile(`(?i)\bmeditate\b`), "sit quietly"},
	{regexp.MustCompile(`(?i)\bchakras?\b`), "inner balance"},
	{regexp.MustCompile(`(?i)\bkarma\b`), "cause and effect"},
	{regexp.MustCompile(`(?i)\bnirvana\b`), "deep calm"},
	{regexp.MustCompile(`(?i)\bzen\b`), "calm"},
	{regexp.MustCompile(`(?i)\bspiritual(ity)?\b`), "personal"},
	{regexp.MustCompile(`(?i)\bblessed\b`), "fortunate"},
	{regexp.MustCompile(`(?i)\byour soul\b`), "your inner self"},
	{regexp.MustCompile(`(?i)\bsacred\b`), "meaningful"},
	{regexp.MustCompile(`(?i)\bdivine\b`), "remarkable"},
}

// apologyPattern counts apology words for the over-apology flag.
var apologyPattern = regexp.MustCompile(`(?i)\b(sorry|apologi[sz]e|apologies|forgive me|my apologies)\b`)

const (
	maxWordCount  = 500
	maxApologyCnt = 2
)
