package classify

import "regexp"

// Pattern rules are evaluated in a fixed order; later predicates assume the
// earlier ones already ran (off-topic veto first, casual veto second).

// offTopicPatterns exclude domains the companion does not serve: technical,
// legal, medical, academic and commercial requests.
var offTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(code|coding|program|programming|debug|compiler|javascript|python|golang|sql|api)\b`),
	regexp.MustCompile(`(?i)\b(lawsuit|legal advice|attorney|contract law|sue|court case)\b`),
	regexp.MustCompile(`(?i)\b(diagnos\w*|prescri\w*|medication|dosage|symptom checker|medical advice)\b`),
	regexp.MustCompile(`(?i)\b(homework|essay for|solve this equation|calculus|thermodynamics|exam question)\b`),
	regexp.MustCompile(`(?i)\b(stock tips?|invest(ing|ment)? advice|crypto(currency)? price|buy bitcoin|tax return)\b`),
	regexp.MustCompile(`(?i)\b(write (me )?a (cover letter|resume|cv))\b`),
}

// distressVocabulary overrides any casual-update signal. A short message that
// carries distress is never treated as small talk.
var distressVocabulary = []string{
	"anxious", "anxiety", "panic", "overwhelmed", "depressed", "depression",
	"hopeless", "worthless", "can't cope", "cant cope", "breaking down",
	"scared", "terrified", "crying", "hurt myself", "self-harm", "suicidal",
	"want to die", "falling apart",
}

// statusUpdatePatterns match arriving/leaving/starting-activity phrasing.
var statusUpdatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(just |i'?m )?(got|getting|arrived|arriving) (home|to work|at work|here)`),
	regexp.MustCompile(`(?i)^(just |i'?m )?(leaving|heading|going) (out|home|to work|to bed|to sleep)`),
	regexp.MustCompile(`(?i)^(just |i'?m )?(starting|about to start|finishing|done with) (work|my day|dinner|lunch|my shift)`),
	regexp.MustCompile(`(?i)\b(starting|finished|wrapping up) (work|school|class|my shift)\b`),
	regexp.MustCompile(`(?i)^(good ?(morning|night|evening)|gn|gm)\b`),
}

// acknowledgementTokens are bare one-word confirmations.
var acknowledgementTokens = map[string]bool{
	"ok": true, "okay": true, "k": true, "kk": true, "sure": true,
	"yes": true, "yeah": true, "yep": true, "no": true, "nope": true,
	"thanks": true, "thank you": true, "thx": true, "ty": true,
	"cool": true, "nice": true, "alright": true, "got it": true,
	"lol": true, "haha": true, "hmm": true,
}

// greetingList short-circuits retrieval on exact match.
var greetingList = map[string]bool{
	"hi": true, "hello": true, "hey": true, "yo": true, "sup": true,
	"hi!": true, "hello!": true, "hey!": true,
	"good morning": true, "good night": true, "good evening": true,
	"how are you": true, "how are you?": true,
	"thanks": true, "thank you": true, "bye": true, "goodbye": true,
}

// questionPattern detects an explicit question.
var questionPattern = regexp.MustCompile(`(?i)(\?|^(why|how|what|when|where|who|can i|could i|should i|do i|am i|is it)\b)`)

// domainKeywords signal the companion's supported territory: feelings,
// habits, thoughts, relationships, self-understanding.
var domainKeywords = []string{
	"feel", "feeling", "feelings", "emotion", "thought", "thoughts",
	"mind", "mindful", "habit", "pattern", "trigger", "stress",
	"relationship", "partner", "friend", "family", "conflict",
	"sleep", "tired", "energy", "motivation", "self-esteem", "confidence",
	"meditat", "breath", "journal", "gratitude", "mood",
}

// emotionalTriggerVocabulary is the broad list used to decide whether a turn
// is retrieval-worthy.
var emotionalTriggerVocabulary = []string{
	"sad", "angry", "anger", "mad", "upset", "frustrated", "frustrating",
	"anxious", "anxiety", "worried", "worry", "nervous", "stressed",
	"stress", "lonely", "alone", "guilt", "guilty", "ashamed", "shame",
	"afraid", "fear", "scared", "overwhelmed", "exhausted", "numb",
	"hopeless", "lost", "stuck", "hurt", "jealous", "resent",
}

// emotionalLabelVocabulary is the narrower list used when labeling the final
// query type. It is intentionally NOT the same list as the trigger
// vocabulary above; the two-tier vocabulary (broad trigger, narrow label) is
// kept as-is pending product clarification.
var emotionalLabelVocabulary = []string{
	"sad", "angry", "anxious", "anxiety", "worried", "stressed", "lonely",
	"afraid", "scared", "overwhelmed", "hopeless", "hurt",
}

// listRequestPattern flags an explicit ask for an enumerated answer; the
// response guard uses it to allow numbered lists through.
var listRequestPattern = regexp.MustCompile(`(?i)\b(list|steps|enumerate|bullet|numbered|what are some)\b`)
