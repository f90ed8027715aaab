package haiku

import "strings"

// SentimentScorer assigns a signed polarity score to a quote by summing
// per-token lexicon valences and normalizing by token count. A positive
// score means net-positive word choice. The scorer is stateless and
// deterministic for a fixed lexicon.
type SentimentScorer struct {
	lexicon map[string]float64
}

// NewSentimentScorer creates a scorer backed by the built-in AFINN-style
// lexicon.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{lexicon: sentimentLexicon}
}

// Analyze returns the mean lexicon valence over the tokens of text.
// Unknown tokens contribute 0; an empty text scores 0.
func (s *SentimentScorer) Analyze(text string) float64 {
	tokens := 0
	sum := 0.0

	for _, word := range strings.Fields(text) {
		w := normalizeWord(word)
		if w == "" {
			continue
		}
		tokens++
		sum += s.lexicon[w]
	}

	if tokens == 0 {
		return 0
	}
	return sum / float64(tokens)
}

// sentimentLexicon is a compact valence word list in the AFINN style:
// integers in [-5, 5], hand-trimmed to vocabulary common in the public
// domain literature the corpus is built from.
var sentimentLexicon = map[string]float64{
	// positive
	"admire": 3, "adore": 3, "beautiful": 3, "beauty": 3, "beloved": 3,
	"best": 3, "bless": 2, "blessed": 3, "bliss": 3, "brave": 2,
	"bright": 1, "calm": 2, "charm": 3, "charming": 3, "cheer": 2,
	"cheerful": 2, "comfort": 2, "dear": 2, "delight": 3, "delightful": 3,
	"devoted": 3, "dream": 1, "eager": 2, "excellent": 3, "fair": 2,
	"faith": 1, "favorite": 2, "fine": 2, "fond": 2, "fortune": 2,
	"free": 1, "freedom": 2, "friend": 2, "friendly": 2, "gentle": 2,
	"gift": 2, "glad": 3, "glorious": 2, "glory": 2, "good": 3,
	"grace": 1, "graceful": 2, "grand": 3, "grateful": 3, "great": 3,
	"happiness": 3, "happy": 3, "heaven": 2, "honest": 2, "honour": 2,
	"hope": 2, "hopeful": 2, "joy": 3, "joyful": 3, "kind": 2,
	"kindness": 2, "laugh": 1, "laughter": 1, "like": 2, "likes": 2,
	"love": 3, "loved": 3, "lovely": 3, "loves": 3, "loyal": 3,
	"lucky": 3, "marvellous": 3, "merry": 2, "noble": 2, "peace": 2,
	"peaceful": 2, "perfect": 3, "pleasant": 3, "pleased": 3,
	"pleasure": 3, "pretty": 1, "proud": 2, "rejoice": 4, "rich": 2,
	"safe": 1, "smile": 2, "smiled": 2, "splendid": 3, "strong": 2,
	"sweet": 2, "tender": 2, "thank": 2, "thanks": 2, "treasure": 2,
	"triumph": 4, "true": 2, "trust": 1, "warm": 1, "welcome": 2,
	"win": 4, "wisdom": 2, "wise": 2, "wonderful": 4, "worthy": 2,
	// negative
	"abandon": -2, "afraid": -2, "agony": -3, "alone": -2, "anger": -3,
	"angry": -3, "anguish": -3, "anxious": -2, "ashamed": -2, "bad": -3,
	"bitter": -2, "broke": -1, "broken": -1, "burden": -2, "cold": -1,
	"cruel": -3, "cry": -1, "cursed": -3, "danger": -2, "dark": -1,
	"dead": -3, "death": -2, "despair": -3, "destroy": -3, "die": -3,
	"died": -3, "dread": -2, "dull": -2, "enemy": -2, "evil": -3,
	"fear": -2, "fearful": -2, "fell": -1, "fight": -1, "fool": -2,
	"forlorn": -2, "grave": -2, "grief": -2, "grim": -2, "hate": -3,
	"hated": -3, "hatred": -3, "hell": -4, "helpless": -2, "horrible": -3,
	"horror": -3, "hurt": -2, "ill": -2, "lonely": -2, "lost": -3,
	"mad": -3, "miserable": -3, "misery": -2, "misfortune": -2,
	"mourn": -2, "pain": -2, "painful": -2, "pity": -2, "poor": -2,
	"rage": -2, "regret": -2, "sad": -2, "shame": -2, "sick": -2,
	"sin": -2, "sorrow": -2, "suffer": -2, "suffering": -2, "terrible": -3,
	"terror": -3, "tired": -2, "torment": -3, "tragedy": -2, "vain": -2,
	"weary": -2, "weep": -2, "wicked": -2, "woe": -3, "worse": -3,
	"worst": -3, "wound": -2, "wretched": -3, "wrong": -2,
}
