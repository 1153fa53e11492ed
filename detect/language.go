package detect

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

const (
	langSampleSize = 2000
	langMinWords   = 20
	langThreshold  = 0.10
)

// Stop-word sets, roughly the top sixty function words per language.
// Frequency of these in a sample is a cheap but reliable language
// signal for prose.
var stopWords = map[language.Tag]map[string]bool{
	language.English: wordSet(
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
		"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
		"this", "but", "his", "by", "from", "they", "we", "her", "she",
		"or", "an", "will", "my", "one", "all", "would", "there", "their",
		"what", "so", "if", "about", "who", "which", "when", "can", "no",
		"just", "him", "know", "into", "your", "some", "could", "them",
		"than", "then", "its", "over", "also", "after", "how", "our",
		"well", "even", "because", "any", "these", "us", "out", "was",
		"were", "been", "being", "had", "has", "did", "are", "is", "am",
	),
	language.Spanish: wordSet(
		"de", "la", "que", "el", "en", "y", "a", "los", "del", "se",
		"las", "por", "un", "para", "con", "no", "una", "su", "al", "lo",
		"como", "pero", "sus", "le", "ya", "o", "este", "entre", "cuando",
		"muy", "sin", "sobre", "me", "hasta", "hay", "donde", "quien",
		"desde", "todo", "nos", "durante", "todos", "uno", "les", "ni",
		"contra", "otros", "ese", "eso", "ante", "ellos", "esto", "antes",
		"algunos", "unos", "yo", "otro", "otras", "otra", "tanto", "esa",
		"estos", "esta", "fue", "son", "tiene", "ser", "han", "era",
	),
	language.French: wordSet(
		"de", "la", "le", "et", "les", "des", "en", "un", "du", "une",
		"que", "est", "dans", "qui", "par", "pour", "au", "il", "sur",
		"ne", "se", "pas", "plus", "son", "ce", "avec", "ou", "mais",
		"sont", "sa", "aux", "ont", "ses", "cette", "comme", "nous",
		"tout", "aussi", "elle", "fait", "ces", "entre", "dont", "leur",
		"bien", "peut", "tous", "sans", "je", "lui", "donc", "encore",
		"avant", "depuis", "nos", "deux", "fois", "avait",
	),
	language.German: wordSet(
		"der", "die", "und", "in", "den", "von", "zu", "das", "mit",
		"sich", "des", "auf", "ist", "im", "dem", "nicht", "ein",
		"eine", "als", "auch", "es", "an", "werden", "aus", "er", "hat",
		"dass", "sie", "nach", "wird", "bei", "einer", "um", "am", "sind",
		"noch", "wie", "einem", "so", "zum", "aber", "ihr", "nur",
		"oder", "mir", "war", "mich", "gegen", "vom", "wenn", "durch",
		"dann", "unter", "sehr", "selbst", "schon", "hier", "bis", "alle",
		"diese", "mehr", "da", "wo", "kann", "haben", "sein",
	),
	language.Italian: wordSet(
		"di", "che", "la", "il", "un", "a", "per", "in", "una", "mi",
		"ma", "lo", "ha", "le", "si", "ho", "non", "con", "li", "da",
		"se", "no", "come", "io", "ci", "questo", "dei", "nel", "del",
		"al", "sono", "era", "gli", "suo", "anche", "alla",
		"tutto", "della", "fatto", "dal", "stata", "ancora", "dopo",
		"essere", "quella", "fare", "qui", "dove", "sua",
		"stato", "loro", "questa", "tra", "hai", "poi", "abbiamo",
	),
	language.Dutch: wordSet(
		"de", "het", "een", "van", "en", "in", "is", "dat", "op", "te",
		"zijn", "voor", "met", "die", "niet", "er", "aan", "ook", "als",
		"maar", "om", "bij", "dan", "nog", "naar", "heeft", "ze", "uit",
		"kan", "dit", "was", "worden", "al", "wel", "over", "door", "tot",
		"veel", "meer", "had", "haar", "wat", "zou", "hun", "geen", "werd",
		"wij", "heb", "moet", "ons", "dag", "twee", "zo", "alle", "hij",
	),
	language.Portuguese: wordSet(
		"de", "a", "o", "que", "e", "do", "da", "em", "um", "para",
		"com", "uma", "os", "no", "se", "na", "por", "mais", "as",
		"dos", "como", "mas", "foi", "ao", "ele", "das", "tem", "seu",
		"sua", "ou", "ser", "quando", "muito", "nos", "já", "eu",
		"também", "só", "pelo", "pela", "até", "isso", "ela", "entre",
		"era", "depois", "sem", "mesmo", "aos", "ter", "seus", "quem",
		"nas", "me", "esse", "eles", "está", "você", "tinha", "foram",
		"essa", "num", "nem", "suas", "meu", "minha", "numa", "pelos",
	),
}

// langOrder fixes the comparison order so ties resolve the same way
// on every run.
var langOrder = []language.Tag{
	language.English, language.Spanish, language.French, language.German,
	language.Italian, language.Dutch, language.Portuguese,
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

const tokenPunct = ".,;:!?()[]{}\"'“”‘’«»—–-"

func sampleWords(text string) []string {
	sample := text
	if len(sample) > langSampleSize {
		sample = sample[:langSampleSize]
	}
	var words []string
	for _, w := range strings.Fields(sample) {
		w = strings.ToLower(strings.Trim(w, tokenPunct))
		if len(w) >= 2 {
			words = append(words, w)
		}
	}
	return words
}

// DetectLanguage returns the most likely language of the text by
// stop-word frequency, defaulting to English when the text is too
// short or no language reaches the threshold.
func DetectLanguage(text string) language.Tag {
	words := sampleWords(text)
	if len(words) < langMinWords {
		return language.English
	}

	best := language.English
	bestRatio := 0.0
	for _, lang := range langOrder {
		stops := stopWords[lang]
		hits := 0
		for _, w := range words {
			if stops[w] {
				hits++
			}
		}
		ratio := float64(hits) / float64(len(words))
		if ratio > bestRatio {
			bestRatio = ratio
			best = lang
		}
	}
	if bestRatio < langThreshold {
		best = language.English
	}
	slog.Debug("language detection", "lang", best, "stopword_ratio", bestRatio, "words", len(words))
	return best
}

// isEnglish gates the heuristic name detector, whose first-name list
// only covers English.
func isEnglish(text string) bool {
	words := sampleWords(text)
	if len(words) < langMinWords {
		return true
	}
	hits := 0
	en := stopWords[language.English]
	for _, w := range words {
		if en[w] {
			hits++
		}
	}
	return float64(hits)/float64(len(words)) >= langThreshold
}
