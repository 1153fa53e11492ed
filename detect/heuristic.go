package detect

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/tsawler/redacta/model"
)

// HeuristicNameDetector finds sequences of capitalized words whose
// first word is a known common first name. It runs at low confidence
// so a heuristic hit alone never survives the threshold; it counts
// when another layer flags the same span and the agreement boost
// lifts both.
//
// English only: the first-name list does not transfer.
type HeuristicNameDetector struct{}

func NewHeuristicNameDetector() *HeuristicNameDetector {
	return &HeuristicNameDetector{}
}

func (d *HeuristicNameDetector) Name() string { return "heuristic" }

// Literal spaces, not \s+, so matches never straddle line breaks.
var capitalizedName = regexp.MustCompile(
	`\b([A-Z][a-z]{1,20}) ([A-Z][a-z]{1,20}(?: [A-Z][a-z]{1,20})?)\b`)

func (d *HeuristicNameDetector) Detect(ctx context.Context, text string, lang language.Tag) ([]model.DetectionMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if lang != language.English && !isEnglish(text) {
		return nil, nil
	}

	var matches []model.DetectionMatch
	for _, loc := range capitalizedName.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		first := strings.ToLower(text[loc[2]:loc[3]])
		if !commonFirstNames[first] {
			continue
		}

		full := text[start:end]
		if falsePositivePerson(full) {
			continue
		}
		words := strings.Fields(strings.ToLower(full))
		if containsStopword(words) {
			continue
		}

		conf := 0.50
		if len(words) > 2 {
			conf = 0.55
		}
		matches = append(matches, model.DetectionMatch{
			Start: start, End: end, Text: full,
			Category: model.CatPerson, Confidence: conf, Source: model.SourceHeuristic,
		})
	}
	return dedupeOverlaps(matches), nil
}

func containsStopword(words []string) bool {
	for _, w := range words {
		if genericStopwords[w] || personStopwords[w] || titleSuffixes[w] {
			return true
		}
	}
	return false
}

// falsePositivePerson rejects spans that look like headers, acronyms,
// or other non-name text.
func falsePositivePerson(text string) bool {
	clean := strings.ToLower(strings.TrimSpace(text))
	if personStopwords[clean] {
		return true
	}
	if len(text) <= 5 && text == strings.ToUpper(text) {
		return true
	}
	trimmed := strings.TrimSpace(text)
	if trimmed != "" && unicode.IsDigit(rune(trimmed[0])) {
		return true
	}
	words := strings.Fields(trimmed)
	if len(words) == 1 && len(words[0]) <= 3 {
		return true
	}
	return false
}

var commonFirstNames = wordSet(
	"james", "john", "robert", "michael", "david", "william", "richard",
	"joseph", "thomas", "charles", "christopher", "daniel", "matthew",
	"anthony", "donald", "steven", "paul", "andrew", "joshua",
	"kenneth", "kevin", "brian", "george", "timothy", "ronald", "edward",
	"jason", "jeffrey", "ryan", "jacob", "nicholas", "eric",
	"jonathan", "stephen", "larry", "justin", "scott", "brandon", "benjamin",
	"samuel", "raymond", "gregory", "patrick", "alexander",
	"dennis", "jerry", "tyler", "aaron", "jose", "nathan", "henry", "peter",
	"adam", "zachary", "walter", "kyle", "harold", "carl", "jeremy", "roger",
	"keith", "gerald", "eugene", "terry", "sean", "austin", "arthur", "jesse",
	"dylan", "bryan", "jordan", "bruce", "albert", "willie",
	"gabriel", "logan", "ralph", "lawrence", "wayne", "elijah", "randy",
	"vincent", "philip", "bobby", "johnny", "bradley",
	"mary", "patricia", "jennifer", "linda", "barbara", "elizabeth", "susan",
	"jessica", "sarah", "karen", "lisa", "nancy", "betty", "margaret", "sandra",
	"ashley", "dorothy", "kimberly", "emily", "donna", "michelle", "carol",
	"amanda", "melissa", "deborah", "stephanie", "rebecca", "sharon", "laura",
	"cynthia", "kathleen", "amy", "angela", "shirley", "anna", "brenda",
	"pamela", "emma", "nicole", "helen", "samantha", "katherine", "christine",
	"debra", "rachel", "carolyn", "janet", "catherine", "maria", "heather",
	"diane", "ruth", "julie", "olivia", "joyce", "virginia", "victoria",
	"kelly", "lauren", "christina", "joan", "evelyn", "judith", "megan",
	"andrea", "cheryl", "hannah", "jacqueline", "martha", "gloria", "teresa",
	"sara", "madison", "frances", "kathryn", "janice", "jean", "abigail",
	"alice", "judy", "sophia", "denise", "doris", "marilyn",
	"danielle", "beverly", "isabella", "theresa", "diana", "natalie", "brittany",
	"charlotte", "marie", "kayla", "alexis", "lori",
)

var personStopwords = wordSet(
	"the", "a", "an", "this", "that", "it", "i", "we", "you", "he", "she",
	"my", "your", "his", "her", "our", "their", "its",
	"mr", "mrs", "ms", "dr", "prof",
	"dear", "hi", "hello", "yes", "no", "ok", "please", "thank", "thanks",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"page", "section", "table", "figure", "chapter", "appendix",
	"total", "amount", "balance", "date", "number", "type",
)

// Job titles that often trail a capitalized name in reports.
var titleSuffixes = wordSet(
	"chairman", "chairwoman", "chairperson", "chair",
	"president", "vice", "director", "officer", "manager",
	"chief", "executive", "ceo", "cfo", "coo", "cto", "cio",
	"secretary", "treasurer", "counsel", "attorney",
	"partner", "associate", "analyst", "consultant",
	"md", "svp", "evp", "vp",
	"head", "lead", "senior", "junior",
)

var genericStopwords = wordSet(
	"q1", "q2", "q3", "q4", "fy", "ytd", "mtd",
	"n/a", "na", "tbd", "tba", "etc", "pdf", "doc",
	"inc", "llc", "ltd", "corp",
	"quarterly", "annual", "monthly", "weekly", "daily",
	"next", "last", "previous", "current", "recent",
	"today", "tomorrow", "yesterday",
	"above", "below", "total", "subtotal", "grand",
)
