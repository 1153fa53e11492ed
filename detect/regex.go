package detect

import (
	"context"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/textutil"
)

const (
	// Characters to look back for context keywords.
	ctxWindow = 100
	ctxBoost  = 0.25

	// Exclusion context window around a candidate.
	excludeBefore = 30
	excludeAfter  = 10
)

// RegexDetector is the first detection layer: structured and
// semi-structured patterns with checksum validation, exclusion
// filtering, and context-keyword boosting.
type RegexDetector struct{}

// NewRegexDetector returns the pattern-bank detector. It holds no
// per-call state and is safe for concurrent use.
func NewRegexDetector() *RegexDetector {
	return &RegexDetector{}
}

func (d *RegexDetector) Name() string { return "regex" }

// Detect scans text with the full pattern bank. The language tag is
// unused here; the bank is multilingual by construction.
func (d *RegexDetector) Detect(ctx context.Context, text string, _ language.Tag) ([]model.DetectionMatch, error) {
	var all []model.DetectionMatch

	for _, p := range standalonePatterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			matched := text[start:end]

			conf, ok := validateMatch(matched, p.category, p.conf)
			if !ok {
				continue
			}
			if inExcludedContext(text, start, end) {
				continue
			}
			conf = min1(conf + contextBoost(text, start, p.category))

			all = append(all, model.DetectionMatch{
				Start: start, End: end, Text: matched,
				Category: p.category, Confidence: conf, Source: model.SourceRegex,
			})
		}
	}

	for _, p := range labelPatterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			start, end := loc[2], loc[3]
			value := text[start:end]
			if len(strings.TrimSpace(value)) < 3 {
				continue
			}
			conf, ok := validateMatch(value, p.category, p.conf)
			if !ok {
				continue
			}
			conf = min1(conf + contextBoost(text, start, p.category))

			all = append(all, model.DetectionMatch{
				Start: start, End: end, Text: value,
				Category: p.category, Confidence: conf, Source: model.SourceRegex,
			})
		}
	}

	return dedupeOverlaps(all), nil
}

// validateMatch applies checksum and plausibility gates. The boolean
// is false when the match must be rejected outright.
func validateMatch(matched string, cat model.Category, baseConf float64) (float64, bool) {
	switch cat {
	case model.CatCreditCard:
		if !luhnCheck(matched) {
			return 0, false
		}
	case model.CatDate:
		if numericDateRe.MatchString(matched) && !plausibleDate(matched) {
			return 0, false
		}
	case model.CatIBAN:
		if !ibanMod97(matched) {
			return 0, false
		}
	case model.CatSSN:
		digits := strings.Join(strings.Fields(matched), "")
		if (len(digits) == 13 || len(digits) == 15) &&
			(digits[0] == '1' || digits[0] == '2') &&
			textutil.IsDigitsOnly(digits) {
			if !validFrenchNIR(digits) {
				return 0, false
			}
		}
	}
	return baseConf, true
}

var numericDateRe = regexp.MustCompile(`^\d{1,4}[/\-.]\d{1,2}[/\-.]\d{1,4}$`)

// luhnCheck validates card numbers by the standard mod-10 algorithm.
func luhnCheck(s string) bool {
	var digits []int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) < 13 {
		return false
	}
	checksum := 0
	for i := 0; i < len(digits); i++ {
		d := digits[len(digits)-1-i]
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		checksum += d
	}
	return checksum%10 == 0
}

// plausibleDate checks month and day ranges for a numeric date,
// accepting both day-first and month-first orderings.
func plausibleDate(s string) bool {
	parts := regexp.MustCompile(`[/\-.]`).Split(s, -1)
	if len(parts) != 3 {
		return false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return false
		}
		nums[i] = n
	}

	var m, d int
	switch {
	case nums[0] > 31: // YYYY-MM-DD
		m, d = nums[1], nums[2]
	case nums[2] > 31 || len(parts[2]) == 4:
		if nums[0] > 12 {
			d, m = nums[0], nums[1] // DD/MM/YYYY
		} else {
			m, d = nums[0], nums[1] // MM/DD/YYYY or ambiguous
		}
	default:
		m, d = nums[0], nums[1]
	}
	return m >= 1 && m <= 12 && d >= 1 && d <= 31
}

// ibanMod97 validates an IBAN via the ISO 7064 modulo-97 check.
func ibanMod97(s string) bool {
	clean := strings.ToUpper(strings.NewReplacer(" ", "", "-", "").Replace(s))
	if len(clean) < 15 || len(clean) > 34 {
		return false
	}
	for _, r := range clean[:2] {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	for _, r := range clean[2:4] {
		if r < '0' || r > '9' {
			return false
		}
	}

	rearranged := clean[4:] + clean[:4]
	var sb strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteString(strconv.Itoa(int(r-'A') + 10))
		default:
			return false
		}
	}
	n, ok := new(big.Int).SetString(sb.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
}

// validFrenchNIR checks the structure of a French social security
// number: sex digit, plausible month, plausible department.
func validFrenchNIR(digits string) bool {
	if len(digits) != 13 && len(digits) != 15 {
		return false
	}
	if digits[0] != '1' && digits[0] != '2' {
		return false
	}
	month, err := strconv.Atoi(digits[3:5])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	dept, err := strconv.Atoi(digits[5:7])
	if err != nil || dept < 1 || dept > 99 {
		return false
	}
	return true
}

// contextBoost raises confidence when a category keyword appears in
// the window before the match.
func contextBoost(text string, matchStart int, cat model.Category) float64 {
	keywords := contextKeywords[cat]
	if len(keywords) == 0 {
		return 0
	}
	windowStart := matchStart - ctxWindow
	if windowStart < 0 {
		windowStart = 0
	}
	window := strings.ToLower(text[windowStart:matchStart])
	for _, kw := range keywords {
		if strings.Contains(window, kw) {
			return ctxBoost
		}
	}
	return 0
}

// inExcludedContext reports whether a candidate match falls fully
// inside a known non-PII construct. Only full containment excludes,
// so a partial sub-match inside a longer PII span cannot trigger a
// false exclusion.
func inExcludedContext(text string, matchStart, matchEnd int) bool {
	windowStart := matchStart - excludeBefore
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := matchEnd + excludeAfter
	if windowEnd > len(text) {
		windowEnd = len(text)
	}
	window := text[windowStart:windowEnd]

	for _, pat := range excludePatterns {
		for _, loc := range pat.FindAllStringIndex(window, -1) {
			absStart := windowStart + loc[0]
			absEnd := windowStart + loc[1]
			if absStart <= matchStart && absEnd >= matchEnd {
				return true
			}
		}
	}
	return false
}

func min1(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
