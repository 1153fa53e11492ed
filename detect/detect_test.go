package detect

import (
	"context"
	"math"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/tsawler/redacta/model"
)

func ofCategory(matches []model.DetectionMatch, cat model.Category) []model.DetectionMatch {
	var out []model.DetectionMatch
	for _, m := range matches {
		if m.Category == cat {
			out = append(out, m)
		}
	}
	return out
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestRegexEmail(t *testing.T) {
	d := NewRegexDetector()
	matches, err := d.Detect(context.Background(), "Contact: john.smith@example.com today.", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %v", len(matches), matches)
	}
	m := matches[0]
	if m.Category != model.CatEmail || m.Text != "john.smith@example.com" {
		t.Errorf("got %+v", m)
	}
	if !approx(m.Confidence, 0.98) {
		t.Errorf("confidence = %v, want 0.98", m.Confidence)
	}
}

func TestRegexSSNWithLabelAndBoost(t *testing.T) {
	d := NewRegexDetector()
	matches, err := d.Detect(context.Background(), "SSN: 123-45-6789", language.English)
	if err != nil {
		t.Fatal(err)
	}
	ssn := ofCategory(matches, model.CatSSN)
	if len(ssn) != 1 {
		t.Fatalf("expected 1 SSN match, got %d: %v", len(ssn), matches)
	}
	if ssn[0].Text != "123-45-6789" {
		t.Errorf("text = %q", ssn[0].Text)
	}
	// Label pattern at 0.92 plus the context boost, capped at 1.0.
	if !approx(ssn[0].Confidence, 1.0) {
		t.Errorf("confidence = %v, want 1.0", ssn[0].Confidence)
	}
}

func TestRegexCreditCardLuhn(t *testing.T) {
	d := NewRegexDetector()

	matches, err := d.Detect(context.Background(), "Charged to 4111 1111 1111 1111 yesterday", language.English)
	if err != nil {
		t.Fatal(err)
	}
	cards := ofCategory(matches, model.CatCreditCard)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card match, got %v", matches)
	}
	if !approx(cards[0].Confidence, 0.90) {
		t.Errorf("confidence = %v, want 0.90", cards[0].Confidence)
	}

	matches, err = d.Detect(context.Background(), "Charged to 1234 5678 9012 3456 yesterday", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if got := ofCategory(matches, model.CatCreditCard); len(got) != 0 {
		t.Errorf("luhn-invalid number should be rejected, got %v", got)
	}
}

func TestRegexIBANChecksum(t *testing.T) {
	d := NewRegexDetector()

	matches, err := d.Detect(context.Background(), "Transfer to GB82 WEST 1234 5698 7654 32", language.English)
	if err != nil {
		t.Fatal(err)
	}
	ibans := ofCategory(matches, model.CatIBAN)
	if len(ibans) != 1 {
		t.Fatalf("expected 1 IBAN match, got %v", matches)
	}
	if !approx(ibans[0].Confidence, 0.50) {
		t.Errorf("confidence = %v, want 0.50 without context", ibans[0].Confidence)
	}

	matches, err = d.Detect(context.Background(), "Transfer to GB82 WEST 1234 5698 7654 33", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if got := ofCategory(matches, model.CatIBAN); len(got) != 0 {
		t.Errorf("mod-97 failure should be rejected, got %v", got)
	}
}

func TestRegexIBANContextBoost(t *testing.T) {
	d := NewRegexDetector()
	matches, err := d.Detect(context.Background(), "Account IBAN is GB82 WEST 1234 5698 7654 32", language.English)
	if err != nil {
		t.Fatal(err)
	}
	ibans := ofCategory(matches, model.CatIBAN)
	if len(ibans) != 1 {
		t.Fatalf("expected 1 IBAN match, got %v", matches)
	}
	if !approx(ibans[0].Confidence, 0.75) {
		t.Errorf("confidence = %v, want 0.50 + 0.25 boost", ibans[0].Confidence)
	}
}

func TestRegexExcludedContext(t *testing.T) {
	d := NewRegexDetector()
	matches, err := d.Detect(context.Background(), "Ticket ID12345678 closed", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("reference number inside exclusion context kept: %v", matches)
	}
}

func TestRegexBoostPicksWinnerAcrossCategories(t *testing.T) {
	// The same token matches the passport pattern at 0.35 and the
	// driver's license pattern at 0.30; the license keyword nearby
	// boosts the latter past it.
	d := NewRegexDetector()
	matches, err := d.Detect(context.Background(), "License AB1234567 on file", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match after dedupe, got %v", matches)
	}
	if matches[0].Category != model.CatDriverLicense {
		t.Errorf("category = %v, want DRIVER_LICENSE", matches[0].Category)
	}
	if !approx(matches[0].Confidence, 0.55) {
		t.Errorf("confidence = %v, want 0.30 + 0.25 boost", matches[0].Confidence)
	}
}

func TestRegexDatePlausibility(t *testing.T) {
	d := NewRegexDetector()

	matches, err := d.Detect(context.Background(), "Due 13/13/2024 maybe", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if got := ofCategory(matches, model.CatDate); len(got) != 0 {
		t.Errorf("month 13 should be rejected, got %v", got)
	}

	matches, err = d.Detect(context.Background(), "Born on 31/12/2024 in", language.English)
	if err != nil {
		t.Fatal(err)
	}
	dates := ofCategory(matches, model.CatDate)
	if len(dates) != 1 {
		t.Fatalf("expected 1 date match, got %v", matches)
	}
	if !approx(dates[0].Confidence, 0.60) {
		t.Errorf("confidence = %v, want 0.35 + 0.25 boost", dates[0].Confidence)
	}
}

func TestRegexPhone(t *testing.T) {
	d := NewRegexDetector()
	matches, err := d.Detect(context.Background(), "Call (514) 555-1234 now", language.English)
	if err != nil {
		t.Fatal(err)
	}
	phones := ofCategory(matches, model.CatPhone)
	if len(phones) != 1 {
		t.Fatalf("expected 1 phone match, got %v", matches)
	}
	if !approx(phones[0].Confidence, 1.0) {
		t.Errorf("confidence = %v, want 0.92 + 0.25 capped", phones[0].Confidence)
	}
}

func TestRegexFrenchNIR(t *testing.T) {
	d := NewRegexDetector()

	matches, err := d.Detect(context.Background(), "NIR 1 85 05 78 006 084 42", language.French)
	if err != nil {
		t.Fatal(err)
	}
	ssn := ofCategory(matches, model.CatSSN)
	if len(ssn) != 1 {
		t.Fatalf("expected 1 NIR match, got %v", matches)
	}
	if !approx(ssn[0].Confidence, 1.0) {
		t.Errorf("confidence = %v, want labeled 0.92 + 0.25 capped", ssn[0].Confidence)
	}

	// Department 00 passes the regex but fails structural validation.
	matches, err = d.Detect(context.Background(), "NIR 1 85 05 00 006 084 42", language.French)
	if err != nil {
		t.Fatal(err)
	}
	if got := ofCategory(matches, model.CatSSN); len(got) != 0 {
		t.Errorf("invalid department should be rejected, got %v", got)
	}
}

func TestRegexPersonLabel(t *testing.T) {
	d := NewRegexDetector()
	matches, err := d.Detect(context.Background(), "Patient: Emily Carter was admitted to the clinic", language.English)
	if err != nil {
		t.Fatal(err)
	}
	people := ofCategory(matches, model.CatPerson)
	if len(people) != 1 {
		t.Fatalf("expected 1 person match, got %v", matches)
	}
	if people[0].Text != "Emily Carter" {
		t.Errorf("text = %q, want value only", people[0].Text)
	}
}

func TestRegexCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewRegexDetector()
	if _, err := d.Detect(ctx, "SSN: 123-45-6789", language.English); err == nil {
		t.Error("expected context error")
	}
}

func TestDetectLanguageEnglish(t *testing.T) {
	text := "This is the story of a man who would not give up because he " +
		"knew that all of his work would pay off in the end and they were happy " +
		"with what he had done for them over the years"
	if got := DetectLanguage(text); got != language.English {
		t.Errorf("language = %v, want English", got)
	}
}

func TestDetectLanguageFrench(t *testing.T) {
	text := "le directeur est dans la salle et il ne veut pas que les autres " +
		"soient en retard pour la réunion qui aura lieu dans les bureaux de la " +
		"société avec tous les employés et leur famille"
	if got := DetectLanguage(text); got != language.French {
		t.Errorf("language = %v, want French", got)
	}
}

func TestDetectLanguageShortTextDefaultsToEnglish(t *testing.T) {
	if got := DetectLanguage("Bonjour"); got != language.English {
		t.Errorf("language = %v, want English default", got)
	}
}

func TestHeuristicFindsKnownFirstName(t *testing.T) {
	d := NewHeuristicNameDetector()
	matches, err := d.Detect(context.Background(), "Quarterly review with John Smith and the team", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %v", matches)
	}
	m := matches[0]
	if m.Text != "John Smith" || m.Category != model.CatPerson {
		t.Errorf("got %+v", m)
	}
	if !approx(m.Confidence, 0.50) {
		t.Errorf("confidence = %v, want 0.50", m.Confidence)
	}
	if m.Source != model.SourceHeuristic {
		t.Errorf("source = %v", m.Source)
	}
}

func TestHeuristicThreeWordName(t *testing.T) {
	d := NewHeuristicNameDetector()
	matches, err := d.Detect(context.Background(), "Approved by Mary Jane Watson yesterday", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %v", matches)
	}
	if matches[0].Text != "Mary Jane Watson" {
		t.Errorf("text = %q", matches[0].Text)
	}
	if !approx(matches[0].Confidence, 0.55) {
		t.Errorf("confidence = %v, want 0.55", matches[0].Confidence)
	}
}

func TestHeuristicUnknownFirstNameSkipped(t *testing.T) {
	d := NewHeuristicNameDetector()
	matches, err := d.Detect(context.Background(), "Report from Zorblax Smith today", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("unknown first name kept: %v", matches)
	}
}

func TestHeuristicTitleSuffixSkipped(t *testing.T) {
	d := NewHeuristicNameDetector()
	matches, err := d.Detect(context.Background(), "Met with John Director about staffing", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("title suffix kept: %v", matches)
	}
}

func TestHeuristicSkipsNonEnglishText(t *testing.T) {
	d := NewHeuristicNameDetector()
	text := "le rapport de la commission est dans les bureaux et Marie Curie ne " +
		"sera pas avec nous pour la réunion de demain car elle est dans le train " +
		"depuis ce matin avec ses amis"
	matches, err := d.Detect(context.Background(), text, language.French)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("heuristic should not run on non-English text, got %v", matches)
	}
}

func TestCrossLineOrgStraddlesBreak(t *testing.T) {
	s := NewCrossLineOrgScanner()
	text := "Report by Acme\nHoldings Inc today"
	matches, err := s.Detect(context.Background(), text, language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %v", matches)
	}
	m := matches[0]
	if m.Category != model.CatOrg {
		t.Errorf("category = %v, want ORG", m.Category)
	}
	if !strings.Contains(m.Text, "Acme\nHoldings Inc") {
		t.Errorf("text = %q, should span the line break", m.Text)
	}
	nl := strings.IndexByte(text, '\n')
	if m.Start >= nl || m.End <= nl {
		t.Errorf("match [%d,%d) does not straddle the break at %d", m.Start, m.End, nl)
	}
}

func TestCrossLineOrgIgnoresSameLineMatches(t *testing.T) {
	s := NewCrossLineOrgScanner()
	matches, err := s.Detect(context.Background(), "Acme Holdings Inc delivered on time", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("same-line org is the regex layer's job, got %v", matches)
	}
}

func TestCrossLineOrgNoFalsePositives(t *testing.T) {
	s := NewCrossLineOrgScanner()
	matches, err := s.Detect(context.Background(), "The meeting ended late\nNext item tomorrow", language.English)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("got %v", matches)
	}
}
