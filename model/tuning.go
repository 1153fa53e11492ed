package model

// Per-category tuning tables. Keeping these as data rather than
// scattered conditionals means adding a category or locale is a data
// change, not a code change.

// maxWordsByCategory caps how many fragments one region may cover.
var maxWordsByCategory = map[Category]int{
	CatEmail:         1,
	CatIPAddress:     1,
	CatPassport:      2,
	CatSSN:           3,
	CatDate:          3,
	CatDriverLicense: 3,
	CatPerson:        4,
	CatCreditCard:    4,
	CatAddress:       7,
	CatIBAN:          8,
	CatPhone:         8,
	CatOrg:           8,
}

const maxWordsDefault = 4

// maxLinesByCategory caps how many visual lines one logical detection
// may span before being chunked into linked groups.
var maxLinesByCategory = map[Category]int{
	CatOrg:     4,
	CatAddress: 4,
	CatPerson:  2,
}

const maxLinesDefault = 1

// minDigitsByCategory rejects matches with too few digits for
// digit-bearing categories; missing entries mean no requirement.
var minDigitsByCategory = map[Category]int{
	CatSSN:           7,
	CatPhone:         7,
	CatCreditCard:    13,
	CatIBAN:          15,
	CatDriverLicense: 6,
	CatPassport:      6,
}

// spatialGapFactorByCategory scales the adaptive gap threshold when
// splitting regions at horizontal gaps. Higher values allow larger
// gaps inside one region.
var spatialGapFactorByCategory = map[Category]float64{
	CatAddress: 3.0,
	CatOrg:     2.0,
	CatPerson:  1.5,
}

const spatialGapFactorDefault = 1.5

// MaxWords returns the fragment-count cap for a category.
func (c Category) MaxWords() int {
	if v, ok := maxWordsByCategory[c]; ok {
		return v
	}
	return maxWordsDefault
}

// MaxLines returns the visual-line cap for a category.
func (c Category) MaxLines() int {
	if v, ok := maxLinesByCategory[c]; ok {
		return v
	}
	return maxLinesDefault
}

// MinDigits returns the minimum digit count for the category and
// whether a requirement exists.
func (c Category) MinDigits() (int, bool) {
	v, ok := minDigitsByCategory[c]
	return v, ok
}

// SpatialGapFactor returns the gap-tolerance multiplier for the
// category.
func (c Category) SpatialGapFactor() float64 {
	if v, ok := spatialGapFactorByCategory[c]; ok {
		return v
	}
	return spatialGapFactorDefault
}

// CurrencyRunes are symbols whose presence marks a digit sequence as a
// monetary amount rather than an identifier.
var CurrencyRunes = map[rune]bool{
	'$': true, '€': true, '£': true, '¥': true, '₹': true,
	'₽': true, '₩': true, '฿': true, '₫': true, '₴': true,
}
