package detect

import (
	"regexp"

	"github.com/tsawler/redacta/model"
)

// pattern is one standalone detection rule: the whole match is the
// candidate span.
type pattern struct {
	re       *regexp.Regexp
	category model.Category
	conf     float64
}

// labelPattern extracts the value from a "Label: value" construct.
// Exactly one capture group marks the value.
type labelPattern struct {
	re       *regexp.Regexp
	category model.Category
	conf     float64
}

var standalonePatterns = []pattern{
	// Email. Very high precision.
	{regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
		model.CatEmail, 0.98},

	// US SSN, dashed and spaced.
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), model.CatSSN, 0.50},
	{regexp.MustCompile(`\b\d{3}\s\d{2}\s\d{4}\b`), model.CatSSN, 0.40},
	// French NIR: 1 85 05 78 006 084 (42).
	{regexp.MustCompile(`\b[12]\s?\d{2}\s?(?:0[1-9]|1[0-2]|[2-9]\d)\s?\d{2,3}\s?\d{3}\s?\d{3}(?:\s?\d{2})?\b`),
		model.CatSSN, 0.60},
	// UK National Insurance: AB123456C.
	{regexp.MustCompile(`\b[A-CEGHJ-PR-TW-Z][A-CEGHJ-NPR-TW-Z]\s?\d{2}\s?\d{2}\s?\d{2}\s?[A-D]\b`),
		model.CatSSN, 0.65},
	// Spanish DNI and NIE.
	{regexp.MustCompile(`\b\d{8}[A-Z]\b`), model.CatSSN, 0.45},
	{regexp.MustCompile(`\b[XYZ]\d{7}[A-Z]\b`), model.CatSSN, 0.55},
	// Italian codice fiscale: RSSMRA85M01H501Z.
	{regexp.MustCompile(`\b[A-Z]{6}\d{2}[A-EHLMPR-T]\d{2}[A-Z]\d{3}[A-Z]\b`),
		model.CatSSN, 0.70},
	// Belgian national number: YY.MM.DD-XXX.CC.
	{regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{2}-\d{3}\.\d{2}\b`), model.CatSSN, 0.60},

	// Phone. US parenthesized, bare, international, French, UK.
	{regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`), model.CatPhone, 0.92},
	{regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`), model.CatPhone, 0.55},
	{regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{2,4}[-.\s]?\d{2,4}(?:[-.\s]?\d{2,4})?`),
		model.CatPhone, 0.88},
	{regexp.MustCompile(`(?:(?:\+|00)33\s?|0)[1-9](?:[\s.\-]?\d{2}){4}`),
		model.CatPhone, 0.90},
	{regexp.MustCompile(`\b0[1-9]\d{2,3}\s?\d{3}\s?\d{3,4}\b`), model.CatPhone, 0.50},
	{regexp.MustCompile(`\b1[-.]8(?:00|44|55|66|77|88)\b[-.\s]?\d{3}[-.\s]\d{4}\b`),
		model.CatPhone, 0.90},

	// Credit card. Luhn validated after the match.
	{regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`), model.CatCreditCard, 0.90},
	{regexp.MustCompile(`\b[3-6]\d{15}\b`), model.CatCreditCard, 0.40},
	{regexp.MustCompile(`\b3[47]\d{2}[-\s]?\d{6}[-\s]?\d{5}\b`), model.CatCreditCard, 0.90},

	// IBAN. Modulo-97 validated after the match.
	{regexp.MustCompile(`\b[A-Z]{2}\d{2}(?:\s?[A-Z0-9]{4}){3,8}(?:\s?[A-Z0-9]{1,4})?\b`),
		model.CatIBAN, 0.50},

	// Dates, numeric and verbal. Low base confidence; context keywords
	// near the match raise it.
	{regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4}\b`), model.CatDate, 0.35},
	{regexp.MustCompile(`\b\d{4}[/\-]\d{1,2}[/\-]\d{1,2}\b`), model.CatDate, 0.35},
	{regexp.MustCompile(`(?i)\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{1,2},?\s+\d{4}\b`),
		model.CatDate, 0.40},
	{regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{4}\b`),
		model.CatDate, 0.40},
	{regexp.MustCompile(`(?i)\b\d{1,2}(?:er)?\s+(?:janvier|f[ée]vrier|mars|avril|mai|juin|juillet|ao[uû]t|septembre|octobre|novembre|d[ée]cembre)\s+\d{4}\b`),
		model.CatDate, 0.45},
	{regexp.MustCompile(`(?i)\b\d{1,2}\.\s*(?:Januar|Februar|M[aä]rz|April|Mai|Juni|Juli|August|September|Oktober|November|Dezember)\s+\d{4}\b`),
		model.CatDate, 0.45},
	{regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:de\s+)?(?:enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre)(?:\s+(?:de\s+)?\d{4})?\b`),
		model.CatDate, 0.40},

	// IP addresses, v4 and full v6.
	{regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\b`),
		model.CatIPAddress, 0.85},
	{regexp.MustCompile(`\b(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}\b`),
		model.CatIPAddress, 0.80},

	// Passport formats: generic EU, German, French.
	{regexp.MustCompile(`\b[A-Z]{2}\d{7}\b`), model.CatPassport, 0.35},
	{regexp.MustCompile(`\b[A-Z]\d{2}[A-Z]\d{2}[A-Z]\d{2}\b`), model.CatPassport, 0.40},
	{regexp.MustCompile(`\b\d{2}[A-Z]{2}\d{5}\b`), model.CatPassport, 0.40},

	// Driver's license.
	{regexp.MustCompile(`\b[A-Z]\d{3}-\d{4}-\d{4}\b`), model.CatDriverLicense, 0.75},
	{regexp.MustCompile(`\b[A-Z]{1,2}\d{6,8}\b`), model.CatDriverLicense, 0.30},

	// Street addresses: English, French, German, PO boxes.
	{regexp.MustCompile(`(?i)\b\d{1,5}\s+(?:[NSEW]\.?\s+)?[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}\s+(?:Street|St|Avenue|Ave|Boulevard|Blvd|Drive|Dr|Road|Rd|Lane|Ln|Way|Court|Ct|Circle|Cir|Place|Pl|Terrace|Ter|Parkway|Pkwy|Highway|Hwy|Trail|Trl)\b\.?`),
		model.CatAddress, 0.80},
	{regexp.MustCompile(`(?i)\b\d{1,5}(?:\s*(?:bis|ter))?,?\s+(?:rue|avenue|av|boulevard|blvd|impasse|all[ée]e|chemin|place|cours|passage|square|quai|route|voie|sentier)(?:\s+(?:de\s+(?:la\s+|l['’])?|du\s+|des\s+|d['’]))?[A-ZÀ-Ü][a-zà-ü\-]+(?:\s+[A-ZÀ-Üa-zà-ü\-]+){0,3}\b`),
		model.CatAddress, 0.82},
	{regexp.MustCompile(`(?i)\b[A-ZÀ-Ü][a-zà-ü]+(?:stra[ßs]e|str\.?|weg|gasse|platz|ring|damm|allee|ufer)\s+\d{1,5}[a-z]?\b`),
		model.CatAddress, 0.80},
	{regexp.MustCompile(`(?i)\b(?:P\.?O\.?\s*Box|BP|Bo[iî]te\s*postale|Postfach|Apartado)\s+\d+\b`),
		model.CatAddress, 0.75},

	// Postal code plus city: French (with optional CEDEX), German,
	// UK, Dutch, Canadian.
	{regexp.MustCompile(`\b(?:F-?\s*)?(?:0[1-9]|[1-9]\d)\d{3}[ \t]+[A-ZÀ-Ü][a-zà-ü]+(?:[\s\-][A-ZÀ-Üa-zà-ü]+){0,3}\b`),
		model.CatAddress, 0.82},
	{regexp.MustCompile(`\b(?:0[1-9]|[1-9]\d)\d{3}[ \t]+[A-ZÀ-Ü][a-zà-ü]+(?:[\s\-][A-ZÀ-Üa-zà-ü]+){0,2}\s+[Cc][Ee][Dd][Ee][Xx](?:\s+\d{1,2})?\b`),
		model.CatAddress, 0.85},
	{regexp.MustCompile(`\b(?:D-?\s*)?\d{5}[ \t]+[A-ZÀ-Ü][a-zà-ü]+(?:[\s\-][A-ZÀ-Üa-zà-ü]+){0,3}\b`),
		model.CatAddress, 0.75},
	{regexp.MustCompile(`(?i)\b[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}\b`), model.CatAddress, 0.80},
	{regexp.MustCompile(`\b\d{5}-\d{4}\b`), model.CatAddress, 0.70},
	{regexp.MustCompile(`(?i)\b\d{4}\s?[A-Z]{2}\b`), model.CatAddress, 0.75},
	{regexp.MustCompile(`(?i)\b[A-Z]\d[A-Z]\s?\d[A-Z]\d\b`), model.CatAddress, 0.80},

	// Known city and country names.
	{regexp.MustCompile(`\b(?:Paris|Lyon|Marseille|Toulouse|Nice|Nantes|Strasbourg|Montpellier|Bordeaux|Lille|Rennes|Reims|Toulon|Grenoble|Dijon|Angers|Nîmes|Aix-en-Provence|Saint-[ÉE]tienne|Clermont-Ferrand|Le\s+Havre|Le\s+Mans|Amiens|Limoges|Tours|Metz|Besançon|Perpignan|Orléans|Caen|Mulhouse|Rouen|Nancy|London|Manchester|Birmingham|Leeds|Glasgow|Liverpool|Edinburgh|Bristol|New\s+York|Los\s+Angeles|Chicago|Houston|Phoenix|San\s+Francisco|San\s+Diego|Dallas|Austin|Seattle|Denver|Boston|Miami|Atlanta|Washington|Philadelphia|Detroit|Minneapolis|Berlin|Munich|München|Hamburg|Frankfurt|Cologne|Köln|Stuttgart|Düsseldorf|Leipzig|Dortmund|Essen|Dresden|Bremen|Hannover|Madrid|Barcelona|Valencia|Seville|Sevilla|Zaragoza|Málaga|Bilbao|Rome|Roma|Milan|Milano|Naples|Napoli|Turin|Torino|Florence|Firenze|Venice|Venezia|Bologna|Genoa|Genova|Palermo|Amsterdam|Rotterdam|The\s+Hague|Utrecht|Brussels|Bruxelles|Antwerp|Anvers|Ghent|Gent|Liège|Zürich|Zurich|Geneva|Genève|Basel|Bern|Lausanne|Lisbon|Lisboa|Porto|Vienna|Wien|Salzburg|Graz|Dublin|Cork|Toronto|Montreal|Montréal|Vancouver|Ottawa|Calgary|Edmonton|Sydney|Melbourne|Brisbane|Perth|Auckland|Tokyo|Osaka|Beijing|Shanghai|Singapore|Hong\s+Kong|Seoul|Mumbai|Delhi)\b`),
		model.CatLocation, 0.55},
	{regexp.MustCompile(`(?i)\b(?:France|Germany|Deutschland|United\s+Kingdom|United\s+States|Italia|Italy|España|Spain|Portugal|Netherlands|Nederland|Belgium|Belgique|België|Switzerland|Suisse|Schweiz|Svizzera|Austria|Österreich|Ireland|Irlande|Luxembourg|Denmark|Danmark|Sweden|Sverige|Norway|Norge|Finland|Poland|Polska|Czech\s+Republic|Czechia|Hungary|Romania|Greece|Grèce|Croatia|Slovenia|Slovakia|Bulgaria|Canada|Mexico|México|Brazil|Brasil|Argentina|Colombia|Chile|Australia|New\s+Zealand|Japan|Japon|China|Chine|India|Inde|South\s+Korea|Russia|Russie|Turkey|Turquie|United\s+Arab\s+Emirates|Saudi\s+Arabia|Israel|Egypt|Égypte|South\s+Africa|Nigeria|Morocco|Maroc|Tunisia|Tunisie|Algeria|Algérie|Senegal|Sénégal|Ivory\s+Coast|Côte\s+d['’]Ivoire|Cameroon|Cameroun)\b`),
		model.CatLocation, 0.50},
	// GPS coordinates.
	{regexp.MustCompile(`\b-?\d{1,3}\.\d{4,8},\s*-?\d{1,3}\.\d{4,8}\b`),
		model.CatLocation, 0.75},

	// Title-prefixed person names: English, French, German, Spanish,
	// Italian.
	{regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Miss|Dr|Prof|Rev|Sir|Madam|Capt|Sgt|Lt|Col|Gen)\.?[ \t]+[A-Z][a-z]{1,20}(?:[ \t]+[A-Z][a-z]{1,20}){0,3}\b`),
		model.CatPerson, 0.88},
	{regexp.MustCompile(`\b(?:M\.|Mme|Mlle)[ \t]+[A-ZÀ-Ü][a-zà-ü]{1,20}(?:[ \t]+[A-ZÀ-Ü][a-zà-ü]{1,20}){0,3}\b`),
		model.CatPerson, 0.88},
	{regexp.MustCompile(`\b(?:Herr|Frau)\.?[ \t]+[A-ZÀ-Ü][a-zà-ü]{1,20}(?:[ \t]+[A-ZÀ-Ü][a-zà-ü]{1,20}){0,3}\b`),
		model.CatPerson, 0.88},
	{regexp.MustCompile(`\b(?:Sr|Sra|Srta|Don|Do[ñn]a)\.?[ \t]+[A-ZÀ-Ü][a-zà-ü]{1,20}(?:[ \t]+[A-ZÀ-Ü][a-zà-ü]{1,20}){0,3}\b`),
		model.CatPerson, 0.85},
	{regexp.MustCompile(`\b(?:Sig|Sig\.ra|Sig\.na)\.?[ \t]+[A-ZÀ-Ü][a-zà-ü]{1,20}(?:[ \t]+[A-ZÀ-Ü][a-zà-ü]{1,20}){0,3}\b`),
		model.CatPerson, 0.85},

	// Organizations: French legal forms, multi-language legal
	// suffixes, group/company prefixes, lowercase connecting words,
	// numbered companies.
	{regexp.MustCompile(`\b[A-ZÀ-Ü][a-zà-ü\-']{1,25}(?:[ \t]+[A-ZÀ-Ü][a-zà-ü\-']{1,25}){0,4}[ \t]+(?:SA|SAS|SARL|EURL|SCI|SNC|SE|SENC)\b`),
		model.CatOrg, 0.90},
	{regexp.MustCompile(`(?i)\b[A-ZÀ-Ü][a-zA-Zà-üÀ-Ü&\-']{1,30}(?:[ \t]+[A-ZÀ-Ü][a-zA-Zà-üÀ-Ü&\-']{1,30}){0,4}[ \t]+(?:Inc|Corp|LLC|Ltd|LLP|PLC|Co|LP|GmbH|AG|KG|KGaA|OHG|UG|mbH|BV|B\.?V\.?|NV|N\.?V\.?|S\.?p\.?A\.?|S\.?r\.?l\.?|S\.?a\.?s\.?|Lt[ée]e|Limit[ée]e|Lda|Ltda|A/S|ApS|AS|ASA|AB|Oy|Oyj)\b\.?`),
		model.CatOrg, 0.88},
	{regexp.MustCompile(`\b(?:Groupe|Soci[ée]t[ée]|Compagnie|[ÉE]tablissements?|Ets|Cabinet|Maison|Group|Company|Corporation|Association|Foundation|Trust|Firma|Gesellschaft|Verein|Stiftung|Konzern|Grupo|Empresa|Gruppo|Societ[àa]|Azienda|Groep|Stichting)[ \t]+[A-ZÀ-Ü][a-zA-Zà-üÀ-Ü\-']{1,25}(?:[ \t]+[A-ZÀ-Ü][a-zA-Zà-üÀ-Ü\-']{1,25}){0,3}\b`),
		model.CatOrg, 0.85},
	{regexp.MustCompile(`(?i)\b[A-ZÀ-Ü][a-zA-Zà-üÀ-Ü.\-']{1,25}(?:[ \t]+(?:de|du|des|la|le|les|l'|d'|et|en|aux|au|à|del|los|las|el|y|para|di|della|delle|dei|degli|il|lo|per|da|do|dos|das|o|os|as|und|f[üu]r|der|die|das|den|dem|von|zu|zur|zum|van|het|voor|bij|op)|[ \t]+[A-ZÀ-Ü.][a-zA-Zà-üÀ-Ü.\-']{0,25}){1,8}[ \t]+(?:Lt[ée]e|Limit[ée]e|Inc|Corp|LLC|Ltd|LLP|PLC|Co|LP|SA|SAS|SARL|EURL|SCI|SNC|SE|SENC|Enr\.?g?\.?|GmbH|AG|KG|KGaA|OHG|UG|mbH|BV|B\.?V\.?|NV|N\.?V\.?|S\.?p\.?A\.?|S\.?r\.?l\.?|S\.?a\.?s\.?|Lda|Ltda|A/S|ApS|AS|ASA|AB|Oy|Oyj)\b\.?`),
		model.CatOrg, 0.90},
	{regexp.MustCompile(`(?i)\b\d{5,10}[ \t]+(?:[A-ZÀ-Ü][a-zA-Zà-üÀ-Ü\-']{1,20}[ \t]+){0,3}(?:Inc|Corp|LLC|Ltd|LLP|PLC|Co|LP|GmbH|AG|KG|BV|NV|S\.?p\.?A\.?|S\.?r\.?l\.?|Lt[ée]e|Limit[ée]e|Lda|Ltda|Enr\.?g?\.?|A/S|ApS|AS|ASA|AB|Oy|Oyj)\b\.?`),
		model.CatOrg, 0.90},

	// European VAT numbers.
	{regexp.MustCompile(`\b(?:FR|DE|ES|IT|BE|NL|AT|PT|PL|SE|DK|FI|IE|LU|CZ|SK|HU|RO|BG|HR|SI|EE|LV|LT|CY|MT|GR|EL|GB)[A-Z0-9]{8,12}\b`),
		model.CatCustom, 0.40},
}

var labelPatterns = []labelPattern{
	// Person names after labels, English and French and German.
	{regexp.MustCompile(`(?:(?:First|Last|Full|Middle|Sur|Family|Given|Maiden)[ \t]*[Nn]ame|[Nn]ame)[ \t]*:[ \t]*([A-Z][a-zA-Z'\-]{1,20}(?:[ \t]+[A-Z][a-zA-Z'\-]{1,20}){1,3})`),
		model.CatPerson, 0.85},
	{regexp.MustCompile(`(?i:Patient|Client|Applicant|Employee|Insured|Beneficiary|Claimant|Defendant|Plaintiff|Suspect|Witness|Victim|Tenant|Owner|Buyer|Seller)[ \t]*:[ \t]*([A-Z][a-zA-Z'\-]{1,20}(?:[ \t]+[A-Z][a-zA-Z'\-]{1,20}){1,3})`),
		model.CatPerson, 0.85},
	{regexp.MustCompile(`(?:Nom|Pr[ée]nom|Nom de famille|Nom complet|Identit[ée])[ \t]*:[ \t]*([A-ZÀ-Ü][a-zA-Zà-ü'\-]{1,20}(?:[ \t]+[A-ZÀ-Ü][a-zA-Zà-ü'\-]{1,20}){0,3})`),
		model.CatPerson, 0.85},
	{regexp.MustCompile(`(?:Vorname|Nachname|Familienname|Name)[ \t]*:[ \t]*([A-ZÀ-Ü][a-zA-Zà-ü'\-]{1,20}(?:[ \t]+[A-ZÀ-Ü][a-zA-Zà-ü'\-]{1,20}){0,3})`),
		model.CatPerson, 0.85},

	// Identifier values after labels.
	{regexp.MustCompile(`(?i:(?:Passport|Passeport|Reisepass)[ \t]*(?:No\.?|Number|Num[ée]ro|#|N°)?)[ \t]*:?[ \t]*([A-Z0-9]{6,9})`),
		model.CatPassport, 0.88},
	{regexp.MustCompile(`(?i:(?:Driver'?s?\s*Licen[cs]e|DL|Permis\s*(?:de\s*)?conduire|F[üu]hrerschein)[ \t]*(?:No\.?|Number|Num[ée]ro|#|N°)?)[ \t]*:?[ \t]*([A-Z0-9\-]{6,15})`),
		model.CatDriverLicense, 0.88},
	{regexp.MustCompile(`(?i:(?:SSN|Social\s*Security|Tax\s*ID|TIN)[ \t]*(?:No\.?|Number|#|N°)?)[ \t]*:?[ \t]*(\d{3}[-\s]?\d{2}[-\s]?\d{4})`),
		model.CatSSN, 0.92},
	{regexp.MustCompile(`(?i:N°\s*(?:de\s*)?(?:s[ée]curit[ée]\s*sociale|s[ée]cu|SS)|Num[ée]ro\s*(?:de\s*)?(?:s[ée]curit[ée]\s*sociale|s[ée]cu|SS)|NIR)[ \t]*:?[ \t]*([12]\s?\d{2}\s?(?:0[1-9]|1[0-2]|[2-9]\d)\s?\d{2,3}\s?\d{3}\s?\d{3}(?:\s?\d{2})?)`),
		model.CatSSN, 0.92},
	{regexp.MustCompile(`(?i:(?:National\s*Insurance|NI|NINO)[ \t]*(?:No\.?|Number|#|N°)?)[ \t]*:?[ \t]*([A-CEGHJ-PR-TW-Z][A-CEGHJ-NPR-TW-Z]\s?\d{2}\s?\d{2}\s?\d{2}\s?[A-D])`),
		model.CatSSN, 0.92},
	{regexp.MustCompile(`(?i:IBAN|RIB|Compte\s*bancaire|Bankverbindung|Bank\s*account)[ \t]*:?[ \t]*([A-Z]{2}\d{2}(?:\s?[A-Z0-9]{4}){3,8}(?:\s?[A-Z0-9]{1,4})?)`),
		model.CatIBAN, 0.90},
	{regexp.MustCompile(`(?i:TVA|VAT|Tax\s*ID|N°\s*TVA|Num[ée]ro\s*(?:de\s*)?TVA|USt-IdNr|NIF|SIREN|SIRET)[ \t]*:?[ \t]*([A-Z]{0,2}[A-Z0-9]{8,14})`),
		model.CatCustom, 0.88},

	// Free-text address after a label.
	{regexp.MustCompile(`(?i)(?:Address|Adresse|Anschrift|Direcci[oó]n|Indirizzo|Domicile)[ \t]*:[ \t]*(.{10,80})`),
		model.CatAddress, 0.80},

	// Dates of birth.
	{regexp.MustCompile(`(?i)(?:Date\s*of\s*Birth|DOB|N[ée]\(?e?\)?\s*le|Date\s*de\s*naissance|Geburtsdatum|Geboren\s*am|Fecha\s*de\s*nacimiento|Data\s*di\s*nascita)[ \t]*:?[ \t]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
		model.CatDate, 0.92},
	{regexp.MustCompile(`(?i)(?:Date\s*of\s*Birth|DOB|N[ée]\(?e?\)?\s*le|Date\s*de\s*naissance)[ \t]*:?[ \t]*(\d{1,2}\s+\w+\s+\d{4}|\w+\s+\d{1,2},?\s+\d{4})`),
		model.CatDate, 0.90},

	// Phone and email after labels.
	{regexp.MustCompile(`(?i)(?:Phone|Tel|T[ée]l[ée]phone|Mobile|Cell|Fax|Portable|Fixe|Rufnummer|Telefon)[ \t]*(?:No\.?|Number|Num[ée]ro|#|N°)?[ \t]*:?[ \t]*([\d\s+().\-]{7,20})`),
		model.CatPhone, 0.88},
	{regexp.MustCompile(`(?i)(?:Email|E-mail|Courriel|Mail)[ \t]*:[ \t]*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`),
		model.CatEmail, 0.95},
}

// orgPatterns exposes the organization subset for the cross-line
// scanner.
func orgPatterns() []pattern {
	var out []pattern
	for _, p := range standalonePatterns {
		if p.category == model.CatOrg {
			out = append(out, p)
		}
	}
	return out
}

// Context keywords: appearing shortly before a match they raise its
// confidence. Multilingual by design since documents mix languages.
var contextKeywords = map[model.Category][]string{
	model.CatSSN: {
		"ssn", "social security", "social sec", "tax id", "tin",
		"sécurité sociale", "securite sociale", "sécu", "secu",
		"nir", "n° ss", "n°ss", "numéro ss", "numero ss",
		"steuer-id", "steueridentifikationsnummer", "steuernummer",
		"nif", "dni", "nie", "codice fiscale", "fiscal",
		"rijksregisternummer", "bsn", "burgerservicenummer",
		"national insurance", "ni number", "nino",
	},
	model.CatPhone: {
		"phone", "tel", "téléphone", "telephone", "mobile", "cell",
		"fax", "call", "contact", "number", "numéro", "numero",
		"portable", "fixe", "desk", "direct", "ligne",
		"rufnummer", "telefon", "handy", "mobil",
		"teléfono", "telefono", "cellulare", "celular",
	},
	model.CatEmail: {
		"email", "e-mail", "mail", "courriel", "courrier",
		"electronic", "électronique", "electronique",
	},
	model.CatCreditCard: {
		"card", "credit", "debit", "visa", "mastercard", "amex",
		"payment", "account", "carte", "bancaire", "cb", "paiement",
		"kreditkarte", "tarjeta", "carta",
	},
	model.CatIBAN: {
		"iban", "bank", "account", "swift", "bic",
		"compte", "bancaire", "banque", "rib",
		"kontonummer", "bankverbindung", "konto",
		"cuenta", "conto", "rekening",
	},
	model.CatDate: {
		"born", "birth", "dob", "date of birth", "expires", "expiry",
		"issued", "valid", "deceased", "hired", "terminated",
		"né le", "nee le", "née le", "date de naissance",
		"geburtsdatum", "geboren", "nacimiento",
		"nato il", "nata il", "data di nascita",
	},
	model.CatPerson: {
		"name", "patient", "client", "applicant", "employee",
		"mr", "mrs", "ms", "dr", "prof", "sir", "madam",
		"first name", "last name", "full name", "surname", "given name",
		"maiden name", "alias", "known as",
		"nom", "prénom", "prenom", "employé", "employe",
		"salarié", "salarie", "monsieur", "madame", "mademoiselle",
		"nom de famille", "nom complet", "identité", "identite",
		"vorname", "nachname", "familienname", "herr", "frau",
		"nombre", "apellido", "cognome", "nome", "señor", "señora",
		"signor", "signora",
	},
	model.CatAddress: {
		"address", "street", "city", "state", "zip", "postal",
		"residence", "home", "mailing", "domicile", "located at",
		"lives at", "residing",
		"adresse", "rue", "avenue", "boulevard", "ville",
		"code postal", "cedex", "lieu-dit", "habite",
		"anschrift", "straße", "strasse", "plz", "wohnort",
		"dirección", "direccion", "calle", "indirizzo", "via",
	},
	model.CatLocation: {
		"city", "town", "country", "state", "province", "region",
		"county", "municipality", "district", "born in", "located in",
		"based in", "from", "origin", "nationality", "citizen",
		"ville", "pays", "commune", "département", "departement",
		"région", "né à", "née à", "originaire",
		"nationalité", "nationalite", "domicilié", "domiciliée",
		"stadt", "land", "gemeinde", "kreis", "bundesland",
		"geboren in", "staatsangehörigkeit",
		"ciudad", "país", "pais", "provincia", "comune",
		"nazione", "cittadinanza", "nacionalidad",
	},
	model.CatPassport: {
		"passport", "passeport", "reisepass", "pasaporte", "passaporto",
		"travel document", "document de voyage",
	},
	model.CatDriverLicense: {
		"driver", "license", "licence", "dl", "driving",
		"permis", "conduire", "führerschein", "fuhrerschein",
		"patente", "licencia", "rijbewijs",
	},
	model.CatIPAddress: {
		"ip", "address", "server", "host", "endpoint",
	},
	model.CatCustom: {
		"badge", "employee id", "emp id", "staff id", "member id",
		"case", "file", "dossier", "numéro dossier", "n° dossier",
		"reference", "référence", "matricule", "registration",
		"vat", "tva", "tax", "ust-idnr", "ust",
	},
}

// Exclusion patterns: a candidate fully contained in one of these
// contexts is a known false positive (page numbers, section refs,
// amounts, timestamps).
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpage\s+\d+`),
	regexp.MustCompile(`(?i)\bp\.\s*\d+`),
	regexp.MustCompile(`(?i)\b(?:section|sec|figure|fig|table|tab|chapter|ch|item|no|#|art(?:icle)?)\s*\.?\s*\d+`),
	regexp.MustCompile(`(?i)\bv(?:ersion)?\s*\d+(?:\.\d+)+`),
	regexp.MustCompile(`\b\d+(?:\.\d+)?%`),
	regexp.MustCompile(`[$€£¥]\s*\d`),
	regexp.MustCompile(`\b\d[\d,]*\.\d{2}\b`),
	regexp.MustCompile(`\[\d{1,3}\]`),
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:KB|MB|GB|TB)\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?::\d{2})?\s*(?:AM|PM)?\b`),
	regexp.MustCompile(`(?i)\b(?:INV|PO|SO|REF|REQ|TKT|DOC|ID)[-#]?\d+\b`),
}
