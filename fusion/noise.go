package fusion

import (
	"regexp"
	"strings"
	"unicode"
)

// Noise predicates for the freeform categories. Detector adapters for
// names, organizations, and locations produce plausible-looking false
// positives out of table headers, financial vocabulary, and sentence
// fragments; these filters are the shared last line of defense for the
// merge pass, the final safety net, and propagation.

// legalSuffixRe matches legal company suffixes across the supported
// jurisdictions (Inc, GmbH, SARL, Ltée, S.p.A., ...). A candidate
// carrying one is treated as a real company name even when every
// other word is ordinary vocabulary.
var legalSuffixRe = regexp.MustCompile(
	`(?i)\b(?:inc|corp|ltd|llc|llp|plc|co|lp|sas|sarl|gmbh|ag|bv|nv|` +
		`kg|kgaa|ohg|ug|mbh|e\.?k\.?|e\.?v\.?|se|` +
		`lt[ée]e|limit[ée]e|enr|s\.?e\.?n\.?c\.?|` +
		`s\.?a\.?r?\.?l?\.?|s\.?p\.?a\.?|s\.?r\.?l\.?)\b\.?`)

// HasLegalSuffix reports whether text contains a legal company suffix
// anywhere.
func HasLegalSuffix(text string) bool {
	return legalSuffixRe.MatchString(strings.TrimSpace(text))
}

// Leading articles in the supported languages, shared by the ORG and
// PERSON strips.
var articlePrefixRe = regexp.MustCompile(
	`^(?:[LlDd]['’]\s*` +
		`|[Ll][eao]s?\s+|[Dd][eiu]s?\s+|[Uu]n[ea]?\s+` +
		`|[Ee]l\s+|[Ll]os\s+|[Ll]as\s+` +
		`|[Ii]l\s+|[Gg]li\s+|[Uu]n[oa]?\s+` +
		`|[Dd](?:er|ie|as|en|em|es)\s+|[Ee]in[e]?\s+` +
		`|[Hh]et\s+|[Dd]e\s+|[Ee]en\s+` +
		`|[Oo]s?\s+|[Aa]s?\s+` +
		`)`)

func wordSet(words ...string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}

// commonWords is ordinary vocabulary across the supported languages.
// An ORG candidate made entirely of these words, without a legal
// suffix, is sentence text that a name layer mistook for a company.
var commonWords = wordSet(
	// English
	"the", "a", "an", "and", "or", "of", "in", "on", "at", "to", "for",
	"with", "from", "by", "as", "is", "are", "was", "were", "be", "been",
	"has", "have", "had", "will", "would", "can", "could", "may", "must",
	"not", "no", "yes", "all", "any", "each", "other", "this", "that",
	"these", "those", "new", "old", "first", "last", "next", "previous",
	"total", "amount", "balance", "number", "date", "year", "month",
	"day", "time", "page", "section", "table", "figure", "note", "notes",
	"report", "reports", "statement", "statements", "summary", "detail",
	"details", "description", "value", "values", "item", "items",
	"income", "expense", "expenses", "revenue", "profit", "loss",
	"asset", "assets", "equity", "cash", "capital", "interest",
	"account", "accounts", "fund", "funds", "rate", "rates", "tax",
	"taxes", "net", "gross", "annual", "monthly", "quarterly", "fiscal",
	"financial", "general", "management", "board", "committee",
	"meeting", "members", "member", "company", "companies", "group",
	"business", "services", "service", "operations", "operating",
	"current", "long", "term", "short", "period", "periods", "ended",
	"ending", "during", "between", "under", "over", "above", "below",
	"following", "according", "respectively", "approximately",
	// French
	"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou", "en",
	"dans", "sur", "pour", "avec", "par", "au", "aux", "ce", "cette",
	"ces", "est", "sont", "ont", "été", "etre", "être", "fait", "faire",
	"exercice", "montant", "montants", "compte", "comptes", "résultat",
	"resultat", "bilan", "actif", "passif", "charges", "produits",
	"capitaux", "propres", "dettes", "créances", "creances",
	"immobilisations", "amortissements", "provisions", "annexe",
	"rapport", "société", "societe", "entreprise", "gestion",
	"conseil", "administration", "assemblée", "assemblee",
	"générale", "generale", "nette", "brut", "brute", "annuel",
	"annuelle", "suivant", "suivante", "précédent", "precedent",
	// German
	"der", "die", "das", "den", "dem", "ein", "eine", "und", "oder",
	"von", "zu", "mit", "auf", "für", "fuer", "aus", "bei", "nach",
	"über", "ueber", "unter", "durch", "ist", "sind", "hat", "haben",
	"wird", "werden", "wurde", "wurden", "nicht", "auch", "sowie",
	"bilanz", "ergebnis", "gewinn", "verlust", "umsatz", "kosten",
	"betrag", "konto", "bericht", "geschäftsjahr", "geschaeftsjahr",
	"gesellschaft", "unternehmen", "verwaltung", "vorstand",
	"aufsichtsrat", "hauptversammlung", "jahresabschluss",
	// Spanish
	"el", "los", "las", "uno", "unos", "unas", "y", "o", "que", "con",
	"sin", "sobre", "entre", "hasta", "desde", "durante", "según",
	"segun", "es", "son", "fue", "fueron", "ser", "estar", "hay",
	"cuenta", "cuentas", "importe", "ejercicio", "resultado",
	"balance", "activo", "pasivo", "patrimonio", "ingresos", "gastos",
	"informe", "sociedad", "empresa", "grupo", "consejo",
	// Italian
	"il", "lo", "gli", "uno", "una", "che", "per", "con", "tra", "fra",
	"sono", "era", "erano", "essere", "sono", "anche", "come", "dove",
	"conto", "conti", "importo", "esercizio", "risultato", "bilancio",
	"attivo", "passivo", "ricavi", "costi", "relazione", "società",
	"societa", "impresa", "gruppo", "consiglio",
	// Dutch
	"het", "een", "van", "voor", "met", "aan", "bij", "uit", "naar",
	"tot", "zijn", "heeft", "hebben", "wordt", "worden", "werd", "niet",
	"ook", "als", "rekening", "bedrag", "boekjaar", "resultaat",
	"balans", "activa", "passiva", "baten", "lasten", "verslag",
	"vennootschap", "onderneming", "groep", "bestuur",
	// Portuguese
	"o", "os", "um", "uma", "uns", "umas", "e", "ou", "em", "no", "na",
	"nos", "nas", "do", "da", "dos", "das", "com", "sem", "sobre",
	"entre", "até", "ate", "desde", "é", "são", "sao", "foi", "foram",
	"conta", "contas", "valor", "exercício", "exercicio", "resultado",
	"balanço", "balanco", "ativo", "passivo", "receitas", "despesas",
	"relatório", "relatorio", "sociedade", "empresa", "grupo",
)

var companyWords = wordSet(
	"société", "societe",
	"sociedad", "empresa", "compañía", "compania",
	"società", "societa", "azienda", "impresa",
	"gesellschaft", "unternehmen", "firma",
	"vennootschap", "bedrijf", "onderneming",
	"sociedade", "companhia",
)

var sentenceVerbs = wordSet(
	"et", "ou", "qui", "que", "est", "a", "sont", "ont", "peut", "doit",
	"détermine", "determine", "présente", "presente", "utilise", "applique",
	"établit", "etablit", "calcule", "comptabilise", "reconnaît", "reconnait",
	"constate", "enregistre", "amortit", "provisionne", "rembourse",
	"détient", "detient", "possède", "possede", "gère", "gere",
	"exploite", "opère", "opere", "emploie", "embauche",
	"vend", "achète", "achete", "loue", "fabrique", "produit",
	"offre", "fournit", "distribue", "exporte", "importe",
	"is", "are", "has", "have", "can", "must", "should", "will",
	"determines", "presents", "uses", "applies", "calculates",
	"holds", "owns", "manages", "operates", "employs",
	"sells", "buys", "rents", "produces", "offers", "provides",
	"ist", "hat", "sind", "haben", "kann", "muss", "soll",
	"bestimmt", "verwendet", "berechnet", "hält", "haelt",
	"besitzt", "verwaltet", "betreibt", "beschäftigt", "beschaeftigt",
	"verkauft", "kauft", "mietet", "produziert", "bietet", "liefert",
	"es", "ha", "son", "han", "puede", "debe",
	"determina", "presenta", "utiliza", "aplica", "calcula",
	"posee", "gestiona", "opera", "emplea",
	"vende", "compra", "alquila", "fabrica", "produce", "ofrece",
	"è", "sono", "hanno", "può", "puo", "deve",
	"utilizza", "applica", "calcola",
	"detiene", "possiede", "gestisce", "impiega",
	"affitta", "fabbrica", "offre",
	"heeft", "zijn", "hebben", "kan", "moet",
	"bepaalt", "presenteert", "gebruikt", "berekent",
	"bezit", "beheert", "exploiteert",
	"verkoopt", "koopt", "huurt", "produceert", "biedt", "levert",
	"é", "tem", "são", "sao", "têm", "pode",
	"apresenta", "detém", "detem", "possui", "gere", "emprega",
	"aluga", "produz", "oferece",
)

var copulaVerbs = wordSet(
	"est", "a", "sont", "ont", "peut", "doit",
	"is", "are", "has", "have", "can", "must",
	"ist", "hat", "sind", "haben", "kann", "muss",
	"es", "ha", "son", "han", "puede", "debe",
	"è", "sono", "hanno",
	"heeft", "zijn", "hebben",
	"é", "tem", "são", "sao",
)

var bareArticles = wordSet(
	"der", "die", "das", "den", "dem", "des", "ein", "eine",
	"le", "la", "les", "l'", "un", "une",
	"el", "los", "las", "una",
	"il", "lo", "gli", "uno",
	"de", "het", "een",
	"o", "a", "os", "as", "um", "uma",
	"the", "an",
)

var bareLegalSuffixes = wordSet(
	"ag", "gmbh", "kg", "kgaa", "ohg", "ug", "mbh", "se",
	"sa", "sarl", "sas", "srl", "spa", "snc",
	"inc", "corp", "llc", "ltd", "llp", "plc", "co", "lp",
	"bv", "nv",
)

var articleWords = wordSet(
	"le", "la", "les", "de", "du", "des", "au", "aux", "un", "une",
	"el", "los", "las", "il", "lo", "gli", "het",
	"der", "die", "das", "den", "dem", "ein", "eine",
	"o", "a", "os", "as",
)

var purposeWords = wordSet("pour", "para", "für", "fuer", "per", "voor")

var categoryWords = wordSet(
	"catégorie", "categorie", "category", "kategorie",
	"categoría", "categoria",
)

// OrgNoise reports whether an ORG candidate is a false positive:
// ordinary vocabulary, a sentence fragment, a bare acronym, or a
// numeric reference rather than a company name.
func OrgNoise(text string) bool {
	clean := strings.TrimSpace(text)
	low := strings.ToLower(clean)
	if commonWords[low] {
		return true
	}
	if stripped := articlePrefixRe.ReplaceAllString(clean, ""); stripped != "" {
		if commonWords[strings.ToLower(stripped)] {
			return true
		}
	}
	if len(clean) <= 2 {
		return true
	}
	if isUpperText(clean) && len(clean) <= 5 {
		return true
	}
	// Digit-led text is noise except numbered companies ("4179097
	// Canada Inc").
	if startsWithDigit(clean) && !legalSuffixRe.MatchString(clean) {
		return true
	}
	if isDigits(clean) {
		return true
	}
	words := strings.Fields(clean)
	if len(words) == 1 && isUpperText(clean) {
		return true
	}
	if clean == strings.ToLower(clean) && len(words) <= 2 {
		return true
	}
	if len(words) == 1 && len(words[0]) <= 3 {
		return true
	}
	if len(words) >= 2 && !HasLegalSuffix(clean) && allCommonOrPunct(words) {
		return true
	}
	if len(words) == 2 && strings.ToLower(words[0]) == "portion" && isDigits(words[1]) {
		return true
	}
	if len(words) == 2 && articleWords[strings.ToLower(words[0])] &&
		isUpperText(words[1]) && len(words[1]) >= 2 {
		return true
	}
	// "Société détient ..." is a sentence about a company, not its name.
	if len(words) >= 2 && companyWords[strings.ToLower(words[0])] &&
		sentenceVerbs[strings.ToLower(words[1])] {
		return true
	}
	if len(words) >= 3 && copulaVerbs[strings.ToLower(words[1])] {
		return true
	}
	if !HasLegalSuffix(clean) {
		for _, w := range words {
			if purposeWords[strings.ToLower(w)] {
				return true
			}
		}
	}
	if len(words) >= 3 {
		for _, w := range words {
			if categoryWords[strings.ToLower(w)] {
				return true
			}
		}
	}
	// "... die AG", "... la SARL": article plus bare suffix is a
	// generic corporate reference.
	if len(words) >= 3 {
		penult := strings.ToLower(words[len(words)-2])
		last := strings.TrimRight(strings.ToLower(words[len(words)-1]), ".")
		if bareArticles[penult] && bareLegalSuffixes[last] {
			return true
		}
	}
	return false
}

// locNoiseWords are facility, financial, contractual, legal, fiscal,
// and medical terms that location layers routinely mislabel as places.
var locNoiseWords = wordSet(
	// Facilities and premises
	"complexe", "nautique", "piscine", "gymnase", "terrain", "terrains",
	"bâtiment", "batiment", "bâtiments", "batiments", "local", "locaux",
	"salle", "salles", "atelier", "ateliers", "entrepôt", "entrepot",
	"hangar", "garage", "parking", "usine", "magasin", "magasins",
	"building", "buildings", "facility", "facilities", "warehouse",
	"workshop", "premises", "complex", "pool", "gymnasium",
	"stadium", "stadiums", "arena", "arenas", "grandstand", "tribune",
	"tribunes", "pitch", "clubhouse", "venue", "venues", "stade",
	"stades", "gradins", "pelouse", "club", "clubs",
	"gebäude", "gebaude", "grundstück", "grundstueck", "anlage",
	"anlagen", "lager", "lagerhalle", "werkstatt", "fabrik", "büro",
	"buero", "halle", "hallen", "gelände", "gelaende", "schwimmbad",
	"turnhalle", "sportplatz", "stadion", "tribüne", "tribuene",
	"spielfeld", "vereinsheim", "profiverein", "profivereine",
	"edificio", "edificios", "nave", "almacén", "almacen", "taller",
	"fábrica", "fabrica", "oficina", "oficinas", "recinto",
	"instalación", "instalacion", "terreno", "terrenos", "piscina",
	"gimnasio", "estadio", "tribuna", "grada", "gradas", "cancha",
	"capannone", "magazzino", "officina", "stabilimento", "impianto",
	"impianti", "gradinata", "campo", "campi", "palazzetto",
	"gebouw", "gebouwen", "magazijn", "werkplaats", "fabriek",
	"kantoor", "pand", "panden", "zwembad", "sporthal", "veld",
	"velden", "sportcomplex", "armazém", "armazem", "ginásio",
	"ginasio", "arquibancada",
	// Financial vocabulary
	"mobilier", "immobilier", "corporel", "corporels", "corporelle",
	"incorporel", "incorporels", "immobilisation", "immobilisations",
	"exploitation", "investissement", "financement", "trésorerie",
	"tresorerie", "stock", "stocks", "taux", "montant", "solde",
	"actif", "passif", "bilan", "amortissement", "amortissements",
	"dotation", "dotations", "provision", "provisions", "emprunt",
	"emprunts", "résultat", "resultat", "furniture", "equipment",
	"balance", "income", "expense", "expenses", "revenue", "revenues",
	"profit", "loss", "asset", "assets", "equity", "rate", "rates",
	"amount", "amounts", "depreciation", "amortization", "fund",
	"funds", "account", "accounts", "dividend", "dividends",
	"interest", "salary", "salaries", "wage", "wages", "rent",
	"rental", "debt", "debts", "credit", "credits", "invoice",
	"mortgage", "premium", "turnover", "receivable", "payable",
	"ledger", "surplus", "deficit", "collateral", "guarantee",
	"abschreibung", "abschreibungen", "rückstellung", "rueckstellung",
	"vermögen", "vermoegen", "inventar", "bilanz", "betrag",
	"ergebnis", "saldo", "gewinn", "verlust", "umsatz", "konto",
	"mobiliario", "equipamiento", "amortización", "amortizacion",
	"provisión", "activo", "pasivo", "ammortamento", "accantonamento",
	"attivo", "passivo", "bilancio", "meubilair", "apparatuur",
	"inventaris", "afschrijving", "voorziening", "activa", "passiva",
	"balans", "mobiliário", "equipamento", "amortização",
	"amortizacao", "provisão", "provisao", "ativo", "balanço",
	"balanco",
	// Document structure
	"page", "section", "chapitre", "annexe", "tableau", "total",
	"note", "notes", "seite", "kapitel", "anhang", "tabelle",
	"pagina", "sezione", "capitolo", "allegato", "tabella",
	// Contractual and legal
	"contract", "contracts", "contractual", "agreement", "agreements",
	"clause", "clauses", "covenant", "obligation", "obligations",
	"warranty", "warranties", "indemnity", "liability", "termination",
	"breach", "arbitration", "jurisdiction", "counterparty",
	"signatory", "lessee", "lessor", "tenant", "landlord",
	"contrat", "contrats", "convention", "conventions", "avenant",
	"engagement", "engagements", "garantie", "garanties", "indemnité",
	"indemnite", "responsabilité", "responsabilite", "résiliation",
	"resiliation", "bailleur", "locataire", "propriétaire",
	"proprietaire", "vertrag", "verträge", "vertraege", "vereinbarung",
	"klausel", "haftung", "kündigung", "kuendigung", "mieter",
	"vermieter", "contrato", "contratos", "acuerdo", "cláusula",
	"clausula", "obligación", "obligacion", "arrendatario",
	"arrendador", "contratto", "accordo", "clausola", "locatario",
	"locatore", "overeenkomst", "clausule", "huurder", "verhuurder",
	"acordo", "obrigação", "obrigacao", "arrendatário", "arrendatario",
	"legal", "statute", "legislation", "regulation", "regulations",
	"compliance", "court", "courts", "tribunal", "tribunals",
	"judgment", "plaintiff", "defendant", "attorney", "lawyer",
	"litigation", "lawsuit", "proceeding", "proceedings", "appeal",
	"injunction", "decree", "ordinance", "jurisprudence", "precedent",
	"statutory", "constitutional", "penal", "criminal", "lien", "deed",
	"affidavit", "deposition", "testimony", "subpoena", "executor",
	"beneficiary", "trustee", "fiduciary", "probate",
	"juridique", "loi", "lois", "règlement", "reglement", "conformité",
	"conformite", "tribunaux", "jugement", "avocat", "contentieux",
	"procès", "proces", "procédure", "procedure", "décret", "decret",
	"ordonnance", "hypothèque", "hypotheque", "acte", "témoignage",
	"temoignage", "bénéficiaire", "beneficiaire", "fiduciaire",
	"gesetz", "gesetze", "verordnung", "gericht", "gerichte",
	"urteil", "kläger", "klaeger", "anwalt", "klage", "verfahren",
	"urkunde", "treuhänder", "treuhaender", "ley", "leyes",
	"reglamento", "tribunales", "sentencia", "abogado", "demanda",
	"decreto", "escritura", "beneficiario", "legge", "leggi",
	"regolamento", "tribunale", "giudice", "avvocato", "ipoteca",
	"atto", "wet", "wetten", "rechtbank", "rechter", "vonnis",
	"advocaat", "akte", "lei", "leis", "regulamento", "tribunais",
	"sentença", "sentenca", "advogado", "hipoteca",
	// Fiscal
	"fiscal", "tax", "taxes", "taxation", "taxpayer", "taxable",
	"deduction", "withholding", "exemption", "levy", "assessment",
	"audit", "auditor", "treasury", "excise", "customs", "duty",
	"tariff", "refund", "vat", "fiscalité", "fiscalite",
	"contribuable", "imposable", "déduction", "exonération",
	"exoneration", "douane", "tva", "steuer", "steuern",
	"finanzamt", "zoll", "umsatzsteuer", "tributario", "tributación",
	"tributacion", "contribuyente", "hacienda", "aduana", "iva",
	"tassazione", "contribuente", "erario", "belasting",
	"belastingen", "douane", "btw", "tributação", "tributacao",
	"contribuinte", "fisco", "alfândega", "alfandega",
	// Medical
	"medical", "clinical", "hospital", "hospitals", "diagnosis",
	"treatment", "therapy", "patient", "patients", "physician",
	"surgeon", "surgery", "nurse", "prescription", "medication",
	"pharmacy", "symptom", "symptoms", "disease", "prognosis",
	"inpatient", "outpatient", "laboratory", "pathology", "radiology",
	"oncology", "cardiology", "neurology", "pediatrics", "psychiatry",
	"anesthesia", "rehabilitation", "vaccine", "vaccination",
	"allergy", "infection", "biopsy", "transfusion", "transplant",
	"prosthesis", "diagnostic", "médical", "médecin", "medecin",
	"docteur", "chirurgien", "chirurgie", "infirmier", "infirmière",
	"infirmiere", "médicament", "medicament", "pharmacie", "maladie",
	"urgence", "examen", "laboratoire", "vaccin", "greffe",
	"prothèse", "prothese", "krankenhaus", "klinik", "diagnose",
	"behandlung", "therapie", "arzt", "ärzte", "aerzte", "chirurg",
	"medikament", "apotheke", "krankheit", "impfung", "médico",
	"medico", "clínica", "clinica", "tratamiento", "paciente",
	"cirujano", "enfermera", "medicamento", "farmacia", "enfermedad",
	"vacuna", "ospedale", "trattamento", "paziente", "dottore",
	"chirurgo", "farmaco", "malattia", "vaccino", "ziekenhuis",
	"behandeling", "arts", "medicijn", "ziekte", "doença", "doenca",
	"médica", "medica", "tratamento", "cirurgia", "doutor",
	"enfermeiro", "farmácia", "farmacia", "vacina",
)

var locLocationOfRe = regexp.MustCompile(`^location\s+(?:de|d['’])`)

var locArticlePrefixRe = regexp.MustCompile(
	`^(?:[Ll][eao]s?|[Dd][eiu]s?|[Uu]n[ea]?|[Ll]['’]\s*|[Dd]['’]\s*` +
		`|[Ee]l|[Ll]os|[Ll]as` +
		`|[Ii]l|[Gg]li|[Ll][oae]|[Uu]n[oa]?` +
		`|[Dd][aeo]s?|[Oo]s?|[Aa]s?` +
		`|[Dd](?:er|ie|as|en|em|es)|[Ee]in[e]?` +
		`|[Hh]et|[Dd]e|[Ee]en` +
		`)\s+`)

// LocNoise reports whether a LOCATION candidate names a facility,
// account item, or other common noun rather than a place.
func LocNoise(text string) bool {
	clean := strings.TrimSpace(text)
	low := strings.ToLower(clean)
	if locNoiseWords[low] {
		return true
	}
	if len(clean) <= 2 {
		return true
	}
	if isDigits(clean) {
		return true
	}
	if startsWithDigit(clean) {
		return true
	}
	if locLocationOfRe.MatchString(low) {
		return true
	}
	if stripped := locArticlePrefixRe.ReplaceAllString(clean, ""); stripped != "" {
		if locNoiseWords[strings.ToLower(stripped)] {
			return true
		}
	}
	words := strings.Fields(clean)
	if len(words) >= 2 {
		all := true
		for _, w := range words {
			if !locNoiseWords[strings.ToLower(w)] && !isPunctWord(w) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	if len(words) >= 2 && clean == strings.ToLower(clean) {
		return true
	}
	// A proper place name never starts with a lowercase adjective.
	if len(words) >= 2 && startsLower(words[0]) {
		return true
	}
	return false
}

// personNoiseWords are financial, notarial, and document-structure
// terms that name layers flag as people.
var personNoiseWords = wordSet(
	"mobilier", "immobilier", "taux", "montant", "solde", "bilan",
	"bénéfice", "benefice", "bénéfices", "benefices", "revenus",
	"revenu", "nette", "net", "nets", "nettes", "intérêts", "interets",
	"intérêt", "interet", "gain", "gains", "coûts", "couts", "coût",
	"cout", "honoraires", "honoraire", "loyers", "loyer", "salaires",
	"salaire", "impôts", "impots", "impôt", "impot", "taxes", "taxe",
	"dividendes", "dividende", "exercice", "résultat", "resultat",
	"actif", "passif", "capital", "emprunt", "crédit", "credit",
	"débit", "debit", "amortissement", "amortissements", "provision",
	"provisions", "dotation", "dotations", "reprise", "reprises",
	"charge", "charges", "produit", "produits", "recette", "recettes",
	"dépense", "depense", "dépenses", "depenses", "facture",
	"factures", "titre", "titres", "fonds", "caisse", "valeur",
	"valeurs", "compte", "comptes", "poste", "postes", "dette",
	"dettes", "subvention", "subventions", "trésorerie", "tresorerie",
	"location", "acquisition", "acquisitions", "clos", "clôt",
	"retenue", "retenues", "prélèvement", "prelevement", "lecteur",
	"lectrice", "utilisateur", "utilisatrice", "destinataire",
	"corporel", "corporels", "corporelle", "corporelles", "courant",
	"courants", "courante", "financier", "financiere", "financière",
	"comptable", "comptables", "page", "section", "chapitre",
	"annexe", "tableau", "total", "note", "notes", "introduction",
	"conclusion", "sommaire",
	"balance", "income", "expense", "revenue", "profit", "loss",
	"asset", "assets", "rate", "amount", "depreciation",
	"amortization", "fund", "funds", "account", "accounts",
	"furniture", "equipment",
	"notarized", "notarised", "authenticated", "certified",
	"undersigned", "hereunder", "hereinafter", "herewith",
	"aforementioned", "aforesaid", "foregoing", "pursuant", "whereas",
	"hereby", "shareholder", "shareholders", "approximately",
	"substantially", "respectively",
	"notarié", "notarie", "notariée", "notariee", "authentifié",
	"authentifie", "certifié", "certifie", "soussigné", "soussigne",
	"soussignée", "soussignee", "susmentionné", "susmentionne",
	"ci-dessus", "ci-dessous", "ci-après", "ci-apres",
	"conformément", "conformement", "environ", "respectivement",
	"bilanz", "einnahmen", "ausgaben", "gehalt", "lohn", "miete",
	"steuer", "steuern", "mehrwertsteuer", "zins", "zinsen", "gewinn",
	"verlust", "ertrag", "aufwand", "kosten", "abschreibung",
	"abschreibungen", "rückstellung", "rueckstellung", "vermögen",
	"vermoegen", "kapital", "schuld", "schulden", "forderung",
	"forderungen", "umsatz", "kasse", "konto", "konten", "betrag",
	"saldo", "ergebnis", "ergebnisse", "buchung", "inventar",
	"seite", "abschnitt", "kapitel", "anhang", "tabelle", "gesamt",
	"insgesamt", "notiz", "anmerkung", "notariell", "beurkundet",
	"beurkundeten", "beurkundung", "handelsregister",
	"gesellschafterbeschluss", "maßgeblich", "massgeblich",
	"grundsätzlich", "grundsaetzlich", "wesentlich", "entsprechend",
	"vorstehend", "nachfolgend", "umgewandelt",
	"ingreso", "ingresos", "gasto", "gastos", "salario", "sueldo",
	"alquiler", "renta", "impuesto", "impuestos", "dividendo",
	"interés", "interes", "beneficio", "pérdida", "perdida",
	"deuda", "patrimonio", "activo", "pasivo", "cuenta", "cuentas",
	"partida", "resultado", "ejercicio", "fondo", "caja",
	"inventario", "página", "pagina", "sección", "seccion",
	"capítulo", "capitulo", "anexo", "tabla", "notarial",
	"autenticado", "certificado", "suscrito", "accionista",
	"aproximadamente",
	"bilancio", "entrata", "entrate", "spesa", "spese", "stipendio",
	"affitto", "imposta", "imposte", "iva", "interesse", "utile",
	"perdita", "ammortamento", "debito", "capitale", "conto",
	"conti", "voce", "risultato", "esercizio", "fattura", "cassa",
	"sezione", "capitolo", "allegato", "tabella", "totale", "nota",
	"notarile", "sottoscritto", "suddetto", "azionista",
	"balans", "inkomsten", "uitgaven", "salaris", "loon", "huur",
	"pacht", "belasting", "btw", "rente", "winst", "verlies",
	"afschrijving", "voorziening", "vordering", "vermogen",
	"kapitaal", "activa", "passiva", "rekening", "resultaat",
	"boekjaar", "factuur", "kas", "inventaris", "voorraad",
	"afdeling", "hoofdstuk", "bijlage", "tabel", "totaal",
	"opmerking", "notarieel", "ondergetekende", "aandeelhouder",
	"ongeveer", "respectievelijk",
	"balanço", "balanco", "receita", "receitas", "despesa",
	"despesas", "salário", "aluguel", "imposto", "impostos", "juro",
	"juros", "lucro", "prejuízo", "prejuizo", "amortização",
	"amortizacao", "dívida", "divida", "patrimônio", "patrimonio",
	"ativo", "conta", "contas", "exercício", "exercicio", "fatura",
	"caixa", "estoque", "seção", "secao", "tabela", "subscrito",
	"mencionado", "acionista", "aproximadamente",
)

var initialsRe = regexp.MustCompile(`^[A-ZÀ-Ü](?:\.[A-ZÀ-Ü])+\.?$`)

const trailingConsonants = "bcdfghjklmnpqrstvwxzç"

// PersonNoise reports whether a PERSON candidate is a false positive:
// vocabulary, initials, an acronym, or a sentence fragment.
func PersonNoise(text string) bool {
	clean := strings.TrimSpace(text)
	low := strings.ToLower(clean)
	if personNoiseWords[low] {
		return true
	}
	if stripped := locArticlePrefixRe.ReplaceAllString(clean, ""); stripped != "" {
		if personNoiseWords[strings.ToLower(stripped)] {
			return true
		}
	}
	if len(clean) <= 2 {
		return true
	}
	if isDigits(clean) {
		return true
	}
	if startsWithDigit(clean) {
		return true
	}
	if initialsRe.MatchString(clean) {
		return true
	}
	runes := []rune(clean)
	if len(runes) <= 6 && unicode.IsUpper(runes[0]) &&
		strings.ContainsRune(trailingConsonants, runes[len(runes)-1]) {
		return true
	}
	words := strings.Fields(clean)
	if len(words) == 1 && len(words[0]) <= 3 {
		return true
	}
	if len(words) == 1 && isUpperText(clean) {
		return true
	}
	if len(words) >= 2 {
		all := true
		for _, w := range words {
			if !personNoiseWords[strings.ToLower(w)] && !isPunctWord(w) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	if len(words) >= 2 && clean == strings.ToLower(clean) {
		return true
	}
	if len(words) >= 2 && startsLower(words[0]) {
		return true
	}
	return false
}

var (
	addrAlphaRe = regexp.MustCompile(`[A-Za-zÀ-ÿ]`)
	addrDigitRe = regexp.MustCompile(`\d`)
)

// Loan-schedule vocabulary. A numeric row mentioning any of these is a
// mortgage table line, not a street address.
var mortgageTerms = []string{
	"hypothécaire", "hypothecaire", "hypothèque", "hypotheque",
	"remboursable", "remboursement", "mensuel", "mensuelle",
	"trimestriel", "trimestrielle", "annuel", "annuelle",
	"échéance", "echeance", "intérêt", "interet", "emprunt", "prêt",
	"pret", "créancier", "creancier", "débiteur", "debiteur",
	"mortgage", "repayment", "repayable", "monthly", "quarterly",
	"annually", "maturity", "principal", "interest", "loan", "lender",
	"borrower", "creditor", "debtor",
	"hypothek", "hypotheken", "rückzahlung", "rueckzahlung", "tilgung",
	"monatlich", "jährlich", "jaehrlich", "fälligkeit", "faelligkeit",
	"darlehen", "kredit", "gläubiger", "glaeubiger", "schuldner",
	"hipoteca", "hipotecario", "reembolso", "mensual", "trimestral",
	"anual", "vencimiento", "préstamo", "prestamo", "acreedor",
	"deudor",
	"ipoteca", "ipotecario", "rimborso", "mensile", "trimestrale",
	"annuale", "scadenza", "mutuo", "prestito", "creditore",
	"debitore",
	"hypotheek", "terugbetaling", "aflossing", "maandelijks",
	"jaarlijks", "vervaldatum", "lening", "schuldeiser", "schuldenaar",
	"hipotecário", "hipotecario", "reembolsável", "reembolsavel",
	"mensal", "trimestrais", "vencimento", "empréstimo", "emprestimo",
	"credor", "devedor",
}

// AddressNumberOnly reports whether an ADDRESS candidate is
// structurally invalid. A real address carries both letters and at
// least one digit, and never loan-schedule vocabulary.
func AddressNumberOnly(text string) bool {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return true
	}
	if !addrAlphaRe.MatchString(clean) || !addrDigitRe.MatchString(clean) {
		return true
	}
	low := strings.ToLower(clean)
	for _, term := range mortgageTerms {
		if strings.Contains(low, term) {
			return true
		}
	}
	return false
}

// phoneLabelRe matches a phone or fax label with its number, anchored
// to a line start or preceding whitespace.
var phoneLabelRe = regexp.MustCompile(
	`(?im)(?:^|\n|\s+)` +
		`(?:Phone|Tel(?:e(?:phone|fon|fax))?|T[ée]l(?:[ée]ph(?:one)?)?|` +
		`T[ée]l[ée]c(?:opieur)?|Telex|Facs(?:imile)?|` +
		`Telec[óo]p(?:ia)?|` +
		`Mob(?:ile?)?|Cell(?:ulare)?|Celular|Fax|` +
		`Port(?:able)?|Fixe|Rufn(?:ummer|r)?|Handy|` +
		`Tel[ée]fono)` +
		`\.?` +
		`(?:\s*(?:No\.?|Number|Num[ée]ro|#|N°))?` +
		`\s*[:.]?\s*` +
		`[\d\s\+\(\)\.\-]*$`)

// StripPhoneLabels removes phone and fax label lines that an address
// region absorbed from adjacent text. Returns the input unchanged when
// stripping would leave nothing.
func StripPhoneLabels(text string) string {
	cleaned := strings.TrimSpace(phoneLabelRe.ReplaceAllString(text, ""))
	if cleaned == "" {
		return text
	}
	return cleaned
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}

// isUpperText mirrors the "all cased characters are uppercase, at
// least one cased character" rule.
func isUpperText(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func isPunctWord(w string) bool {
	for _, r := range w {
		switch r {
		case '-', '–', '—', '/', '.':
		default:
			return false
		}
	}
	return w != ""
}

func allCommonOrPunct(words []string) bool {
	for _, w := range words {
		if !commonWords[strings.ToLower(w)] && !isPunctWord(w) {
			return false
		}
	}
	return true
}
