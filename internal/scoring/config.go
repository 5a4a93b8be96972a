// internal/scoring/config.go
package scoring

// PhoneWeights are the additive phone-confidence heuristics.
type PhoneWeights struct {
	Base            int
	ValidAreaCode   int // area code matches [2-9]\d{2}
	KnownRegion     int // area code found in the known-region table
	CanonicalFormat int // value already in (AAA) EEE-SSSS form
	NotTollFree     int // area code is not a toll-free prefix
}

// EmailWeights are the additive email-confidence heuristics.
type EmailWeights struct {
	Base         int
	CommonDomain int // domain in the common public-provider list
	OtherDomain  int // any other domain (stronger identity signal)
	ValidShape   int // RFC-shaped local@domain.tld
	GoodLength   int // length within [MinLength, MaxLength]
	MinLength    int
	MaxLength    int
}

// AddressWeights are the additive address-confidence heuristics.
type AddressWeights struct {
	Base        int
	HasDigit    int
	HasSuffix   int // contains a recognized street-suffix token
	HasLocation int // contains the subject's supplied location string
	GoodLength  int
	MinLength   int
	MaxLength   int
}

// NameWeights are the additive name-confidence heuristics.
type NameWeights struct {
	Base           int
	Capitalized    int // properly capitalized two-word form
	NotPlaceholder int
	SharedToken    int // shares a token with the search name (candidate relative)
	GoodLength     int
	MinLength      int
	MaxLength      int
}

// RelevanceWeights score whole-result relevance against the query.
type RelevanceWeights struct {
	TitleMatch   int // query is an exact substring of the title
	SnippetMatch int // query is an exact substring of the snippet
	TitleWord    int // per shared query word (len > 2) in title
	SnippetWord  int // per shared query word (len > 2) in snippet
	MinWordLen   int
}

// Config carries every scoring constant. Nothing in this package is
// hard-coded: tests probe edge values by adjusting these.
type Config struct {
	Phone     PhoneWeights
	Email     EmailWeights
	Address   AddressWeights
	Name      NameWeights
	Relevance RelevanceWeights

	// Fixed-shape patterns carry a flat base confidence.
	VINBase       int
	SSNMaskedBase int

	KnownAreaCodes   map[string]bool
	TollFreePrefixes map[string]bool
	CommonDomains    map[string]bool
	PlaceholderNames map[string]bool
}

// DefaultConfig returns the reference calibration.
func DefaultConfig() Config {
	return Config{
		Phone: PhoneWeights{
			Base:            50,
			ValidAreaCode:   20,
			KnownRegion:     15,
			CanonicalFormat: 10,
			NotTollFree:     5,
		},
		Email: EmailWeights{
			Base:         40,
			CommonDomain: 10,
			OtherDomain:  25,
			ValidShape:   20,
			GoodLength:   15,
			MinLength:    6,
			MaxLength:    49,
		},
		Address: AddressWeights{
			Base:        30,
			HasDigit:    20,
			HasSuffix:   25,
			HasLocation: 15,
			GoodLength:  10,
			MinLength:   11,
			MaxLength:   99,
		},
		Name: NameWeights{
			Base:           25,
			Capitalized:    20,
			NotPlaceholder: 15,
			SharedToken:    20,
			GoodLength:     20,
			MinLength:      6,
			MaxLength:      49,
		},
		Relevance: RelevanceWeights{
			TitleMatch:   30,
			SnippetMatch: 20,
			TitleWord:    5,
			SnippetWord:  3,
			MinWordLen:   2,
		},
		VINBase:       75,
		SSNMaskedBase: 80,
		KnownAreaCodes: map[string]bool{
			"212": true, "213": true, "214": true, "215": true, "281": true,
			"305": true, "310": true, "312": true, "404": true, "405": true,
			"415": true, "469": true, "512": true, "580": true, "602": true,
			"713": true, "714": true, "718": true, "737": true, "817": true,
			"832": true, "918": true, "972": true,
		},
		TollFreePrefixes: map[string]bool{
			"800": true, "888": true, "877": true, "866": true,
			"855": true, "844": true, "833": true,
		},
		CommonDomains: map[string]bool{
			"gmail.com": true, "yahoo.com": true, "hotmail.com": true,
			"outlook.com": true, "aol.com": true, "icloud.com": true,
			"msn.com": true, "live.com": true,
		},
		PlaceholderNames: map[string]bool{
			"john doe": true, "jane doe": true, "test user": true,
			"first last": true, "lorem ipsum": true,
		},
	}
}
