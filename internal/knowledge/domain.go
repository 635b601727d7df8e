package knowledge

// Domain is one tag from the fixed closed set of knowledge domains.
// Mirrors the 24-variant KnowledgeDomain enum the engine was modeled on.
type Domain string

const (
	Mathematics     Domain = "mathematics"
	Physics         Domain = "physics"
	Chemistry       Domain = "chemistry"
	Biology         Domain = "biology"
	ComputerScience Domain = "computer-science"
	Astronomy       Domain = "astronomy"
	Philosophy      Domain = "philosophy"
	Psychology      Domain = "psychology"
	History         Domain = "history"
	Literature      Domain = "literature"
	Art             Domain = "art"
	Music           Domain = "music"
	Economics       Domain = "economics"
	Politics        Domain = "politics"
	Law             Domain = "law"
	Medicine        Domain = "medicine"
	Engineering     Domain = "engineering"
	Geography       Domain = "geography"
	Sociology       Domain = "sociology"
	Anthropology    Domain = "anthropology"
	Linguistics     Domain = "linguistics"
	Environmental   Domain = "environmental"
	Sports          Domain = "sports"
	General         Domain = "general"
)

// AllDomains returns every recognised domain, in declaration order.
func AllDomains() []Domain {
	return []Domain{
		Mathematics, Physics, Chemistry, Biology, ComputerScience, Astronomy,
		Philosophy, Psychology, History, Literature, Art, Music, Economics,
		Politics, Law, Medicine, Engineering, Geography, Sociology,
		Anthropology, Linguistics, Environmental, Sports, General,
	}
}

// Valid reports whether d is one of the closed set of recognised domains.
func (d Domain) Valid() bool {
	for _, v := range AllDomains() {
		if v == d {
			return true
		}
	}
	return false
}

// relatedDomains mirrors the Rust source's get_related_domains table: for
// cross-domain search and contamination scoring, each domain has a small
// set of neighbours it's allowed to borrow relevance from.
var relatedDomains = map[Domain][]Domain{
	Astronomy:       {Physics, Mathematics, Philosophy},
	Physics:         {Mathematics, Astronomy, Chemistry, Engineering},
	Chemistry:       {Physics, Biology, Medicine},
	Biology:         {Chemistry, Medicine, Environmental},
	ComputerScience: {Mathematics, Engineering},
	Mathematics:     {Physics, ComputerScience, Engineering},
	Philosophy:      {Psychology, History, Literature},
	Psychology:      {Philosophy, Sociology, Medicine},
	History:         {Philosophy, Politics, Literature, Sociology},
	Literature:      {Philosophy, History, Art},
	Art:             {Literature, Music, History},
	Music:           {Art, History},
	Economics:       {Politics, Sociology, Mathematics},
	Politics:        {History, Economics, Law, Sociology},
	Law:             {Politics, Sociology},
	Medicine:        {Biology, Chemistry, Psychology},
	Engineering:     {Physics, Mathematics, ComputerScience},
	Geography:       {History, Environmental, Sociology},
	Sociology:       {Psychology, Politics, Anthropology, Economics},
	Anthropology:    {Sociology, History, Linguistics},
	Linguistics:     {Anthropology, Philosophy},
	Environmental:   {Biology, Geography},
	Sports:          {General},
	General:         {},
}

// RelatedDomains returns the fixed neighbour set used for CrossDomainSearch
// and for the contamination penalty's "directly relevant" escape hatch.
func RelatedDomains(d Domain) []Domain {
	return relatedDomains[d]
}

// IsRelated reports whether b is in a's related-domain set, or equal to a.
func IsRelated(a, b Domain) bool {
	if a == b {
		return true
	}
	for _, r := range relatedDomains[a] {
		if r == b {
			return true
		}
	}
	return false
}

// domainBoostRule mirrors calculate_domain_relevance_boost: a fixed
// table mapping a key concept category (matched by substring) to preferred
// domains, each carrying its own boost weight.
type domainBoostRule struct {
	concepts []string
	domain   Domain
	boost    float64
}

var domainBoostTable = []domainBoostRule{
	{[]string{"space", "universe", "star", "galaxy", "planet", "cosmos"}, Astronomy, 15},
	{[]string{"space", "universe", "star", "galaxy", "planet", "cosmos"}, Physics, 10},
	{[]string{"space", "universe", "star", "galaxy", "planet", "cosmos"}, Philosophy, 3},
	{[]string{"love", "emotion", "feeling", "attachment"}, Psychology, 15},
	{[]string{"love", "emotion", "feeling", "attachment"}, Philosophy, 6},
	{[]string{"number", "equation", "theorem", "proof"}, Mathematics, 15},
	{[]string{"atom", "molecule", "reaction", "element"}, Chemistry, 15},
	{[]string{"cell", "organism", "gene", "evolution"}, Biology, 15},
	{[]string{"algorithm", "computer", "program", "software"}, ComputerScience, 15},
	{[]string{"government", "election", "policy", "law"}, Politics, 12},
	{[]string{"market", "trade", "currency", "inflation"}, Economics, 12},
	{[]string{"disease", "treatment", "diagnosis", "symptom"}, Medicine, 12},
}

// DomainBoost returns the boost for (concept, domain) per the fixed table,
// or 0 if no rule matches. Concept matching is substring-based, same as the
// source's keyword rules.
func DomainBoost(concept string, d Domain) float64 {
	var total float64
	for _, rule := range domainBoostTable {
		for _, c := range rule.concepts {
			if containsToken(concept, c) && rule.domain == d {
				total += rule.boost
				break
			}
		}
	}
	return total
}

func containsToken(haystack, needle string) bool {
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
