package scoring

// stoplist is the fixed set of function words and wh-words excluded from
// lexical-overlap and keyword-ratio scoring.
var stoplist = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {},
	"what": {}, "how": {}, "why": {}, "when": {}, "where": {},
	"is": {}, "are": {}, "do": {}, "does": {},
}

func isStopword(w string) bool {
	_, ok := stoplist[w]
	return ok
}
