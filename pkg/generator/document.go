package generator

// document is an insertion-ordered key/value structure. Serialization order
// equals insertion order, which is what makes the output deterministic.
type document struct {
	pairs []pair
}

type pair struct {
	key   string
	value any
}

// raw marks a value rendered verbatim, without quoting: JS expressions such
// as function bodies, regular expression literals, direct method references
// and the undefined token.
type raw string

func newDocument() *document {
	return &document{}
}

func (d *document) set(key string, value any) {
	d.pairs = append(d.pairs, pair{key: key, value: value})
}

func (d *document) merge(other *document) {
	d.pairs = append(d.pairs, other.pairs...)
}

func (d *document) empty() bool {
	return len(d.pairs) == 0
}

func (d *document) len() int {
	return len(d.pairs)
}

func stringList(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
