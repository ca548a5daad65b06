package sanitizer

import "strings"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var searchPipeline = Pipeline{
	strings.ToLower,
}

// NormalizeSearchTerm prepares a directory search term. It only folds case:
// surrounding and inner spaces are part of the term.
func NormalizeSearchTerm(term string) string {
	return searchPipeline.Apply(term)
}
