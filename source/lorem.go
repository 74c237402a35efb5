package source

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"
)

var (
	adjectives = []string{
		"quiet", "brave", "amber", "rapid", "gentle", "hollow", "lucky", "mellow",
		"nimble", "proud", "rustic", "silent", "tidy", "vivid", "wild", "zesty",
	}
	names = []string{
		"ada", "bruno", "clara", "dmitri", "elena", "felix", "greta", "hugo",
		"ines", "jonas", "kira", "leo", "mila", "nora", "otto", "pia",
	}
	words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing
		elit sed do eiusmod tempor incididunt ut labore et dolore magna aliqua
		enim ad minim veniam quis nostrud exercitation ullamco laboris nisi
		aliquip ex ea commodo consequat duis aute irure in reprehenderit
		voluptate velit esse cillum fugiat nulla pariatur excepteur sint
		occaecat cupidatat non proident sunt culpa qui officia deserunt mollit
		anim id est laborum`)
)

const (
	minSentenceWords = 4
	maxSentenceWords = 40
)

// Lorem generates n rows keyed "0".."n-1", each titled with a two-word name
// and holding one sentence of 4 to 40 words. The same seed always produces
// the same rows.
func Lorem(n int, seed uint64) []Row {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rows := make([]Row, max(n, 0))
	for i := range rows {
		rows[i] = Row{
			Key:     strconv.Itoa(i),
			Heading: capitalize(pick(rng, adjectives)) + " " + capitalize(pick(rng, names)),
			Body:    sentence(rng),
		}
	}
	return rows
}

func sentence(rng *rand.Rand) string {
	n := minSentenceWords + rng.IntN(maxSentenceWords-minSentenceWords+1)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = pick(rng, words)
	}
	parts[0] = capitalize(parts[0])
	return strings.Join(parts, " ") + "."
}

func pick(rng *rand.Rand, from []string) string { return from[rng.IntN(len(from))] }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
