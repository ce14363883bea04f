// Package rouge scores a candidate summary against a reference summary with
// ROUGE-1, ROUGE-2 and ROUGE-L.
//
// ROUGE-L is reported twice: "rouge-l" takes one LCS over the whole token
// stream, "rouge-lsum" splits both texts into sentences on "." and sums the
// union LCS of every reference sentence against all hypothesis sentences.
package rouge

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyHypothesis = errors.New("hypothesis has no words")
	ErrEmptyReference  = errors.New("reference has no words")
)

var reWord = regexp.MustCompile(`[\pL\pN]+`)

// Tokenize lower-cases text and splits it into runs of letters and digits.
func Tokenize(text string) []string {
	return reWord.FindAllString(strings.ToLower(text), -1)
}

// Score holds precision, recall and F-measure for one metric.
type Score struct {
	P float64
	R float64
	F float64
}

type Scores struct {
	Rouge1    Score
	Rouge2    Score
	RougeL    Score
	RougeLsum Score
}

// Metric names in report order.
var Metrics = []string{"rouge-1", "rouge-2", "rouge-l", "rouge-lsum"}

// Get returns the score for one of Metrics.
func (s Scores) Get(metric string) Score {
	switch metric {
	case "rouge-1":
		return s.Rouge1
	case "rouge-2":
		return s.Rouge2
	case "rouge-l":
		return s.RougeL
	case "rouge-lsum":
		return s.RougeLsum
	}
	return Score{}
}

// Compute scores hyp against ref.
func Compute(hyp, ref string) (Scores, error) {
	h, r := Tokenize(hyp), Tokenize(ref)
	if len(h) == 0 {
		return Scores{}, ErrEmptyHypothesis
	}
	if len(r) == 0 {
		return Scores{}, ErrEmptyReference
	}
	return Scores{
		Rouge1:    RougeN(h, r, 1),
		Rouge2:    RougeN(h, r, 2),
		RougeL:    RougeL(h, r),
		RougeLsum: RougeLsum(Sentences(hyp), Sentences(ref)),
	}, nil
}

func ngrams(tokens []string, n int) map[string]int {
	counts := map[string]int{}
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}

// RougeN counts n-grams of hyp found in ref, each clipped to its count in
// ref.
func RougeN(hyp, ref []string, n int) Score {
	h, r := ngrams(hyp, n), ngrams(ref, n)
	hypTotal, refTotal, overlap := 0, 0, 0
	for gram, count := range h {
		hypTotal += count
		overlap += min(count, r[gram])
	}
	for _, count := range r {
		refTotal += count
	}
	if hypTotal == 0 || refTotal == 0 {
		return Score{}
	}

	p := float64(overlap) / float64(hypTotal)
	rc := float64(overlap) / float64(refTotal)
	return Score{P: p, R: rc, F: fmeasure(p, rc)}
}

func fmeasure(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// LCS returns the length of the longest common subsequence of a and b.
func LCS(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// RougeL weights recall and precision of the longest common subsequence
// with beta = P/R.
func RougeL(hyp, ref []string) Score {
	if len(hyp) == 0 || len(ref) == 0 {
		return Score{}
	}
	lcs := LCS(hyp, ref)
	if lcs == 0 {
		return Score{}
	}

	p := float64(lcs) / float64(len(hyp))
	r := float64(lcs) / float64(len(ref))
	beta := p / r
	f := (1 + beta*beta) * r * p / (r + beta*beta*p)
	return Score{P: p, R: r, F: f}
}

// Sentences splits text on "." and tokenizes each part, dropping parts with
// no words.
func Sentences(text string) [][]string {
	sentences := [][]string{}
	for _, part := range strings.Split(text, ".") {
		if tokens := Tokenize(part); len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	return sentences
}

// lcsPositions returns the positions in b of one longest common subsequence
// of a and b.
func lcsPositions(a, b []string) []int {
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
		}
	}

	positions := make([]int, 0, table[len(a)][len(b)])
	for i, j := len(a), len(b); i > 0 && j > 0; {
		switch {
		case a[i-1] == b[j-1]:
			positions = append(positions, j-1)
			i--
			j--
		case table[i-1][j] >= table[i][j-1]:
			i--
		default:
			j--
		}
	}
	return positions
}

// RougeLsum scores at summary level: for each reference sentence the words
// covered by the LCS with any hypothesis sentence are counted once, and the
// counts are summed over reference sentences.
func RougeLsum(hyp, ref [][]string) Score {
	hypTotal, refTotal := 0, 0
	for _, sentence := range hyp {
		hypTotal += len(sentence)
	}
	for _, sentence := range ref {
		refTotal += len(sentence)
	}
	if hypTotal == 0 || refTotal == 0 {
		return Score{}
	}

	union := 0
	for _, r := range ref {
		covered := map[int]struct{}{}
		for _, h := range hyp {
			for _, position := range lcsPositions(h, r) {
				covered[position] = struct{}{}
			}
		}
		union += len(covered)
	}
	if union == 0 {
		return Score{}
	}

	p := float64(union) / float64(hypTotal)
	r := float64(union) / float64(refTotal)
	return Score{P: p, R: r, F: fmeasure(p, r)}
}
