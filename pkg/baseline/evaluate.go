package baseline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/grexie/summaries/pkg/config"
	"github.com/grexie/summaries/pkg/corpus"
	"github.com/grexie/summaries/pkg/rouge"
	"github.com/jedib0t/go-pretty/v6/progress"
	"gonum.org/v1/gonum/stat"
)

// Trial holds the document-averaged ROUGE F-measures of one baseline run.
type Trial struct {
	Rouge1 float64
	Rouge2 float64
	RougeL float64

	RougeLsum float64
}

func (t Trial) Get(metric string) float64 {
	switch metric {
	case "rouge-1":
		return t.Rouge1
	case "rouge-2":
		return t.Rouge2
	case "rouge-l":
		return t.RougeL
	case "rouge-lsum":
		return t.RougeLsum
	}
	return 0
}

type Result struct {
	Dataset  string
	Keywords string
	Types    []int
	Indices  []int
	Trials   []Trial

	// Summaries are the predicted summaries of the last trial, aligned with
	// Indices.
	Summaries []string
}

func (r *Result) values(metric string) []float64 {
	values := make([]float64, len(r.Trials))
	for i, trial := range r.Trials {
		values[i] = trial.Get(metric)
	}
	return values
}

// Mean averages metric over trials.
func (r *Result) Mean(metric string) float64 {
	if len(r.Trials) == 0 {
		return 0
	}
	return stat.Mean(r.values(metric), nil)
}

// StdDev is the sample standard deviation of metric over trials, zero for a
// single trial.
func (r *Result) StdDev(metric string) float64 {
	if len(r.Trials) < 2 {
		return 0
	}
	return stat.StdDev(r.values(metric), nil)
}

// Evaluate runs the keyword baseline params.BaselineTrials times over the
// documents at indices and scores each predicted summary against the joined
// reference summary.
func Evaluate(ctx context.Context, pw progress.Writer, c *corpus.Corpus, indices []int, params config.Params) (*Result, error) {
	keywords, err := LookupKeywords(params.BaselineKeywords)
	if err != nil {
		return nil, err
	}
	for _, t := range params.BaselineTypes {
		if t < 0 || t >= len(keywords) {
			return nil, fmt.Errorf("%w: %d not in %s keyword set", ErrUnknownType, t, params.BaselineKeywords)
		}
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no documents to evaluate")
	}
	for _, i := range indices {
		if i < 0 || i >= len(c.Documents) || i >= len(c.Summaries) {
			return nil, fmt.Errorf("document %d missing from corpus", i)
		}
	}

	log.Printf("evaluating %s keyword baseline on %d documents over %d trials...", params.BaselineKeywords, len(indices), params.BaselineTrials)

	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: "Baseline trials",
			Total:   int64(params.BaselineTrials * len(indices)),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
		defer tracker.MarkAsDone()
	}

	references := make([]string, len(indices))
	for k, i := range indices {
		references[k] = strings.Join(c.Summaries[i], " ")
	}

	rng := params.Rand(3)
	result := &Result{
		Dataset:  params.Dataset,
		Keywords: params.BaselineKeywords,
		Types:    append([]int{}, params.BaselineTypes...),
		Indices:  append([]int{}, indices...),
	}

	for range params.BaselineTrials {
		summaries := make([]string, len(indices))
		rouge1 := make([]float64, len(indices))
		rouge2 := make([]float64, len(indices))
		rougeL := make([]float64, len(indices))
		rougeLsum := make([]float64, len(indices))

		for k, i := range indices {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			document := c.Documents[i]
			selected, err := keywords.Summary(rng, document, params.BaselineTypes)
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
			sentences := make([]string, len(selected))
			for s, j := range selected {
				sentences[s] = document[j]
			}
			summaries[k] = strings.Join(sentences, " ")

			scores, err := rouge.Compute(summaries[k], references[k])
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
			rouge1[k] = scores.Rouge1.F
			rouge2[k] = scores.Rouge2.F
			rougeL[k] = scores.RougeL.F
			rougeLsum[k] = scores.RougeLsum.F

			if tracker != nil {
				tracker.Increment(1)
			}
		}

		result.Trials = append(result.Trials, Trial{
			Rouge1: stat.Mean(rouge1, nil),
			Rouge2: stat.Mean(rouge2, nil),
			RougeL: stat.Mean(rougeL, nil),

			RougeLsum: stat.Mean(rougeLsum, nil),
		})
		result.Summaries = summaries
	}

	return result, nil
}
