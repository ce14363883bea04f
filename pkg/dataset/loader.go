package dataset

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/grexie/summaries/pkg/collate"
	"github.com/grexie/summaries/pkg/config"
	"github.com/grexie/summaries/pkg/corpus"
	"github.com/jedib0t/go-pretty/v6/progress"
)

// Loader groups sampled examples into collated batches. It is not safe for
// concurrent use.
type Loader struct {
	Dataset   Dataset
	Sampler   Sampler
	BatchSize int
	Collator  collate.Collator

	pw      progress.Writer
	tracker *progress.Tracker
	epoch   []int
	cursor  int
	started bool
}

func NewLoaderFrom(dataset Dataset, sampler Sampler, batchSize int, collator collate.Collator) *Loader {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Loader{
		Dataset:   dataset,
		Sampler:   sampler,
		BatchSize: batchSize,
		Collator:  collator,
	}
}

// NewLoader wires store, labels, dataset, sampler and collator from params.
// The test split iterates in a fixed order, train and val are reshuffled
// every epoch. cache may be nil.
func NewLoader(params config.Params, c *corpus.Corpus, cache *Cache) (*Loader, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	log.Printf("creating %s %s loader for %s dataset...", params.ModelType, params.Split, params.Dataset)

	kind, err := collate.KindForModelType(params.ModelType)
	if err != nil {
		return nil, err
	}
	collator, err := collate.ForModelType(params.ModelType, params.MaxSentenceLength)
	if err != nil {
		return nil, err
	}

	store := &Store{
		Root:      params.DataDir,
		Dataset:   params.Dataset,
		ModelType: params.ModelType,
		Split:     params.Split,
		Kind:      kind,
		Cache:     cache,
	}

	indices, err := store.Indices()
	if err != nil {
		return nil, err
	}
	indices, labels, err := c.Labels(indices, params.TopicPtr())
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no documents in %s", store.Dir())
	}

	var dataset Dataset
	if params.Mini {
		dataset, err = NewMiniDataset(store, indices, labels, params.MinidocSize, params.Rand(1))
	} else {
		dataset, err = NewRegularDataset(store, indices, labels)
	}
	if err != nil {
		return nil, err
	}

	var sampler Sampler
	if params.Split == config.SplitTest {
		sampler = NewSequentialSampler(indices)
	} else {
		sampler = NewRandomSampler(indices, params.Rand(2))
	}

	return NewLoaderFrom(dataset, sampler, params.BatchSize, collator), nil
}

// SetProgress reports each epoch on pw; nil disables reporting.
func (l *Loader) SetProgress(pw progress.Writer) {
	l.pw = pw
}

// Batches is the number of batches in one epoch.
func (l *Loader) Batches() int {
	return (l.Sampler.Len() + l.BatchSize - 1) / l.BatchSize
}

// Reset starts a new epoch on the next call to Next.
func (l *Loader) Reset() {
	l.started = false
	l.epoch = nil
	l.cursor = 0
	if l.tracker != nil {
		l.tracker.MarkAsDone()
		l.tracker = nil
	}
}

// Next returns the next batch of the epoch, or io.EOF once every sampled
// index has been served. The final batch may be smaller than BatchSize.
func (l *Loader) Next(ctx context.Context) (*collate.Batch, error) {
	if !l.started {
		l.started = true
		l.epoch = l.Sampler.Indices()
		l.cursor = 0
		if l.pw != nil {
			l.tracker = &progress.Tracker{
				Message: "Loading batches",
				Total:   int64(l.Batches()),
				Units:   progress.UnitsDefault,
			}
			l.pw.AppendTracker(l.tracker)
			l.tracker.Start()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.cursor >= len(l.epoch) {
		if l.tracker != nil {
			l.tracker.MarkAsDone()
			l.tracker = nil
		}
		return nil, io.EOF
	}

	end := min(l.cursor+l.BatchSize, len(l.epoch))
	examples := make([]collate.Example, 0, end-l.cursor)
	for _, index := range l.epoch[l.cursor:end] {
		example, err := l.Dataset.Get(index)
		if err != nil {
			return nil, err
		}
		examples = append(examples, example)
	}
	l.cursor = end

	batch, err := l.Collator.Collate(examples)
	if err != nil {
		return nil, err
	}
	if l.tracker != nil {
		l.tracker.Increment(1)
	}
	return batch, nil
}
