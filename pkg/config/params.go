package config

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	ModelTypeBert   = "bert"
	ModelTypeLinear = "linear"
)

const (
	SplitTrain = "train"
	SplitVal   = "val"
	SplitTest  = "test"
)

type Params struct {
	DataDir   string
	Dataset   string
	ModelType string
	Split     string

	// Topic selects the oracle label for each document, -1 keeps every
	// document and labels it 0.
	Topic             int
	BatchSize         int
	Mini              bool
	MinidocSize       int
	MaxSentenceLength int
	Seed              uint64

	Cache    string
	FetchURL string
	MongoURL string

	BaselineTrials   int
	BaselineTypes    []int
	BaselineKeywords string
	BaselineOutput   string
}

func NewParamsFromDefaults() Params {
	seed := Seed()
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return Params{
		DataDir:   DataDir(),
		Dataset:   Dataset(),
		ModelType: ModelType(),
		Split:     Split(),

		Topic:             Topic(),
		BatchSize:         BatchSize(),
		Mini:              Mini(),
		MinidocSize:       MinidocSize(),
		MaxSentenceLength: MaxSentenceLength(),
		Seed:              seed,

		Cache:    Cache(),
		FetchURL: FetchURL(),
		MongoURL: MongoURL(),

		BaselineTrials:   BaselineTrials(),
		BaselineTypes:    BaselineTypes(),
		BaselineKeywords: BaselineKeywords(),
		BaselineOutput:   BaselineOutput(),
	}
}

func (p Params) Validate() error {
	switch p.ModelType {
	case ModelTypeBert, ModelTypeLinear:
	default:
		return fmt.Errorf("unknown model type %q", p.ModelType)
	}
	switch p.Split {
	case SplitTrain, SplitVal, SplitTest:
	default:
		return fmt.Errorf("unknown split %q", p.Split)
	}
	if p.Dataset == "" {
		return fmt.Errorf("dataset name is empty")
	}
	return nil
}

// TopicPtr returns nil when no topic filter is configured.
func (p Params) TopicPtr() *int {
	if p.Topic < 0 {
		return nil
	}
	t := p.Topic
	return &t
}

// Rand derives an independent generator for stream from the configured seed,
// so loaders and baseline trials never share a random sequence.
func (p Params) Rand(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(p.Seed, stream))
}

func (p *Params) Write(w io.Writer, title string) {
	types := make([]string, len(p.BaselineTypes))
	for i, t := range p.BaselineTypes {
		types[i] = fmt.Sprintf("%d", t)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"SUMMARIES_DATA_DIR", p.DataDir},
		{"SUMMARIES_DATASET", p.Dataset},
		{"SUMMARIES_MODEL_TYPE", p.ModelType},
		{"SUMMARIES_SPLIT", p.Split},
		{"SUMMARIES_TOPIC", fmt.Sprintf("%d", p.Topic)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"SUMMARIES_BATCH_SIZE", fmt.Sprintf("%d", p.BatchSize)},
		{"SUMMARIES_MINI", fmt.Sprintf("%t", p.Mini)},
		{"SUMMARIES_MINIDOC_SIZE", fmt.Sprintf("%d", p.MinidocSize)},
		{"SUMMARIES_MAX_SENT_LEN", fmt.Sprintf("%d", p.MaxSentenceLength)},
		{"SUMMARIES_SEED", fmt.Sprintf("%d", p.Seed)},
		{"SUMMARIES_CACHE", p.Cache},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"SUMMARIES_BASELINE_TRIALS", fmt.Sprintf("%d", p.BaselineTrials)},
		{"SUMMARIES_BASELINE_TYPES", strings.Join(types, ",")},
		{"SUMMARIES_BASELINE_KEYWORDS", p.BaselineKeywords},
		{"SUMMARIES_BASELINE_OUTPUT", p.BaselineOutput},
	})
	t.Render()
}
