// Package corpus reads the raw JSON side of a dataset: document sentences,
// reference summaries, oracle sentence indices and topic annotations.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DocumentsFile = "documents.json"
	SummariesFile = "summaries.json"
	OraclesFile   = "oracles.json"
	TopicsFile    = "topics.json"
)

var Files = []string{DocumentsFile, SummariesFile, OraclesFile, TopicsFile}

// Corpus is indexed by document index throughout.
type Corpus struct {
	Documents [][]string
	Summaries [][]string
	// Oracles[i][j] is the document sentence extracted for summary sentence j.
	Oracles [][]int
	// Topics[i][j] lists the topics summary sentence j covers.
	Topics [][][]int
}

func RawDir(root, dataset string) string {
	return filepath.Join(root, dataset, "raw")
}

func loadJSON[T any](path string) (T, error) {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return out, nil
}

// Load reads every raw file present. Oracles and topics are required;
// documents and summaries are only needed by the baseline and may be absent.
func Load(root, dataset string) (*Corpus, error) {
	dir := RawDir(root, dataset)
	c := &Corpus{}

	var err error
	if c.Oracles, err = loadJSON[[][]int](filepath.Join(dir, OraclesFile)); err != nil {
		return nil, err
	}
	if c.Topics, err = loadJSON[[][][]int](filepath.Join(dir, TopicsFile)); err != nil {
		return nil, err
	}
	if c.Documents, err = loadJSON[[][]string](filepath.Join(dir, DocumentsFile)); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if c.Summaries, err = loadJSON[[][]string](filepath.Join(dir, SummariesFile)); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return c, nil
}

// HasTopic reports whether any summary sentence of document index covers
// topic.
func (c *Corpus) HasTopic(index, topic int) bool {
	_, ok := c.firstTopicSentence(index, topic)
	return ok
}

func (c *Corpus) firstTopicSentence(index, topic int) (int, bool) {
	if index < 0 || index >= len(c.Topics) {
		return 0, false
	}
	for j, representation := range c.Topics[index] {
		for _, t := range representation {
			if t == topic {
				return j, true
			}
		}
	}
	return 0, false
}

// Labels keeps the indices whose summary covers topic and returns, for each,
// the oracle sentence of the first summary sentence covering it. A nil topic
// keeps every index and labels it 0; evaluation never reads those labels.
func (c *Corpus) Labels(indices []int, topic *int) ([]int, []int, error) {
	if topic == nil {
		return append([]int{}, indices...), make([]int, len(indices)), nil
	}

	kept := []int{}
	labels := []int{}
	for _, i := range indices {
		j, ok := c.firstTopicSentence(i, *topic)
		if !ok {
			continue
		}
		if i >= len(c.Oracles) || j >= len(c.Oracles[i]) {
			return nil, nil, fmt.Errorf("no oracle for document %d summary sentence %d", i, j)
		}
		kept = append(kept, i)
		labels = append(labels, c.Oracles[i][j])
	}
	return kept, labels, nil
}
