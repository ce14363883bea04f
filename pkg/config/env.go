package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

func envInt(name string, def func() int, dec func(v int) int) func() int {
	return func() int {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseInt(v, 10, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = int(v)
			}
		}
		return dec(value)
	}
}

func envUint64(name string, def func() uint64) func() uint64 {
	return func() uint64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseUint(v, 10, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return value
	}
}

func envBool(name string, def func() bool) func() bool {
	return func() bool {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseBool(v); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return value
	}
}

func envString(name string, def func() string) func() string {
	return func() string {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			value = v
		}
		return value
	}
}

func envInts(name string, def func() []int) func() []int {
	return func() []int {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			value = []int{}
			for _, part := range strings.Split(v, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				if i, err := strconv.Atoi(part); err != nil {
					log.Fatalf("failed to parse env.%s: %v", name, err)
				} else {
					value = append(value, i)
				}
			}
		}
		return value
	}
}

var (
	DataDir           = envString("SUMMARIES_DATA_DIR", func() string { return "../data" })
	Dataset           = envString("SUMMARIES_DATASET", func() string { return "pcr" })
	ModelType         = envString("SUMMARIES_MODEL_TYPE", func() string { return ModelTypeBert })
	Split             = envString("SUMMARIES_SPLIT", func() string { return SplitTrain })
	Cache             = envString("SUMMARIES_CACHE", func() string { return "" })
	FetchURL          = envString("SUMMARIES_FETCH_URL", func() string { return "" })
	MongoURL          = envString("MONGO_URL", func() string { return "" })
	MongoTransactions = envBool("MONGO_SUPPORTS_TRANSACTIONS", func() bool { return false })
)

var (
	Topic             = envInt("SUMMARIES_TOPIC", func() int { return -1 }, BoundTopic)
	BatchSize         = envInt("SUMMARIES_BATCH_SIZE", func() int { return 8 }, BoundBatchSize)
	Mini              = envBool("SUMMARIES_MINI", func() bool { return false })
	MinidocSize       = envInt("SUMMARIES_MINIDOC_SIZE", func() int { return 10 }, BoundMinidocSize)
	MaxSentenceLength = envInt("SUMMARIES_MAX_SENT_LEN", func() int { return 512 }, BoundMaxSentenceLength)
	Seed              = envUint64("SUMMARIES_SEED", func() uint64 { return 0 })
)

var (
	BaselineTrials   = envInt("SUMMARIES_BASELINE_TRIALS", func() int { return 10 }, BoundBaselineTrials)
	BaselineTypes    = envInts("SUMMARIES_BASELINE_TYPES", func() []int { return []int{0, 1, 3} })
	BaselineKeywords = envString("SUMMARIES_BASELINE_KEYWORDS", func() string { return "earthquake" })
	BaselineOutput   = envString("SUMMARIES_BASELINE_OUTPUT", func() string { return "baseline_preds.txt" })
)
