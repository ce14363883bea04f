package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/grexie/summaries/pkg/baseline"
	"github.com/grexie/summaries/pkg/collate"
	"github.com/grexie/summaries/pkg/config"
	"github.com/grexie/summaries/pkg/corpus"
	"github.com/grexie/summaries/pkg/dataset"
	"github.com/grexie/summaries/pkg/db"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"gorgonia.org/gorgonia"
)

func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			godotenv.Load(filename)
		}
	}
}

func newProgressWriter() progress.Writer {
	pw := progress.NewWriter()
	pw.SetMessageLength(40)
	pw.SetNumTrackersExpected(4)
	pw.SetSortBy(progress.SortByPercentDsc)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(15)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%2.0f%%"
	return pw
}

func stopProgressWriter(pw progress.Writer) {
	pw.Stop()
	for pw.IsRenderInProgress() {
		time.Sleep(100 * time.Millisecond)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s inspect|baseline|fetch\n", os.Args[0])
	os.Exit(2)
}

func main() {
	if _, ok := os.LookupEnv("ENV"); !ok {
		env := "development"
		os.Setenv("ENV", env)
	}
	loadEnv(".env."+os.Getenv("ENV")+".local", ".env."+os.Getenv("ENV"), ".env.local", ".env")

	if len(os.Args) < 2 {
		usage()
	}

	params := config.NewParamsFromDefaults()
	if err := params.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	params.Write(os.Stdout, "Config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pw := newProgressWriter()
	go pw.Render()

	var err error
	switch os.Args[1] {
	case "inspect":
		err = inspect(ctx, pw, params)
	case "baseline":
		err = runBaseline(ctx, pw, params)
	case "fetch":
		err = fetch(ctx, pw, params)
	default:
		stopProgressWriter(pw)
		usage()
	}
	stopProgressWriter(pw)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("interrupted")
			os.Exit(130)
		}
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func fetch(ctx context.Context, pw progress.Writer, params config.Params) error {
	if params.FetchURL == "" {
		return fmt.Errorf("SUMMARIES_FETCH_URL is not set")
	}
	return corpus.Fetch(ctx, pw, params.FetchURL, params.DataDir, params.Dataset)
}

// inspect walks one epoch of the configured loader, binding every batch to a
// fresh graph input, and reports the padded shapes it saw.
func inspect(ctx context.Context, pw progress.Writer, params config.Params) error {
	c, err := corpus.Load(params.DataDir, params.Dataset)
	if err != nil {
		return err
	}

	var cache *dataset.Cache
	if params.Cache != "" {
		if cache, err = dataset.OpenCache(params.Cache); err != nil {
			return err
		}
		defer cache.Close()
	}

	loader, err := dataset.NewLoader(params, c, cache)
	if err != nil {
		return err
	}
	loader.SetProgress(pw)

	batches, documents := 0, 0
	maxDocLen, maxSentLen := 0, 0
	var first *collate.Batch
	for {
		batch, err := loader.Next(ctx)
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		g := gorgonia.NewGraph()
		if err := collate.Feed(batch, collate.InputNode(g, batch, "inputs"), collate.LabelNode(g, batch, "labels")); err != nil {
			return err
		}

		shape := batch.Inputs.Shape()
		maxDocLen = max(maxDocLen, shape[1])
		if len(shape) == 3 && params.ModelType == config.ModelTypeBert {
			maxSentLen = max(maxSentLen, shape[2])
		}
		if first == nil {
			first = batch
		}
		batches++
		documents += batch.Size()
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("%s %s %s", params.Dataset, params.ModelType, params.Split))
	t.AppendRows([]table.Row{
		{"Batches", fmt.Sprintf("%d", batches)},
		{"Documents", fmt.Sprintf("%d", documents)},
		{"Max Document Length", fmt.Sprintf("%d", maxDocLen)},
	})
	if params.ModelType == config.ModelTypeBert {
		t.AppendRow(table.Row{"Max Sentence Length", fmt.Sprintf("%d", maxSentLen)})
	}
	if first != nil {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"Inputs", fmt.Sprintf("%v %v", first.Inputs.Dtype(), first.Inputs.Shape())},
			{"Mask", fmt.Sprintf("%v %v", first.Mask.Dtype(), first.Mask.Shape())},
			{"Labels", fmt.Sprintf("%v %v", first.Labels.Dtype(), first.Labels.Shape())},
		})
	}
	t.Render()
	return nil
}

// runBaseline scores the keyword baseline on the documents of the test
// split.
func runBaseline(ctx context.Context, pw progress.Writer, params config.Params) error {
	c, err := corpus.Load(params.DataDir, params.Dataset)
	if err != nil {
		return err
	}

	store := &dataset.Store{
		Root:      params.DataDir,
		Dataset:   params.Dataset,
		ModelType: params.ModelType,
		Split:     config.SplitTest,
	}
	indices, err := store.Indices()
	if err != nil {
		return err
	}
	log.Printf("found %d test documents in %s", len(indices), store.Dir())

	result, err := baseline.Evaluate(ctx, pw, c, indices, params)
	if err != nil {
		return err
	}

	if err := writeFile(params.BaselineOutput, result.WritePredictions); err != nil {
		return err
	}
	csvPath := strings.TrimSuffix(params.BaselineOutput, ".txt") + ".csv"
	if err := writeFile(csvPath, func(w io.Writer) error {
		return result.WriteCSV(csv.NewWriter(w))
	}); err != nil {
		return err
	}
	result.Write(os.Stdout)

	if params.MongoURL != "" {
		mongo, err := db.ConnectMongo(ctx, params.MongoURL)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		defer mongo.Client().Disconnect(context.Background())

		id, err := db.SaveEvaluation(ctx, mongo, db.NewEvaluation(result, params.Seed, time.Now()))
		if err != nil {
			return fmt.Errorf("failed to save evaluation: %w", err)
		}
		log.Printf("saved evaluation %s", id.Hex())
	}
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
