package baseline

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/grexie/summaries/pkg/rouge"
	"github.com/jedib0t/go-pretty/v6/table"
)

// WritePredictions writes one predicted summary per line.
func (r *Result) WritePredictions(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, summary := range r.Summaries {
		if _, err := bw.WriteString(strings.ReplaceAll(summary, "\n", " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func WriteCSVHeader(writer *csv.Writer) error {
	header := []string{"Trial", "ROUGE-1 F", "ROUGE-2 F", "ROUGE-L F", "ROUGE-Lsum F"}
	if err := writer.Write(header); err != nil {
		return err
	} else {
		writer.Flush()
		return writer.Error()
	}
}

// WriteCSV writes one row per trial followed by mean and stddev rows.
func (r *Result) WriteCSV(writer *csv.Writer) error {
	if err := WriteCSVHeader(writer); err != nil {
		return err
	}
	for i, trial := range r.Trials {
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%0.6f", trial.Rouge1),
			fmt.Sprintf("%0.6f", trial.Rouge2),
			fmt.Sprintf("%0.6f", trial.RougeL),
			fmt.Sprintf("%0.6f", trial.RougeLsum),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	mean, stddev := []string{"Mean"}, []string{"StdDev"}
	for _, metric := range rouge.Metrics {
		mean = append(mean, fmt.Sprintf("%0.6f", r.Mean(metric)))
		stddev = append(stddev, fmt.Sprintf("%0.6f", r.StdDev(metric)))
	}
	if err := writer.Write(mean); err != nil {
		return err
	}
	if err := writer.Write(stddev); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func (r *Result) Write(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Keyword Baseline (%s, %s)", r.Dataset, r.Keywords))
	t.AppendHeader(table.Row{"", "MEAN", "STDDEV"})
	for _, metric := range rouge.Metrics {
		t.AppendRow(table.Row{strings.ToUpper(metric), fmt.Sprintf("%0.4f", r.Mean(metric)), fmt.Sprintf("%0.4f", r.StdDev(metric))})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"Documents", fmt.Sprintf("%d", len(r.Indices))})
	t.AppendRow(table.Row{"Trials", fmt.Sprintf("%d", len(r.Trials))})
	t.AppendRow(table.Row{"Types", strings.Trim(fmt.Sprint(r.Types), "[]")})
	t.Render()
}
