package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/progress"
)

var (
	apiClient = resty.New()
)

// Fetch downloads the raw corpus files of dataset from baseURL into root,
// laid out as <root>/<dataset>/raw/<file>. Files missing on the server
// (404) are skipped.
func Fetch(ctx context.Context, pw progress.Writer, baseURL, root, dataset string) error {
	if baseURL == "" {
		return fmt.Errorf("no fetch url configured")
	}

	dir := RawDir(root, dataset)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: fmt.Sprintf("Fetching %s corpus", dataset),
			Total:   int64(len(Files)),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}

	for _, name := range Files {
		url := strings.TrimRight(baseURL, "/") + "/" + dataset + "/raw/" + name
		resp, err := apiClient.R().SetContext(ctx).Get(url)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", url, err)
		}
		if resp.StatusCode() == 404 {
			if tracker != nil {
				tracker.Increment(1)
			}
			continue
		}
		if resp.IsError() {
			return fmt.Errorf("failed to fetch %s: %s", url, resp.Status())
		}

		path := filepath.Join(dir, name)
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, resp.Body(), 0644); err != nil {
			return err
		}
		if err := os.Rename(tmp, path); err != nil {
			return err
		}
		if tracker != nil {
			tracker.Increment(1)
		}
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}
	return nil
}
