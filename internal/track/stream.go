package track

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// StreamWatcher reads fixes as JSON lines from a reader (a file, a pipe
// from a companion device app, or stdin). This is the CLI build's location
// sensor boundary. A malformed line is a sensor error and ends the stream.
type StreamWatcher struct {
	r io.Reader
}

func NewStreamWatcher(r io.Reader) *StreamWatcher {
	return &StreamWatcher{r: r}
}

func (w *StreamWatcher) Watch(ctx context.Context) (<-chan Fix, <-chan error, error) {
	fixes := make(chan Fix)
	errs := make(chan error, 1)

	go func() {
		defer close(fixes)
		scanner := bufio.NewScanner(w.r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var fix Fix
			if err := json.Unmarshal([]byte(line), &fix); err != nil {
				errs <- fmt.Errorf("bad fix %q: %w", line, err)
				return
			}
			select {
			case fixes <- fix:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errs <- err
		}
	}()

	return fixes, errs, nil
}
