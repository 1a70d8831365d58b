// Package extract runs per-ecosystem dependency sources and merges their
// output into a single record stream for the aggregator.
//
// Sources may run concurrently (pip and npm extraction are independent);
// their outputs are fanned into one slice before aggregation, which keeps
// the core single-threaded. A failing source contributes zero records and
// a warning rather than aborting the run.
package extract

import (
	"context"
	"sync"
	"time"

	"github.com/licaudit/licaudit/pkg/audit"
	"github.com/licaudit/licaudit/pkg/observability"
)

// Logf is a progress/warning callback, compatible with Logger.Warnf.
type Logf func(format string, args ...any)

// Collect runs every source concurrently and merges their records.
// The returned status map carries per-ecosystem record counts and failure
// flags for the report summary. Record order between ecosystems is
// unspecified; aggregation is order-independent.
func Collect(ctx context.Context, logf Logf, sources ...audit.Source) ([]audit.Record, map[string]audit.ExtractorStatus) {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		records []audit.Record
		status  = make(map[string]audit.ExtractorStatus, len(sources))
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src audit.Source) {
			defer wg.Done()

			eco := string(src.Ecosystem())
			observability.Scan().OnExtractStart(ctx, eco)
			start := time.Now()

			recs, err := src.Extract(ctx)
			observability.Scan().OnExtractComplete(ctx, eco, len(recs), time.Since(start), err)
			if err != nil {
				logf("%s extraction failed: %v", eco, err)
			}

			mu.Lock()
			defer mu.Unlock()
			st := status[eco]
			st.Records += len(recs)
			if err != nil {
				st.Failed = true
			}
			status[eco] = st
			records = append(records, recs...)
		}(src)
	}

	wg.Wait()
	return records, status
}
