package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type RunOptions struct {
	// Concurrent runs the jobs in parallel, the first failure cancels the others.
	Concurrent bool

	Progress bool
}

// Run executes the jobs. Jobs write disjoint paths so they can run concurrently.
func Run(ctx context.Context, jobs []Job, opts RunOptions) error {
	var bar *pb.ProgressBar
	if opts.Progress {
		bar = pb.Full.Start(len(jobs))
		bar.SetTemplateString(`{{ string . "log" | green}} | {{counters . }} {{bar . }} {{percent . }} {{etime . }}`)
		defer bar.Finish()
	}

	run := func(ctx context.Context, job Job) error {
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			return errors.Wrapf(err, "job %s", job.ID())
		}

		log.WithFields(logrus.Fields{"job": job.ID(), "duration": time.Since(start)}).Info("job finished")
		if bar != nil {
			bar.Set("log", fmt.Sprintf("%s done", job.ID()))
			bar.Increment()
		}
		return nil
	}

	if !opts.Concurrent {
		for _, job := range jobs {
			if err := run(ctx, job); err != nil {
				return err
			}
		}
		return nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		eg.Go(func() error {
			return run(egCtx, job)
		})
	}
	return eg.Wait()
}
