package experiment

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/artifact/mocks"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/config"
)

// files collects what the jobs write through the mocked store.
type files struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (f *files) get(p string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.data[p])
}

func (f *files) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for p := range f.data {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func newTestEnvironment(t *testing.T) (*Environment, *files) {
	ctrl := gomock.NewController(t)
	written := &files{data: make(map[string][]byte)}

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().WriteFile(gomock.Any(), gomock.Any()).DoAndReturn(func(p string, data []byte) error {
		written.mu.Lock()
		defer written.mu.Unlock()
		written.data[p] = data
		return nil
	}).AnyTimes()

	c := config.Default()
	c.InputDir = "testdata"
	return NewEnvironment(c, store), written
}

func TestLookup(t *testing.T) {
	env, _ := newTestEnvironment(t)

	for _, id := range []string{MonteCarlo1ID, MonteCarlo2ID, IllustrationID, ApproximationsID} {
		job, err := Lookup(env, id)
		require.NoError(t, err)
		assert.Equal(t, id, job.ID())
	}

	_, err := Lookup(env, "mc3")
	assert.Error(t, err)
}

type funcJob struct {
	id  string
	run func(ctx context.Context) error
}

func (j *funcJob) ID() string                    { return j.id }
func (j *funcJob) Run(ctx context.Context) error { return j.run(ctx) }

func TestRun(t *testing.T) {
	t.Run("sequential keeps the order", func(t *testing.T) {
		var order []string
		var jobs []Job
		for _, id := range []string{"a", "b", "c"} {
			id := id
			jobs = append(jobs, &funcJob{id: id, run: func(ctx context.Context) error {
				order = append(order, id)
				return nil
			}})
		}

		require.NoError(t, Run(context.Background(), jobs, RunOptions{}))
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("failure cancels the other jobs", func(t *testing.T) {
		boom := errors.New("boom")
		jobs := []Job{
			&funcJob{id: "failing", run: func(ctx context.Context) error { return boom }},
			&funcJob{id: "waiting", run: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			}},
		}

		err := Run(context.Background(), jobs, RunOptions{Concurrent: true})
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom) || errors.Is(err, context.Canceled))
	})

	t.Run("all jobs", func(t *testing.T) {
		env, written := newTestEnvironment(t)
		require.NoError(t, Run(context.Background(), Jobs(env), RunOptions{Concurrent: true}))
		assert.Contains(t, written.paths(), "monte_carlo_1/gas_std_calibrated/pauc.svg")
		assert.Contains(t, written.paths(), "monte_carlo_2/size.txt")
		assert.Contains(t, written.paths(), "monte_carlo_2/example_series/1_e.svg")
		assert.Contains(t, written.paths(), "monte_carlo_check_approximations/check_approximations.pdf")
	})
}
