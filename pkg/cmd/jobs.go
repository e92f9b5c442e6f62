package cmd

import (
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/artifact"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/cmd/cmdutil"
	"github.com/BayerSe/expected-shortfall-backtesting/pkg/experiment"
)

func init() {
	RootCmd.AddCommand(newJobCmd(experiment.MonteCarlo1ID, "size tables, size-power curves and partial AUC of the first study"))
	RootCmd.AddCommand(newJobCmd(experiment.MonteCarlo2ID, "power curves and size table of the second study"))
	RootCmd.AddCommand(newJobCmd(experiment.IllustrationID, "simulated expected shortfall paths of the second study"))
	RootCmd.AddCommand(newJobCmd(experiment.ApproximationsID, "panel grid checking the asymptotic approximations"))

	allCmd.Flags().Bool("sequential", false, "run the jobs one after another")
	RootCmd.AddCommand(allCmd)
}

func newJobCmd(id, short string) *cobra.Command {
	return &cobra.Command{
		Use:   id,
		Short: short,

		// SilenceUsage is an option to silence usage when an error occurs.
		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(false, id)
		},
	}
}

var allCmd = &cobra.Command{
	Use:          "all",
	Short:        "run every job",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sequential, err := cmd.Flags().GetBool("sequential")
		if err != nil {
			return err
		}
		return runJobs(!sequential)
	},
}

// runJobs runs the jobs with the given ids, all of them when ids is empty.
func runJobs(concurrent bool, ids ...string) error {
	c, err := cmdutil.LoadConfig()
	if err != nil {
		return err
	}

	store := artifact.NewRecordingStore(artifact.NewDirStore(c.OutputDir))
	env := experiment.NewEnvironment(c, store)
	if viper.GetBool("print") {
		env.Console = os.Stdout
	}

	jobs := experiment.Jobs(env)
	if len(ids) > 0 {
		jobs = jobs[:0]
		for _, id := range ids {
			job, err := experiment.Lookup(env, id)
			if err != nil {
				return err
			}
			jobs = append(jobs, job)
		}
	}

	ids = ids[:0]
	for _, job := range jobs {
		ids = append(ids, job.ID())
	}
	run := artifact.NewRun(ids)

	ctx, cancel := cmdutil.SignalContext()
	defer cancel()

	log.WithField("run", run.ID).Infof("reading from %s, writing to %s", c.InputDir, c.OutputDir)
	err = experiment.Run(ctx, jobs, experiment.RunOptions{
		Concurrent: concurrent,
		Progress:   viper.GetBool("progress"),
	})

	run.Artifacts = store.Paths()
	if err != nil {
		run.Error = err.Error()
	}
	if indexErr := artifact.AddIndexRun(c.OutputDir, run); indexErr != nil {
		log.WithError(indexErr).Error("can not update the run index")
	}

	printSummary(store, c.OutputDir)
	return err
}

func printSummary(store *artifact.RecordingStore, outputDir string) {
	paths := store.Paths()
	if len(paths) == 0 {
		color.Yellow("no artifacts written")
		return
	}

	color.Green("%d artifacts (%d bytes) written to %s", len(paths), store.Bytes(), outputDir)
	for _, p := range paths {
		color.Cyan("  %s", p)
	}
}
