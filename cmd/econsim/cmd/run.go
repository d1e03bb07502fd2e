package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/econsim/config"
	"github.com/rustyeddy/econsim/journal"
	"github.com/rustyeddy/econsim/logging"
	"github.com/rustyeddy/econsim/sim"
)

const conservationTolerance = 1e-6

var (
	configPath string
	logLevel   string
	ticks      int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if configPath == "" {
			configPath = os.Getenv("ECONSIM_CONFIG")
		}
		if configPath != "" {
			var err error
			cfg, err = config.LoadFromFile(configPath)
			if err != nil {
				return err
			}
		}
		if ticks > 0 {
			cfg.Simulation.Ticks = ticks
		}

		log, err := logging.New(logLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		jrnl, err := openJournal(cfg.Journal)
		if err != nil {
			return err
		}
		defer jrnl.Close()

		sim.ValidateSeeds(cfg, log)

		s, err := sim.New(cfg, log, jrnl)
		if err != nil {
			return err
		}
		if err := s.Run(); err != nil {
			return err
		}

		// Reserve and balances are summed in different orders, so allow
		// float rounding slack before calling the run broken.
		if gap := s.ConservationGap(); math.Abs(gap) > conservationTolerance {
			return fmt.Errorf("conservation violated: reserve/balance gap %v", gap)
		}
		return nil
	},
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(jc.EntriesFile, jc.TicksFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (YAML or JSON)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "override the configured number of ticks")
	rootCmd.AddCommand(runCmd)
}
