package sim

import (
	"go.uber.org/zap"

	"github.com/rustyeddy/econsim/config"
)

// ValidateSeeds sanity-checks the economic seeds and logs a warning for
// each configuration that can run but will not sustain itself. These are
// advisory: a deliberately unbalanced economy is a legitimate experiment.
func ValidateSeeds(cfg *config.Config, log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	empPerCorp := cfg.Corporation.Demand / cfg.Corporation.PPE
	empNeeded := empPerCorp * cfg.Simulation.Corporations
	if empNeeded > cfg.Simulation.People {
		log.Warnw("not enough people to meet demand",
			"needed", empNeeded,
			"have", cfg.Simulation.People,
		)
	}

	unitCost := cfg.Corporation.Salary / float64(cfg.Corporation.PPE)
	if unitCost > cfg.Corporation.Price {
		log.Warnw("unit cost exceeds price",
			"cost", unitCost,
			"price", cfg.Corporation.Price,
		)
	}

	totalSalary := cfg.Corporation.Salary * float64(empNeeded)
	possibleRevenue := totalSalary * cfg.Person.MPC
	if missing := totalSalary - possibleRevenue; missing > 0 && totalSalary > 0 {
		log.Warnw("revenue insufficient to cover salaries",
			"revenue", possibleRevenue,
			"salaries", totalSalary,
			"shortfall_pct", 100*missing/totalSalary,
		)
	}
}
