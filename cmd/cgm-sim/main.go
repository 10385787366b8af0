// Command cgm-sim generates synthetic CGM readings for a user from the
// command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/cgm-simulator/internal/bot/menus"
	"github.com/vladimiradmaev/cgm-simulator/internal/config"
	"github.com/vladimiradmaev/cgm-simulator/internal/database"
	"github.com/vladimiradmaev/cgm-simulator/internal/logger"
	"github.com/vladimiradmaev/cgm-simulator/internal/observability"
	"github.com/vladimiradmaev/cgm-simulator/internal/repository"
	"github.com/vladimiradmaev/cgm-simulator/internal/services"
	"github.com/vladimiradmaev/cgm-simulator/internal/simulation"
)

func main() {
	userID := flag.Uint("user", 0, "User ID to generate readings for")
	hours := flag.Int("hours", services.DemoHours, "Hours of history to generate")
	endTime := flag.String("end", "", "End of the window (RFC3339), defaults to now")
	seed := flag.Int64("seed", 0, "Random seed (0 uses SIM_SEED or the clock)")
	strict := flag.Bool("strict", false, "Abort on the first storage failure")
	dryRun := flag.Bool("dry-run", false, "Keep readings in memory instead of PostgreSQL")
	noBasal := flag.Bool("no-basal", false, "Disable the daily basal pattern")
	noMeals := flag.Bool("no-meals", false, "Disable meal spikes")
	noExercise := flag.Bool("no-exercise", false, "Disable exercise drops")
	noSleep := flag.Bool("no-sleep", false, "Disable the overnight sleep influence")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if err := logger.InitWithConfig(cfg.LoggerSettings()); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()

	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if *strict {
		cfg.Simulation.Strict = true
	}

	end := time.Now()
	if *endTime != "" {
		end, err = time.Parse(time.RFC3339, *endTime)
		if err != nil {
			logger.Fatal("Invalid -end", "value", *endTime, "error", err)
		}
	}

	toggles := simulation.Toggles{
		BasalPattern:   !*noBasal,
		MealSpikes:     !*noMeals,
		ExerciseDrops:  !*noExercise,
		SleepInfluence: !*noSleep,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, err := openSink(ctx, cfg, *userID, *dryRun)
	if err != nil {
		logger.Fatal("Failed to open storage", "error", err)
	}

	svc := services.NewSimulationService(sink, cfg.Simulation, observability.NewMetrics("", nil))
	report, err := svc.SimulateHours(ctx, *userID, *hours, end, toggles)
	if report == nil {
		logger.Fatal("Simulation failed", "error", err)
	}

	printReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stopped early: %v\n", err)
		os.Exit(1)
	}
}

// openSink returns the store readings go to. The PostgreSQL store requires
// the user to exist, since readings reference it.
func openSink(ctx context.Context, cfg *config.Config, userID uint, dryRun bool) (simulation.Sink, error) {
	if userID == 0 {
		return nil, errors.New("-user is required")
	}
	if dryRun {
		return repository.NewMemoryGlucoseStore(), nil
	}

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		return nil, err
	}

	if _, err := services.NewUserService(db).GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("user %d does not exist", userID)
		}
		return nil, err
	}
	return repository.NewGlucoseRepository(db), nil
}

func printReport(report *services.RunReport) {
	fmt.Printf("run %s: %s .. %s\n", report.RunID, report.Start.Format(time.RFC3339), report.End.Format(time.RFC3339))
	fmt.Printf("attempted=%d generated=%d failed=%d\n", report.Attempted, report.TotalGenerated, report.Failed)
	for _, r := range report.Preview {
		fmt.Println(menus.FormatReading(r))
	}
	fmt.Println(menus.FormatSummary(services.Summarize(report.Readings)))
}
