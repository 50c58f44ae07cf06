package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/course-conflict-checker/internal/conflict"
	"github.com/noah-isme/course-conflict-checker/internal/dto"
	"github.com/noah-isme/course-conflict-checker/internal/repository"
	"github.com/noah-isme/course-conflict-checker/internal/service"
	"github.com/noah-isme/course-conflict-checker/pkg/database"
)

var (
	checkTerm    string
	checkFile    string
	checkWorkers int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a stored term or a JSON schedule snapshot for conflicts",
	Long: `Run the instructor, room, constraint group and date range checks and print
the JSON report. Use --term to load a stored term from the database or --file
to read a snapshot in the POST /conflicts/check format ("-" reads stdin).`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkTerm, "term", "t", "", "Stored term ID to check")
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Schedule snapshot JSON file")
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 0, "Parallel group workers (default: CHECKER_WORKERS)")
	checkCmd.MarkFlagsMutuallyExclusive("term", "file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkTerm == "" && checkFile == "" {
		return fmt.Errorf("one of --term or --file is required")
	}

	cfg, logr, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	workers := cfg.Checker.Workers
	if checkWorkers > 0 {
		workers = checkWorkers
	}
	engine := conflict.NewEngine(logr, conflict.EngineConfig{Workers: workers})
	svcCfg := service.ConflictServiceConfig{MaxRecords: cfg.Checker.MaxRecords}

	var report *dto.ConflictReport
	if checkFile != "" {
		req, err := readSnapshot(cmd, checkFile)
		if err != nil {
			return err
		}
		svc := service.NewConflictService(nil, nil, engine, nil, nil, nil, logr, svcCfg)
		if report, err = svc.Check(cmd.Context(), req); err != nil {
			return err
		}
	} else {
		db, err := database.NewPostgres(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer db.Close()

		svc := service.NewConflictService(
			repository.NewMeetingRecordRepository(db),
			repository.NewConstraintGroupRepository(db),
			engine, nil, nil, nil, logr, svcCfg,
		)
		if report, err = svc.CheckTerm(cmd.Context(), checkTerm); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func readSnapshot(cmd *cobra.Command, path string) (dto.CheckConflictsRequest, error) {
	var req dto.CheckConflictsRequest

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("decode snapshot: %w", err)
	}
	return req, nil
}
