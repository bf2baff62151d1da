package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Supervision-Inbound/prueba.condo/internal/config"
	"github.com/Supervision-Inbound/prueba.condo/internal/format"
	"github.com/Supervision-Inbound/prueba.condo/internal/kv"
	logpkg "github.com/Supervision-Inbound/prueba.condo/internal/logger"
	"github.com/Supervision-Inbound/prueba.condo/internal/report"
	"github.com/Supervision-Inbound/prueba.condo/internal/service"
	"github.com/Supervision-Inbound/prueba.condo/internal/store"
)

const usage = `usage: conadmin [command]

commands:
  serve           run backups and autosave until interrupted (default)
  export [file]   write the export document to file or stdout
  import <file>   merge an export document into the dataset
  restore         replace the dataset with the latest backup
  verify          check residents and payments for consistency
  stats           print dashboard statistics
  cleanup         purge completed maintenance past the retention
  report <file>   write an .xlsx report
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := format.SetLocale(cfg.Locale); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set locale: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	command := "serve"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	level := cfg.Log.Level
	if command != "serve" && level != "debug" {
		// keep stdout for command output
		level = "error"
	}
	log, err := logpkg.NewLogger(level, cfg.Log.Format, "conadmin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if command == "serve" {
		serve(cfg, log)
		return
	}
	if err := runOnce(cfg, log, command, args); err != nil {
		fmt.Fprintf(os.Stderr, "conadmin %s: %v\n", command, err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config, log *zap.Logger) {
	log.Info("Starting conadmin")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := service.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create service", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := svc.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("Service error", zap.Error(err))
	}
	cancel()

	// the run context is gone; the final persist needs a live one
	if err := svc.Stop(context.Background()); err != nil {
		log.Error("Error stopping service", zap.Error(err))
	}
	log.Info("Conadmin stopped")
}

var errUsage = errors.New("invalid arguments")

func runOnce(cfg *config.Config, log *zap.Logger, command string, args []string) (err error) {
	switch command {
	case "export", "import", "restore", "verify", "stats", "cleanup", "report":
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
	if (command == "import" || command == "report") && len(args) != 1 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("%w: %s needs a file", errUsage, command)
	}

	ctx := context.Background()
	svc, err := service.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := svc.Stop(ctx); err == nil {
			err = stopErr
		}
	}()

	switch command {
	case "export":
		doc, err := svc.Backup.ExportAll()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Println(doc)
			return nil
		}
		return os.WriteFile(args[0], []byte(doc), 0o600)

	case "import":
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return svc.Backup.ImportAll(ctx, string(payload))

	case "restore":
		return svc.Backup.Restore(ctx)

	case "verify":
		rep := svc.Store.VerifyIntegrity()
		if err := printJSON(rep); err != nil {
			return err
		}
		if !rep.IsValid {
			return fmt.Errorf("%d integrity issues", len(rep.Issues))
		}
		return nil

	case "stats":
		info, err := svc.Store.StorageInfo(ctx)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Statistics  store.Statistics           `json:"statistics"`
			Income      []store.MonthlyIncome      `json:"monthlyIncome"`
			Maintenance store.MaintenanceBreakdown `json:"maintenance"`
			Storage     kv.Usage                   `json:"storage"`
		}{
			Statistics:  svc.Store.Statistics(),
			Income:      svc.Store.FinancialSeries(),
			Maintenance: svc.Store.MaintenanceBreakdown(),
			Storage:     info,
		})

	case "cleanup":
		res, err := svc.Store.CleanupOldData(ctx)
		if err != nil {
			return err
		}
		return printJSON(res)

	case "report":
		b, err := report.Workbook(report.FromStore(svc.Store, cfg.Location()))
		if err != nil {
			return err
		}
		return os.WriteFile(args[0], b, 0o600)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
