package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/mPC/internal/audit"
	"github.com/msto63/mPC/internal/deploy"
	"github.com/msto63/mPC/internal/tui/deployview"
	"github.com/msto63/mPC/pkg/core/config"
	"github.com/msto63/mPC/pkg/core/logging"
)

var (
	deployTUI        bool
	deployKeep       bool
	deployPackageURL string
	deployQueueMatch string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Rollt den Mobility-Print-Client unbeaufsichtigt aus",
	Long: `Rollt den Mobility-Print-Client auf diesem Windows-Arbeitsplatz
unbeaufsichtigt aus:

  1. Prüfen, ob Client und Queue bereits eingerichtet sind
  2. Installer herunterladen
  3. Stille Installation ausführen
  4. Auf den Client-Dienst warten
  5. Queue über den Provisionierungs-Token einrichten

Jede Phase ist zeitlich begrenzt; der Verlauf wird im Audit-Trail
aufgezeichnet, sofern [audit] konfiguriert ist. Mit --tui läuft das
Deployment mit interaktiver Fortschrittsanzeige.`,
	Args: cobra.NoArgs,
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().BoolVar(&deployTUI, "tui", false, "Interaktive Fortschrittsanzeige")
	deployCmd.Flags().BoolVar(&deployKeep, "keep-package", false, "Installer nach der Installation behalten")
	deployCmd.Flags().StringVar(&deployPackageURL, "package-url", "", "Installer-URL (überschreibt Config)")
	deployCmd.Flags().StringVar(&deployQueueMatch, "queue-match", "", "Queue-Erkennungsmuster (überschreibt Config)")

	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	token, err := authToken(cfg)
	if err != nil {
		return err
	}

	// Log lines would fight the alternate screen
	logger := newLogger(cfg).WithName("deploy")
	if deployTUI {
		logger = logging.Nop()
	}

	opts := deployOptions(cfg, token)
	insp := &deploy.PowerShellInspector{
		InstallPath: cfg.Deploy.InstallPath,
		ServiceName: cfg.Deploy.ServiceName,
	}

	d, err := deploy.New(opts, insp, logger)
	if err != nil {
		return err
	}

	if cfg.Audit.Path != "" {
		store, err := audit.Open(cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("Audit-Trail konnte nicht geöffnet werden: %w", err)
		}
		defer store.Close()
		d.WithRecorder(&audit.DeployRecorder{Store: store})
	}

	// Phase timeouts bound the run, no outer deadline needed
	ctx := context.Background()

	if deployTUI {
		return runDeployTUI(ctx, d)
	}

	result, err := d.Run(ctx)
	if err != nil {
		printError("Deployment fehlgeschlagen", err)
		return err
	}

	if result.AlreadyProvisioned {
		fmt.Printf("Bereits eingerichtet, Queue: %s\n", result.Queue)
		return nil
	}
	fmt.Printf("Erfolgreich bereitgestellt, Queue: %s (%s)\n", result.Queue, result.Duration.Round(time.Second))
	return nil
}

func deployOptions(cfg *config.Config, token string) deploy.Options {
	opts := deploy.Options{
		Token:          token,
		PackageURL:     cfg.Deploy.PackageURL,
		QueueMatch:     cfg.Deploy.QueueMatch,
		PollInterval:   cfg.Deploy.PollInterval.Duration,
		InstallTimeout: cfg.Deploy.InstallTimeout.Duration,
		ServiceTimeout: cfg.Deploy.ServiceTimeout.Duration,
		QueueTimeout:   cfg.Deploy.QueueTimeout.Duration,
		KeepPackage:    cfg.Deploy.KeepPackage || deployKeep,
	}
	if deployPackageURL != "" {
		opts.PackageURL = deployPackageURL
	}
	if deployQueueMatch != "" {
		opts.QueueMatch = deployQueueMatch
	}
	return opts
}

func runDeployTUI(ctx context.Context, d *deploy.Deployer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan deploy.ProgressEvent)
	done := make(chan deployview.DoneMsg, 1)
	d.WithEvents(events)

	go func() {
		result, err := d.Run(ctx)
		close(events)
		done <- deployview.DoneMsg{Result: result, Err: err}
	}()

	p := tea.NewProgram(deployview.New(events, done), tea.WithAltScreen())
	_, uiErr := p.Run()

	// Quitting mid-run cancels the deployment; the run goroutine may still
	// be blocked sending on the unbuffered events channel, so the outcome
	// read below also drains it.
	cancel()
	runErr := deployOutcome(events, done)

	if uiErr != nil {
		return fmt.Errorf("TUI Fehler: %w", uiErr)
	}
	return runErr
}

// deployOutcome drains remaining progress events until the run goroutine
// closes the channel and returns the run's final error
func deployOutcome(events <-chan deploy.ProgressEvent, done <-chan deployview.DoneMsg) error {
	for range events {
	}
	return (<-done).Err
}
