package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/mPC/internal/audit"
)

var (
	historyLimit int
	historyRun   string
	historyPhase string
	historySince time.Duration
	historyRuns  bool
	pruneAge     time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Zeigt den Deployment-Verlauf",
	Long: `Zeigt die aufgezeichneten Deployment-Ereignisse aus dem lokalen
Audit-Trail, neueste zuerst. Mit --runs werden nur die Run-IDs
aufgelistet.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Entfernt alte Einträge aus dem Audit-Trail",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openAudit()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		removed, err := store.Prune(ctx, pruneAge)
		if err != nil {
			return err
		}
		fmt.Printf("%d Einträge entfernt\n", removed)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximale Anzahl Ereignisse")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "Nur Ereignisse dieses Runs")
	historyCmd.Flags().StringVar(&historyPhase, "phase", "", "Nur Ereignisse dieser Phase")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "Nur Ereignisse jünger als (z.B. 24h)")
	historyCmd.Flags().BoolVar(&historyRuns, "runs", false, "Nur Run-IDs auflisten")
	historyPruneCmd.Flags().DurationVar(&pruneAge, "older-than", 30*24*time.Hour, "Einträge älter als (z.B. 720h)")

	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func openAudit() (*audit.SQLiteStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Audit.Path == "" {
		return nil, fmt.Errorf("kein Audit-Trail konfiguriert ([audit] path in der Config)")
	}
	return audit.Open(cfg.Audit.Path)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openAudit()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if historyRuns {
		runs, err := store.RunIDs(ctx, historyLimit)
		if err != nil {
			return err
		}
		if done, err := printResult(runs); done {
			return err
		}
		for _, r := range runs {
			fmt.Println(r)
		}
		return nil
	}

	filter := audit.Filter{
		RunID: historyRun,
		Phase: historyPhase,
		Limit: historyLimit,
	}
	if historySince > 0 {
		filter.Since = time.Now().Add(-historySince)
	}

	events, err := store.Query(ctx, filter)
	if err != nil {
		return err
	}
	if done, err := printResult(events); done {
		return err
	}

	for _, e := range events {
		line := fmt.Sprintf("%s  %-14s %-13s %s",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			shortRunID(e.RunID), e.Phase, e.Message)
		if e.Error != "" {
			line += fmt.Sprintf(" (Fehler: %s)", e.Error)
		}
		fmt.Println(line)
	}
	return nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
