package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server-Aufgaben (Backup, Task-Status)",
}

var backupWait bool

var serverBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Startet ein Online-Backup",
	Long: `Startet ein Online-Backup der PaperCut-Datenbank. Mit --wait wird
auf den Abschluss der Aufgabe gewartet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.PerformOnlineBackup(ctx, token); err != nil {
			return err
		}
		fmt.Println("Online-Backup gestartet")

		if !backupWait {
			return nil
		}

		// Server tracks one background task at a time
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer waitCancel()

		for {
			status, err := client.GetTaskStatus(waitCtx, token)
			if err != nil {
				return err
			}
			if status.Completed {
				fmt.Printf("Backup abgeschlossen: %s\n", status.Message)
				return nil
			}
			if status.Message != "" {
				fmt.Printf("  ... %s\n", status.Message)
			}

			select {
			case <-waitCtx.Done():
				return fmt.Errorf("Backup nicht abgeschlossen: %w", waitCtx.Err())
			case <-time.After(5 * time.Second):
			}
		}
	},
}

var serverTaskStatusCmd = &cobra.Command{
	Use:   "task-status",
	Short: "Zeigt den Status der laufenden Server-Aufgabe",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		status, err := client.GetTaskStatus(ctx, token)
		if err != nil {
			return err
		}
		if done, err := printResult(status); done {
			return err
		}
		if status.Completed {
			fmt.Printf("[+] abgeschlossen: %s\n", status.Message)
		} else {
			fmt.Printf("[ ] läuft: %s\n", status.Message)
		}
		return nil
	},
}

func init() {
	serverBackupCmd.Flags().BoolVar(&backupWait, "wait", false, "Auf Abschluss warten")

	serverCmd.AddCommand(serverBackupCmd, serverTaskStatusCmd)
	rootCmd.AddCommand(serverCmd)
}
