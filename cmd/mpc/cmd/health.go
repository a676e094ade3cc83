package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Prüft die Erreichbarkeit des PaperCut-Servers",
	Long: `Prüft die Erreichbarkeit des PaperCut Application Servers über
dessen Health-Endpunkt. Es wird kein Auth-Token benötigt.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newClient(cfg)
	defer client.Close()

	ctx, cancel := commandContext(cfg)
	defer cancel()

	if err := client.Health(ctx); err != nil {
		fmt.Printf("[-] %s - nicht erreichbar\n", client.URL())
		return err
	}
	fmt.Printf("[+] %s - erreichbar\n", client.URL())
	return nil
}
