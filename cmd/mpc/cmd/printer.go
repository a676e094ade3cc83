package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var printerCmd = &cobra.Command{
	Use:   "printer",
	Short: "Verwaltet Drucker",
	Long: `Verwaltet Drucker auf dem PaperCut Application Server. Drucker
werden über Servername und Druckername angesprochen.`,
}

var (
	printerOffset     int
	printerLimit      int
	printerDisableMin int
)

var printerListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listet Drucker auf",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		printers, err := client.ListPrinters(ctx, token, printerOffset, printerLimit)
		if err != nil {
			return err
		}
		if done, err := printResult(printers); done {
			return err
		}
		for _, p := range printers {
			fmt.Println(p)
		}
		return nil
	},
}

var printerPropertyCmd = &cobra.Command{
	Use:   "property <server> <drucker> <eigenschaft> [wert]",
	Short: "Liest oder setzt eine Druckereigenschaft",
	Long: `Liest eine Druckereigenschaft (drei Argumente) oder setzt sie
(vier Argumente). Gängige Eigenschaften: disabled, cost-model,
print-stats.total-pages.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if len(args) == 4 {
			if err := client.SetPrinterProperty(ctx, token, args[0], args[1], args[2], args[3]); err != nil {
				return err
			}
			fmt.Printf("%s von %s\\%s gesetzt\n", args[2], args[0], args[1])
			return nil
		}

		value, err := client.GetPrinterProperty(ctx, token, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"printer": args[0] + "\\" + args[1], args[2]: value}); done {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var printerCostCmd = &cobra.Command{
	Use:   "cost <server> <drucker> [kosten-pro-seite]",
	Short: "Liest oder setzt die Seitenkosten",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if len(args) == 3 {
			cost, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("ungültige Kosten %q: %w", args[2], err)
			}
			if err := client.SetPrinterCostSimple(ctx, token, args[0], args[1], cost); err != nil {
				return err
			}
			fmt.Printf("Seitenkosten von %s\\%s auf %.4f gesetzt\n", args[0], args[1], cost)
			return nil
		}

		cost, err := client.GetPrinterCostSimple(ctx, token, args[0], args[1])
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"printer": args[0] + "\\" + args[1], "cost_per_page": cost}); done {
			return err
		}
		fmt.Printf("%.4f\n", cost)
		return nil
	},
}

var printerEnableCmd = &cobra.Command{
	Use:   "enable <server> <drucker>",
	Short: "Aktiviert einen Drucker",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.EnablePrinter(ctx, token, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Drucker %s\\%s aktiviert\n", args[0], args[1])
		return nil
	},
}

var printerDisableCmd = &cobra.Command{
	Use:   "disable <server> <drucker>",
	Short: "Deaktiviert einen Drucker",
	Long: `Deaktiviert einen Drucker, mit --minutes zeitlich begrenzt
(-1 deaktiviert dauerhaft).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.DisablePrinter(ctx, token, args[0], args[1], printerDisableMin); err != nil {
			return err
		}
		fmt.Printf("Drucker %s\\%s deaktiviert\n", args[0], args[1])
		return nil
	},
}

var printerRenameCmd = &cobra.Command{
	Use:   "rename <server> <drucker> <neuer-server> <neuer-name>",
	Short: "Benennt einen Drucker um",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.RenamePrinter(ctx, token, args[0], args[1], args[2], args[3]); err != nil {
			return err
		}
		fmt.Printf("Drucker %s\\%s umbenannt in %s\\%s\n", args[0], args[1], args[2], args[3])
		return nil
	},
}

var printerDeleteCmd = &cobra.Command{
	Use:   "delete <server> <drucker>",
	Short: "Löscht einen Drucker",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.DeletePrinter(ctx, token, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Drucker %s\\%s gelöscht\n", args[0], args[1])
		return nil
	},
}

func init() {
	printerListCmd.Flags().IntVar(&printerOffset, "offset", 0, "Startposition")
	printerListCmd.Flags().IntVar(&printerLimit, "limit", 1000, "Maximale Anzahl")
	printerDisableCmd.Flags().IntVar(&printerDisableMin, "minutes", -1, "Dauer in Minuten (-1: dauerhaft)")

	printerCmd.AddCommand(printerListCmd, printerPropertyCmd, printerCostCmd,
		printerEnableCmd, printerDisableCmd, printerRenameCmd, printerDeleteCmd)
	rootCmd.AddCommand(printerCmd)
}
