package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Verwaltet gemeinsame Konten",
	Long: `Verwaltet gemeinsame Konten (Shared Accounts) auf dem PaperCut
Application Server: anlegen, löschen, Guthaben und Eigenschaften.`,
}

var (
	accountComment    string
	accountOffset     int
	accountLimit      int
	accountIgnoreMode bool
)

var accountExistsCmd = &cobra.Command{
	Use:   "exists <konto>",
	Short: "Prüft, ob ein Konto existiert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		exists, err := client.IsSharedAccountExists(ctx, token, args[0])
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"account": args[0], "exists": exists}); done {
			return err
		}
		if exists {
			fmt.Printf("Konto %q existiert\n", args[0])
		} else {
			fmt.Printf("Konto %q existiert nicht\n", args[0])
		}
		return nil
	},
}

var accountAddCmd = &cobra.Command{
	Use:   "add <konto>",
	Short: "Legt ein gemeinsames Konto an",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.AddNewSharedAccount(ctx, token, args[0]); err != nil {
			return err
		}
		fmt.Printf("Konto %q angelegt\n", args[0])
		return nil
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <konto>",
	Short: "Löscht ein gemeinsames Konto",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.DeleteExistingSharedAccount(ctx, token, args[0]); err != nil {
			return err
		}
		fmt.Printf("Konto %q gelöscht\n", args[0])
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listet gemeinsame Konten auf",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		accounts, err := client.ListSharedAccounts(ctx, token, accountOffset, accountLimit)
		if err != nil {
			return err
		}
		if done, err := printResult(accounts); done {
			return err
		}
		for _, a := range accounts {
			fmt.Println(a)
		}
		return nil
	},
}

var accountUserListCmd = &cobra.Command{
	Use:   "user-list <benutzer>",
	Short: "Listet die Konten eines Benutzers auf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		accounts, err := client.ListUserSharedAccounts(ctx, token, args[0], accountOffset, accountLimit, accountIgnoreMode)
		if err != nil {
			return err
		}
		if done, err := printResult(accounts); done {
			return err
		}
		for _, a := range accounts {
			fmt.Println(a)
		}
		return nil
	},
}

var accountBalanceCmd = &cobra.Command{
	Use:   "balance <konto>",
	Short: "Zeigt das Guthaben eines Kontos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		balance, err := client.GetSharedAccountAccountBalance(ctx, token, args[0])
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"account": args[0], "balance": balance}); done {
			return err
		}
		fmt.Printf("Guthaben von %q: %.2f\n", args[0], balance)
		return nil
	},
}

var accountAdjustCmd = &cobra.Command{
	Use:   "adjust <konto> <betrag>",
	Short: "Bucht einen Betrag auf das Kontoguthaben",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("ungültiger Betrag %q: %w", args[1], err)
		}

		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.AdjustSharedAccountAccountBalance(ctx, token, args[0], amount, accountComment); err != nil {
			return err
		}
		fmt.Printf("Guthaben von %q um %.2f angepasst\n", args[0], amount)
		return nil
	},
}

var accountSetBalanceCmd = &cobra.Command{
	Use:   "set-balance <konto> <betrag>",
	Short: "Setzt das Kontoguthaben auf einen festen Betrag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("ungültiger Betrag %q: %w", args[1], err)
		}

		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.SetSharedAccountAccountBalance(ctx, token, args[0], amount, accountComment); err != nil {
			return err
		}
		fmt.Printf("Guthaben von %q auf %.2f gesetzt\n", args[0], amount)
		return nil
	},
}

var accountPropertyCmd = &cobra.Command{
	Use:   "property <konto> <eigenschaft> [wert]",
	Short: "Liest oder setzt eine Kontoeigenschaft",
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
			if err := client.SetSharedAccountProperty(ctx, token, args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("%s von %q gesetzt\n", args[1], args[0])
			return nil
		}

		value, err := client.GetSharedAccountProperty(ctx, token, args[0], args[1])
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"account": args[0], args[1]: value}); done {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

func init() {
	accountAdjustCmd.Flags().StringVar(&accountComment, "comment", "", "Buchungskommentar")
	accountSetBalanceCmd.Flags().StringVar(&accountComment, "comment", "", "Buchungskommentar")
	accountListCmd.Flags().IntVar(&accountOffset, "offset", 0, "Startposition")
	accountListCmd.Flags().IntVar(&accountLimit, "limit", 1000, "Maximale Anzahl")
	accountUserListCmd.Flags().IntVar(&accountOffset, "offset", 0, "Startposition")
	accountUserListCmd.Flags().IntVar(&accountLimit, "limit", 1000, "Maximale Anzahl")
	accountUserListCmd.Flags().BoolVar(&accountIgnoreMode, "ignore-account-mode", false, "Kontomodus ignorieren")

	accountCmd.AddCommand(accountExistsCmd, accountAddCmd, accountDeleteCmd,
		accountListCmd, accountUserListCmd, accountBalanceCmd,
		accountAdjustCmd, accountSetBalanceCmd, accountPropertyCmd)
	rootCmd.AddCommand(accountCmd)
}
