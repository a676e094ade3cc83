package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/msto63/mPC/pkg/papercut"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Verwaltet PaperCut-Benutzer",
	Long: `Verwaltet Benutzer auf dem PaperCut Application Server:
anlegen, löschen, Guthaben, Eigenschaften und Gruppenzugehörigkeit.`,
}

var (
	userInternal bool
	userPassword string
	userFullName string
	userEmail    string
	userCardID   string
	userPIN      string
	userRedact   bool
	userAccount  string
	userComment  string
	userOffset   int
	userLimit    int
)

var userExistsCmd = &cobra.Command{
	Use:   "exists <benutzer>",
	Short: "Prüft, ob ein Benutzer existiert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		exists, err := client.IsUserExists(ctx, token, args[0])
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"user": args[0], "exists": exists}); done {
			return err
		}
		if exists {
			fmt.Printf("Benutzer %q existiert\n", args[0])
		} else {
			fmt.Printf("Benutzer %q existiert nicht\n", args[0])
		}
		return nil
	},
}

var userAddCmd = &cobra.Command{
	Use:   "add <benutzer>",
	Short: "Legt einen Benutzer an",
	Long: `Legt einen Benutzer an. Mit --internal wird ein interner Benutzer
mit Passwort und optionalen Stammdaten erzeugt, sonst ein Verzeichnis-
Benutzer ohne weitere Attribute.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if userInternal {
			if userPassword == "" {
				return fmt.Errorf("--password wird für interne Benutzer benötigt")
			}
			details := &papercut.InternalUserDetails{
				FullName: userFullName,
				Email:    userEmail,
				CardID:   userCardID,
				PIN:      userPIN,
			}
			if err := client.AddNewInternalUser(ctx, token, args[0], userPassword, details); err != nil {
				return err
			}
		} else {
			if err := client.AddNewUser(ctx, token, args[0]); err != nil {
				return err
			}
		}
		fmt.Printf("Benutzer %q angelegt\n", args[0])
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <benutzer>",
	Short: "Löscht einen Benutzer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.DeleteExistingUser(ctx, token, args[0], userRedact); err != nil {
			return err
		}
		fmt.Printf("Benutzer %q gelöscht\n", args[0])
		return nil
	},
}

var userRenameCmd = &cobra.Command{
	Use:   "rename <benutzer> <neuer-name>",
	Short: "Benennt einen Benutzer um",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.RenameUserAccount(ctx, token, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Benutzer %q umbenannt in %q\n", args[0], args[1])
		return nil
	},
}

var userTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Zeigt die Gesamtzahl der Benutzer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		total, err := client.GetTotalUsers(ctx, token)
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"total_users": total}); done {
			return err
		}
		fmt.Printf("Benutzer gesamt: %d\n", total)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listet Benutzer auf",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		users, err := client.ListUserAccounts(ctx, token, userOffset, userLimit)
		if err != nil {
			return err
		}
		if done, err := printResult(users); done {
			return err
		}
		for _, u := range users {
			fmt.Println(u)
		}
		return nil
	},
}

var userBalanceCmd = &cobra.Command{
	Use:   "balance <benutzer>",
	Short: "Zeigt das Guthaben eines Benutzers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		balance, err := client.GetUserAccountBalance(ctx, token, args[0], userAccount)
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"user": args[0], "balance": balance}); done {
			return err
		}
		fmt.Printf("Guthaben von %q: %.2f\n", args[0], balance)
		return nil
	},
}

var userAdjustCmd = &cobra.Command{
	Use:   "adjust <benutzer> <betrag>",
	Short: "Bucht einen Betrag auf das Guthaben",
	Long: `Bucht einen Betrag auf das Guthaben eines Benutzers. Der Betrag
kann negativ sein (Abbuchung).`,
	Args: cobra.ExactArgs(2),
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

		if err := client.AdjustUserAccountBalance(ctx, token, args[0], amount, userComment, userAccount); err != nil {
			return err
		}
		fmt.Printf("Guthaben von %q um %.2f angepasst\n", args[0], amount)
		return nil
	},
}

var userSetBalanceCmd = &cobra.Command{
	Use:   "set-balance <benutzer> <betrag>",
	Short: "Setzt das Guthaben auf einen festen Betrag",
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

		if err := client.SetUserAccountBalance(ctx, token, args[0], amount, userComment, userAccount); err != nil {
			return err
		}
		fmt.Printf("Guthaben von %q auf %.2f gesetzt\n", args[0], amount)
		return nil
	},
}

var userPropertyCmd = &cobra.Command{
	Use:   "property <benutzer> <eigenschaft> [wert]",
	Short: "Liest oder setzt eine Benutzereigenschaft",
	Long: `Liest eine Benutzereigenschaft (zwei Argumente) oder setzt sie
(drei Argumente). Gängige Eigenschaften: full-name, email, card-number,
card-pin, department, office, disabled-print.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if len(args) == 3 {
			if err := client.SetUserProperty(ctx, token, args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("%s von %q gesetzt\n", args[1], args[0])
			return nil
		}

		value, err := client.GetUserProperty(ctx, token, args[0], args[1])
		if err != nil {
			return err
		}
		if done, err := printResult(map[string]interface{}{"user": args[0], args[1]: value}); done {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var userGroupsCmd = &cobra.Command{
	Use:   "groups <benutzer>",
	Short: "Zeigt die Gruppen eines Benutzers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		groups, err := client.GetUserGroups(ctx, token, args[0])
		if err != nil {
			return err
		}
		if done, err := printResult(groups); done {
			return err
		}
		for _, g := range groups {
			fmt.Println(g)
		}
		return nil
	},
}

var userGrantAdminCmd = &cobra.Command{
	Use:   "grant-admin <benutzer>",
	Short: "Gibt einem Benutzer Admin-Zugriff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.AddAdminAccessUser(ctx, token, args[0]); err != nil {
			return err
		}
		fmt.Printf("Admin-Zugriff für %q erteilt\n", args[0])
		return nil
	},
}

func init() {
	userAddCmd.Flags().BoolVar(&userInternal, "internal", false, "Internen Benutzer anlegen")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "Passwort (nur intern)")
	userAddCmd.Flags().StringVar(&userFullName, "full-name", "", "Vollständiger Name")
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "E-Mail-Adresse")
	userAddCmd.Flags().StringVar(&userCardID, "card-id", "", "Karten-ID")
	userAddCmd.Flags().StringVar(&userPIN, "pin", "", "Karten-PIN")

	userDeleteCmd.Flags().BoolVar(&userRedact, "redact", false, "Personendaten in Protokollen schwärzen")

	userBalanceCmd.Flags().StringVar(&userAccount, "account", "", "Persönliches Unterkonto (default: Standardkonto)")
	userAdjustCmd.Flags().StringVar(&userAccount, "account", "", "Persönliches Unterkonto (default: Standardkonto)")
	userAdjustCmd.Flags().StringVar(&userComment, "comment", "", "Buchungskommentar")
	userSetBalanceCmd.Flags().StringVar(&userAccount, "account", "", "Persönliches Unterkonto (default: Standardkonto)")
	userSetBalanceCmd.Flags().StringVar(&userComment, "comment", "", "Buchungskommentar")

	userListCmd.Flags().IntVar(&userOffset, "offset", 0, "Startposition")
	userListCmd.Flags().IntVar(&userLimit, "limit", 1000, "Maximale Anzahl")

	userCmd.AddCommand(userExistsCmd, userAddCmd, userDeleteCmd, userRenameCmd,
		userTotalCmd, userListCmd, userBalanceCmd, userAdjustCmd,
		userSetBalanceCmd, userPropertyCmd, userGroupsCmd, userGrantAdminCmd)
	rootCmd.AddCommand(userCmd)
}
