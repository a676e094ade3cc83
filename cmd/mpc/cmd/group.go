package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Verwaltet Gruppen und Admin-Rechte",
}

var (
	groupOffset int
	groupLimit  int
)

var groupAddCmd = &cobra.Command{
	Use:   "add <gruppe>",
	Short: "Legt eine Gruppe an",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.AddNewGroup(ctx, token, args[0]); err != nil {
			return err
		}
		fmt.Printf("Gruppe %q angelegt\n", args[0])
		return nil
	},
}

var groupAddUserCmd = &cobra.Command{
	Use:   "add-user <benutzer> <gruppe>",
	Short: "Fügt einen Benutzer einer Gruppe hinzu",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.AddUserToGroup(ctx, token, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Benutzer %q zu Gruppe %q hinzugefügt\n", args[0], args[1])
		return nil
	},
}

var groupRemoveUserCmd = &cobra.Command{
	Use:   "remove-user <benutzer> <gruppe>",
	Short: "Entfernt einen Benutzer aus einer Gruppe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.RemoveUserFromGroup(ctx, token, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Benutzer %q aus Gruppe %q entfernt\n", args[0], args[1])
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listet Gruppen auf",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		groups, err := client.ListUserGroups(ctx, token, groupOffset, groupLimit)
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

var groupMembersCmd = &cobra.Command{
	Use:   "members <gruppe>",
	Short: "Listet die Mitglieder einer Gruppe auf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		members, err := client.GetGroupMembers(ctx, token, args[0], groupOffset, groupLimit)
		if err != nil {
			return err
		}
		if done, err := printResult(members); done {
			return err
		}
		for _, m := range members {
			fmt.Println(m)
		}
		return nil
	},
}

var groupSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Stößt die Gruppensynchronisation an",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.PerformGroupSync(ctx, token); err != nil {
			return err
		}
		fmt.Println("Gruppensynchronisation gestartet")
		return nil
	},
}

var groupGrantAdminCmd = &cobra.Command{
	Use:   "grant-admin <gruppe>",
	Short: "Gibt einer Gruppe Admin-Zugriff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, token, err := clientSetup()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := commandContext(cfg)
		defer cancel()

		if err := client.AddAdminAccessGroup(ctx, token, args[0]); err != nil {
			return err
		}
		fmt.Printf("Admin-Zugriff für Gruppe %q erteilt\n", args[0])
		return nil
	},
}

func init() {
	groupListCmd.Flags().IntVar(&groupOffset, "offset", 0, "Startposition")
	groupListCmd.Flags().IntVar(&groupLimit, "limit", 1000, "Maximale Anzahl")
	groupMembersCmd.Flags().IntVar(&groupOffset, "offset", 0, "Startposition")
	groupMembersCmd.Flags().IntVar(&groupLimit, "limit", 1000, "Maximale Anzahl")

	groupCmd.AddCommand(groupAddCmd, groupAddUserCmd, groupRemoveUserCmd,
		groupListCmd, groupMembersCmd, groupSyncCmd, groupGrantAdminCmd)
	rootCmd.AddCommand(groupCmd)
}
