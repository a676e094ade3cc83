package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msto63/mPC/pkg/core/config"
	"github.com/msto63/mPC/pkg/core/logging"
	"github.com/msto63/mPC/pkg/papercut"
)

var (
	cfgFile    string
	flagServer string
	flagPort   int
	flagSSL    bool
	flagToken  string
	verbose    bool
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "mpc",
	Short: "meinDRUCKCENTER - PaperCut Administration & Deployment",
	Long: `meinDRUCKCENTER verwaltet einen PaperCut Application Server über
dessen Web-Services-API und automatisiert das Ausrollen des
Mobility-Print-Clients auf Windows-Arbeitsplätzen.

Befehle:
  user     - Benutzer verwalten (anlegen, löschen, Guthaben)
  group    - Gruppen und Admin-Rechte verwalten
  account  - Gemeinsame Konten verwalten
  printer  - Drucker verwalten
  server   - Server-Aufgaben (Backup, Task-Status)
  deploy   - Mobility-Print-Client unbeaufsichtigt ausrollen
  history  - Deployment-Verlauf anzeigen
  health   - Erreichbarkeit des Servers prüfen`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/mpc.toml)")
	pf.StringVar(&flagServer, "server", "", "PaperCut Application Server (überschreibt Config)")
	pf.IntVar(&flagPort, "port", 0, "Web-Services-Port (überschreibt Config)")
	pf.BoolVar(&flagSSL, "ssl", false, "HTTPS für die Server-Verbindung verwenden")
	pf.StringVar(&flagToken, "token", "", "Auth-Token (alternativ: MPC_AUTH_TOKEN)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
	pf.StringVarP(&outputFmt, "output", "o", "text", "Ausgabeformat: text oder yaml")
}

// loadConfig resolves the effective configuration: file (explicit or
// discovered), then persistent flag overrides on top.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.Discover()
	}
	if err != nil {
		return nil, err
	}

	if flagServer != "" {
		cfg.Server.Host = flagServer
	}
	if flagPort != 0 {
		cfg.Server.Port = flagPort
	}
	if rootCmd.PersistentFlags().Changed("ssl") {
		cfg.Server.UseTLS = flagSSL
		// Keep the port convention in sync unless the user pinned one
		if flagSSL && flagPort == 0 && cfg.Server.Port == 9191 {
			cfg.Server.Port = 9192
		}
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewWithConfig(logging.Config{
		Level:  logging.ParseLevel(cfg.General.LogLevel),
		Format: logging.ParseFormat(cfg.General.LogFormat),
		Output: os.Stderr,
		Name:   "mpc",
	})
}

func newClient(cfg *config.Config) *papercut.Client {
	return papercut.NewClient(papercut.Config{
		Host:    cfg.Server.Host,
		Port:    cfg.Server.Port,
		UseTLS:  cfg.Server.UseTLS,
		Timeout: cfg.Server.Timeout.Duration,
		Logger:  newLogger(cfg).WithName("papercut"),
	})
}

// authToken resolves the web services token: flag, then environment,
// then config file.
func authToken(cfg *config.Config) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if t := os.Getenv("MPC_AUTH_TOKEN"); t != "" {
		return t, nil
	}
	if cfg.Auth.Token != "" {
		return cfg.Auth.Token, nil
	}
	return "", fmt.Errorf("kein Auth-Token gesetzt (--token, MPC_AUTH_TOKEN oder [auth] in der Config)")
}

// clientSetup is the shared preamble of all server-command subcommands
func clientSetup() (*config.Config, *papercut.Client, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, "", err
	}
	token, err := authToken(cfg)
	if err != nil {
		return nil, nil, "", err
	}
	return cfg, newClient(cfg), token, nil
}

func commandContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Server.Timeout.Duration+5*time.Second)
}

// printResult prints v as YAML when --output yaml is set and returns
// true; text rendering stays with the caller otherwise.
func printResult(v interface{}) (bool, error) {
	if outputFmt != "yaml" {
		return false, nil
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return true, fmt.Errorf("YAML-Ausgabe fehlgeschlagen: %w", err)
	}
	fmt.Print(string(out))
	return true, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
