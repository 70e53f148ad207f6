// srpgen registers SRP accounts: it derives a fresh salt and verifier from
// a username and password and records them in the account registry. The
// password itself is never written anywhere.
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"

	"github.com/realmforge/srpauth/internal/config"
	"github.com/realmforge/srpauth/internal/logging"
	"github.com/realmforge/srpauth/internal/store"
	"github.com/realmforge/srpauth/pkg/srp"
)

var (
	// version is set by build flags
	version = "dev"
)

func main() {
	configPath := flag.String("config", "/etc/srpauth/config.yaml", "path to configuration file")
	accountsPath := flag.String("accounts", "", "override the account registry path from the config")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("srpgen", version)
		return
	}

	logger := logging.New(logging.LevelInfo, logging.FormatJSON)

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: srpgen [flags] <username> <password>")
		os.Exit(2)
	}

	if err := run(*configPath, *accountsPath, flag.Arg(0), flag.Arg(1), logger); err != nil {
		logger.Error("account registration failed", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}

func run(configPath, accountsPath, username, password string, logger *logging.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger = logging.New(logging.ParseLevel(cfg.Logging.Level), logging.ParseFormat(cfg.Logging.Format))

	params, err := cfg.Params()
	if err != nil {
		return fmt.Errorf("failed to build protocol parameters: %w", err)
	}

	if accountsPath == "" {
		accountsPath = cfg.Accounts.Path
	}
	registry, err := store.Open(accountsPath)
	if err != nil {
		return err
	}

	salt, err := params.GenerateSalt()
	if err != nil {
		return err
	}

	// Key the registry by the normalized identity so lookups agree with
	// the identity a handshake session hashes.
	username = params.NormalizeIdentity(username)
	verifier, err := srp.ComputeVerifier(params, username, password, salt)
	if err != nil {
		return err
	}

	if err := registry.Put(username, salt, verifier); err != nil {
		return err
	}
	if err := registry.Save(); err != nil {
		return err
	}

	logger.Info("account registered", map[string]any{
		"username": username,
		"group":    params.Group().Name,
		"hash":     params.HashName(),
		"accounts": registry.Count(),
	})

	// The salt is public protocol material; print it so the operator can
	// seed a client-side configuration.
	fmt.Println("salt:", base64.StdEncoding.EncodeToString(salt))

	return nil
}
