// Command firenotes is a CLI client for the hosted notes service: it signs
// users in against the identity endpoint and reads/writes their notes over
// the document store's REST surface.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lycilph/firenotes/internal/authgw"
	"github.com/lycilph/firenotes/internal/config"
	"github.com/lycilph/firenotes/internal/credstore"
	"github.com/lycilph/firenotes/internal/firestore"
	"github.com/lycilph/firenotes/internal/repository"
	fsrepo "github.com/lycilph/firenotes/internal/repository/firestore"
	"github.com/lycilph/firenotes/internal/session"
	"github.com/lycilph/firenotes/internal/transport"
)

var version = "dev"

// Global flag values.
var (
	flagConfigDir string
	flagDebug     bool
)

// Application wiring, built once by initApp for every subcommand.
var (
	cfg     config.Config
	logger  *zap.Logger
	store   credstore.Store
	sess    *session.State
	gateway *authgw.Client
	notes   repository.NoteRepository
	counter repository.CounterRepository
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "firenotes",
	Short:             "firenotes is a client for the hosted notes service",
	PersistentPreRunE: initApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(countCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the firenotes version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("firenotes", version)
	},
}

// initApp loads configuration and wires the session, stores, and clients.
func initApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	dir := flagConfigDir
	if dir == "" {
		dir = credstore.DefaultDir()
	}

	var err error
	cfg, err = config.Load(dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if flagDebug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
	} else {
		logger = zap.NewNop()
	}

	credsDir := cfg.CredentialsDir
	if credsDir == "" {
		credsDir = dir
	}
	store = credstore.NewFile(credsDir)
	sess = session.New()
	gateway = authgw.NewClient(nil, cfg.IdentityURL, cfg.TokenURL, cfg.APIKey, logger)

	// every document-store request flows through the bearer pipeline
	docsHTTP := &http.Client{
		Transport: transport.NewBearer(store, nil, logger),
		Timeout:   30 * time.Second,
	}
	docs := firestore.NewClient(docsHTTP, cfg.FirestoreURL, cfg.ProjectID, cfg.APIKey, logger)
	notes = fsrepo.NewNoteRepo(docs, sess)
	counter = fsrepo.NewCounterRepo(docs, sess)
	return nil
}

// reqCtx bounds one user action; the core specifies no timeout, so the
// caller-level one lives here.
func reqCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, 30*time.Second)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
