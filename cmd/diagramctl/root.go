package main

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"diagram-editor-service/internal/adapters/secondary/backend"
	"diagram-editor-service/internal/adapters/secondary/sqlite"
	"diagram-editor-service/internal/config"
	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/core/services"
)

const sessionFile = "session.db"

// app holds the flags and the wiring shared by every subcommand.
type app struct {
	dataDir    string
	backendURL string
	envFile    string
	jsonOut    bool
	verbose    bool

	cfg      *config.Config
	client   *backend.Client
	sessions *sqlite.SessionRepository
	svc      *services.SessionService
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "diagramctl",
		Short:         "diagramctl manages UML diagrams on the diagram backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", ".diagramctl", "directory holding the local session")
	root.PersistentFlags().StringVar(&a.backendURL, "backend", "", "backend base URL (default: BACKEND_URL)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "env file loaded before the environment")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(newLoginCmd(a))
	root.AddCommand(newLogoutCmd(a))
	root.AddCommand(newWhoamiCmd(a))
	root.AddCommand(newDiagramsCmd(a))
	root.AddCommand(newRenderCmd(a))
	return root
}

func (a *app) open() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.backendURL != "" {
		cfg.Backend.URL = a.backendURL
	}
	a.cfg = cfg

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if a.verbose {
		log.SetLevel(log.DebugLevel)
	}

	a.sessions, err = sqlite.Open(filepath.Join(a.dataDir, sessionFile))
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	a.client = backend.NewClient(&cfg.Backend)
	a.svc = services.NewSessionService(a.client, a.sessions, 0)
	return nil
}

func (a *app) close() error {
	if a.sessions == nil {
		return nil
	}
	err := a.sessions.Close()
	a.sessions = nil
	return err
}

// session restores the local login or explains how to create one.
func (a *app) session(cmd *cobra.Command) (*domain.Session, error) {
	sess, err := a.svc.Restore(cmd.Context(), domain.SessionKey(""))
	if err != nil {
		return nil, fmt.Errorf("not logged in, run diagramctl login: %w", err)
	}
	return sess, nil
}
