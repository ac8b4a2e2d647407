package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/learndash/internal/audit"
	"github.com/ziadkadry99/learndash/internal/config"
	"github.com/ziadkadry99/learndash/internal/dashboard"
	"github.com/ziadkadry99/learndash/internal/forms"
	"github.com/ziadkadry99/learndash/internal/lessons"
	"github.com/ziadkadry99/learndash/internal/server"
	"github.com/ziadkadry99/learndash/internal/session"
)

// sweepInterval is how often idle sessions are removed.
const sweepInterval = 5 * time.Minute

// pruneInterval is how often expired audit entries are removed.
const pruneInterval = time.Hour

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the learning dashboard web server",
	Long:  `Starts the learndash HTTP server: the tutorial pages, their JSON API, the /ws/events channel and the audit trail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		sessions, closeSessions, err := openSessionBackend(ctx, cfg, database)
		if err != nil {
			return err
		}
		defer closeSessions()

		library, index, err := loadLessons(ctx)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, database)

		auditStore := audit.NewStore(database)
		if err := registerAllRoutes(srv, cfg, sessions, auditStore, library, index); err != nil {
			return err
		}

		if e, ok := sessions.(session.Expirer); ok && cfg.Session.TTLMinutes > 0 {
			go session.Sweep(ctx, e, cfg.Session.TTL(), sweepInterval)
		}
		if cfg.Audit.RetentionDays > 0 {
			go audit.RunRetention(ctx, auditStore, cfg.Audit.Retention(), pruneInterval)
		}

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("server: shutdown: %v", err)
			}
		}()

		fmt.Fprintf(os.Stderr, "learndash server %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Sessions: %s\n", cfg.Session.Backend)
		fmt.Fprintf(os.Stderr, "  Sections indexed: %d\n", index.Count())

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires the feature packages onto the server router.
func registerAllRoutes(srv *server.Server, cfg *config.Config, sessions session.Backend, auditStore *audit.Store, library *lessons.Library, index *lessons.Index) error {
	r := srv.Router()
	database := srv.Database()

	// Dashboard, with the per-session audit trail under /api/audit.
	dash, err := dashboard.New(dashboard.Deps{
		Config:   cfg,
		Library:  library,
		Index:    index,
		Sessions: sessions,
		Summer:   newSummer(cfg),
		Contacts: forms.NewStore(database),
		Audit:    auditStore,
		Version:  Version,
	})
	if err != nil {
		return fmt.Errorf("creating dashboard: %w", err)
	}
	dash.RegisterRoutes(r)
	return nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
