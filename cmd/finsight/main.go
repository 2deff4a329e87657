package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nvarad/finsight/internal/api"
	"github.com/nvarad/finsight/internal/config"
	"github.com/nvarad/finsight/internal/logging"
	"github.com/nvarad/finsight/internal/session"
	"github.com/nvarad/finsight/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Path)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logger.Sync()

	sess := &session.Session{}
	defer sess.Teardown()

	client := api.New(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSeconds)*time.Second, sess, logger)

	if err := authenticate(ctx, cfg, client, sess); err != nil {
		log.Fatalf("auth: %v", err)
	}
	logger.Info("session started",
		zap.String("user", sess.User().Username),
		zap.String("server", cfg.Server.BaseURL))

	p := tea.NewProgram(tui.New(ctx, cfg, client, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// authenticate prefers a pre-issued token from the env over username/password
// login, so scripted use never needs credentials in the config file.
func authenticate(ctx context.Context, cfg config.Config, client *api.Client, sess *session.Session) error {
	if token := os.Getenv(cfg.Auth.TokenEnv); token != "" {
		sess.Init(token, session.User{})
		user, err := client.Profile(ctx)
		if err != nil {
			return fmt.Errorf("token from %s rejected: %w", cfg.Auth.TokenEnv, err)
		}
		sess.Init(token, user)
		return nil
	}
	if cfg.Auth.Username == "" {
		return fmt.Errorf("no %s token and no auth.username configured", cfg.Auth.TokenEnv)
	}
	if _, err := client.Login(ctx, cfg.Auth.Username, cfg.Auth.Password); err != nil {
		return err
	}
	return nil
}
