package cli

import (
	"fmt"

	"github.com/oan-pulse/pulse/internal/api"
	"github.com/oan-pulse/pulse/internal/config"
	"github.com/oan-pulse/pulse/internal/session"
)

// bootstrap wires config, the stored session, and the API client. A
// 401/403 from the backend clears the session file so the next command
// prompts for login again.
func bootstrap() (*api.Client, *session.Session, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	sess, err := session.LoadDefault()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load session: %w", err)
	}

	client := api.New(cfg.APIBaseURL, sess, api.WithAuthErrorHandler(func() {
		_ = sess.Clear()
	}))

	return client, sess, cfg, nil
}

func requireLogin(sess *session.Session) error {
	if sess.State() != session.Authenticated {
		return fmt.Errorf("not logged in. Run: pulse auth login")
	}
	return nil
}
