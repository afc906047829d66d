package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/chorus/internal/server"
	"github.com/desertthunder/chorus/internal/shared"
)

// AuthLogin runs the full browser sign-in: open the provider page, capture
// the redirect on the loopback server, and complete the code exchange.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: session controller not initialized", shared.ErrServiceUnavailable)
	}

	state, err := r.session.BeginLogin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin sign-in: %w", err)
	}

	srv, err := server.NewCallbackServer(r.config.Auth.RedirectURI, state)
	if err != nil {
		return fmt.Errorf("failed to create callback server: %w", err)
	}
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}
	defer srv.Shutdown(context.Background())

	r.logger.Info("waiting for browser callback", "redirect_uri", r.config.Auth.RedirectURI)
	r.writePlain("Complete the sign-in in your browser...\n")

	timeout := time.Duration(cmd.Int("timeout")) * time.Second
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var result server.CallbackResult
	select {
	case result = <-srv.Result():
	case <-waitCtx.Done():
		return fmt.Errorf("%w: no callback within %s", shared.ErrCallbackTimeout, timeout)
	}

	if result.Error() != nil {
		return fmt.Errorf("%w: %v", shared.ErrCallbackRejected, result.Error())
	}

	if err := r.session.CompleteCallback(ctx, result.Code); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	user := r.session.CurrentUser()
	if user != nil {
		return r.writePlain("✓ Signed in as %s (%s)\n", user.Username, user.Role)
	}
	return r.writePlain("✓ Signed in\n")
}

// AuthLogout signs out. Server-side revocation is best effort; the local
// session is always cleared.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: session controller not initialized", shared.ErrServiceUnavailable)
	}

	r.session.Logout(ctx)
	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami shows the current session state, refreshing the profile from
// the server when signed in.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: session controller not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.session.Restore(ctx); err != nil {
		r.logger.Debug("session restore failed", "error", err)
	}

	user, err := r.session.RefreshCurrentUser(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotSignedIn) {
			return r.writePlain("Not signed in (state: %s)\n", r.session.State())
		}
		// Keep whatever profile the restore produced; a transport error
		// must not read as signed-out.
		if cached := r.session.CurrentUser(); cached != nil {
			r.writePlain("⚠ Could not reach the service: %v\n", err)
			user = cached
		} else {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlain("State: %s\n", r.session.State())
	if user != nil {
		r.writePlain("User: %s <%s>\n", user.Username, user.Email)
		r.writePlain("Role: %s\n", user.Role)
	}
	return nil
}

// AuthImpersonate selects a user id under the impersonation strategy.
func (r *Runner) AuthImpersonate(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: session controller not initialized", shared.ErrServiceUnavailable)
	}

	raw := cmd.StringArg("id")
	if raw == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: user id must be numeric", shared.ErrInvalidArgument)
	}

	if err := r.session.Impersonate(id); err != nil {
		return fmt.Errorf("impersonation unavailable under the %s strategy", r.config.Auth.Strategy)
	}
	return r.writePlain("✓ Acting as user %d\n", id)
}

// AuthClear deselects the impersonated user.
func (r *Runner) AuthClear(ctx context.Context, cmd *cli.Command) error {
	if r.session == nil {
		return fmt.Errorf("%w: session controller not initialized", shared.ErrServiceUnavailable)
	}

	r.session.ClearImpersonation()
	return r.writePlain("✓ Identity cleared\n")
}
