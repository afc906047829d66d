// package server hosts the loopback endpoint that receives the provider's
// authorization redirect
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// CallbackResult contains the outcome of one authorization redirect.
type CallbackResult struct {
	Code string
	err  error
}

func (r *CallbackResult) Error() error {
	return r.err
}

/// CallbackServer listens on the redirect URI's host:port and captures the
// authorization code from the provider's redirect. Exactly one result is
// delivered, then the channel is closed; later hits answer 400.
type CallbackServer struct {
	addr        string
	path        string
	state       string
	resultChan  chan CallbackResult
	once        sync.Once
	mu          sync.Mutex
	callbackHit bool
	httpSrv     *http.Server
}

// NewCallbackServer creates a server for the given redirect URI. When state
// is non-empty the redirect's state parameter must match it (the
// direct-provider flow generates one; the backend-brokered flow does not).
func NewCallbackServer(redirectURI, state string) (*CallbackServer, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI: %w", err)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	s := &CallbackServer{
		addr:       u.Host,
		path:       path,
		state:      state,
		resultChan: make(chan CallbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.Handle(path, s)
	s.httpSrv = &http.Server{Addr: u.Host, Handler: mux}

	return s, nil
}

// Start begins serving in a background goroutine.
func (s *CallbackServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.send(CallbackResult{err: fmt.Errorf("callback server failed: %w", err)})
		}
	}()

	return nil
}

// Shutdown stops the server, waiting briefly for the in-flight response.
func (s *CallbackServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// ServeHTTP handles the provider redirect.
//
// Validates the state parameter when one is expected, extracts the
// authorization code, and sends the result through the result channel.
func (s *CallbackServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.callbackHit {
		s.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	s.callbackHit = true
	s.mu.Unlock()

	if s.state != "" && r.URL.Query().Get("state") != s.state {
		err := fmt.Errorf("invalid state parameter")
		s.send(CallbackResult{err: err})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		err := fmt.Errorf("authorization failed: %s - %s", errParam, errDesc)
		s.send(CallbackResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	s.send(CallbackResult{Code: code})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Sign-in Complete</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1b1b1f; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Sign-in Complete</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// send delivers the result through the channel (only once).
func (s *CallbackServer) send(result CallbackResult) {
	s.once.Do(func() {
		s.resultChan <- result
		close(s.resultChan)
	})
}

// Result returns the result channel for receiving callback completion.
//
// The channel receives exactly one result and is then closed.
func (s *CallbackServer) Result() <-chan CallbackResult {
	return s.resultChan
}
