package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/eeep-admissions/internal/config"
)

const (
	AuthPort     = 3000
	authTimeout  = 5 * time.Minute
	callbackPath = "/oauth/callback"
	tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

	// TokenDirName is the token cache directory, relative to the home directory
	TokenDirName   = ".eeep-admissions/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
)

// OAuth scopes requested for the sheets, forms and gmail clients
const (
	// ScopeSheets grants read access to the response sheet and write access to the result spreadsheet
	ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"
	// Reading a form's responses also needs its questions to map answers to columns
	ScopeFormsBody      = "https://www.googleapis.com/auth/forms.body.readonly"
	ScopeFormsResponses = "https://www.googleapis.com/auth/forms.responses.readonly"
	ScopeGmailSend      = "https://www.googleapis.com/auth/gmail.send"
)

// RequiredScopes lists every scope a usable token must carry
func RequiredScopes() []string {
	return []string{ScopeSheets, ScopeFormsBody, ScopeFormsResponses, ScopeGmailSend}
}

// Tokens already obtained in this process, by environment
var (
	sessionTokens   = make(map[string]*oauth2.Token)
	sessionTokensMu sync.Mutex
)

// GetOAuthConfig creates an OAuth2 config from the OAuth client configuration
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	credentials, err := oauthCfg.CredentialsJSON()
	if err != nil {
		return nil, err
	}

	googleConfig, err := google.ConfigFromJSON(credentials, RequiredScopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)
	return googleConfig, nil
}

// TokenStore persists one OAuth token per environment
type TokenStore struct {
	Dir string
	Env string
}

// NewTokenStore returns the store under the user's home directory
func NewTokenStore(env string) (*TokenStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &TokenStore{Dir: filepath.Join(homeDir, TokenDirName), Env: env}, nil
}

// Path is the token file of the store's environment
func (s *TokenStore) Path() string {
	env := s.Env
	if env == "" {
		env = "default"
	}
	return filepath.Join(s.Dir, "token-"+env+".json")
}

// Load returns the saved token, or nil when none was saved yet
func (s *TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// Save writes the token readable by the owner only
func (s *TokenStore) Save(token *oauth2.Token) error {
	if err := os.MkdirAll(s.Dir, tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.Path(), data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Delete removes the saved token; a missing file is not an error
func (s *TokenStore) Delete() error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// MissingScopes returns the required scopes absent from a space-separated grant
func MissingScopes(granted string) []string {
	grantedScopes := strings.Fields(granted)
	var missing []string
	for _, required := range RequiredScopes() {
		if !slices.Contains(grantedScopes, required) {
			missing = append(missing, required)
		}
	}
	return missing
}

// checkTokenScopes asks Google's tokeninfo endpoint which scopes the token carries
func checkTokenScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var info struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if missing := MissingScopes(info.Scope); len(missing) > 0 {
		return fmt.Errorf("token is missing required scopes: %v", missing)
	}
	return nil
}

// GetTokenWithFlow returns a token for env: from this session, from disk
// (refreshing it when expired), or by running the browser consent flow.
// Only one flow runs at a time.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, env string, logger *zap.Logger) (*oauth2.Token, error) {
	sessionTokensMu.Lock()
	defer sessionTokensMu.Unlock()

	if token := sessionTokens[env]; token != nil && token.Valid() {
		return token, nil
	}

	store, err := NewTokenStore(env)
	if err != nil {
		return nil, err
	}

	if token := savedToken(ctx, oauthConfig, store, logger); token != nil {
		sessionTokens[env] = token
		return token, nil
	}

	logger.Info("No valid token found, starting OAuth flow")
	token, err := authorize(ctx, oauthConfig)
	if err != nil {
		return nil, err
	}

	if err := checkTokenScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if err := store.Save(token); err != nil {
		logger.Warn("Failed to save token", zap.String("path", store.Path()), zap.Error(err))
	}

	sessionTokens[env] = token
	return token, nil
}

// savedToken returns the stored token when it is usable, refreshing it if needed.
// A stored token lacking a scope is deleted so the flow asks for consent again.
func savedToken(ctx context.Context, oauthConfig *oauth2.Config, store *TokenStore, logger *zap.Logger) *oauth2.Token {
	token, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load saved token", zap.Error(err))
		return nil
	}
	if token == nil {
		return nil
	}

	refreshed := false
	if !token.Valid() {
		if token.RefreshToken == "" {
			return nil
		}
		fresh, err := oauthConfig.TokenSource(ctx, token).Token()
		if err != nil {
			logger.Warn("Failed to refresh saved token", zap.Error(err))
			return nil
		}
		token, refreshed = fresh, true
	}

	if err := checkTokenScopes(ctx, token); err != nil {
		logger.Warn("Saved token cannot be used, starting new OAuth flow", zap.Error(err))
		_ = store.Delete()
		return nil
	}

	if refreshed {
		logger.Debug("Token refreshed")
		if err := store.Save(token); err != nil {
			logger.Warn("Failed to save refreshed token", zap.Error(err))
		}
	}
	return token
}

// authorize prints the consent URL and exchanges the code received on the local callback
func authorize(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	state := uuid.NewString()
	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "\nAbra este endereço para autorizar o acesso às planilhas e formulários:\n%s\n\n", authURL)

	code, err := listenForAuthCallback(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

const callbackPage = `<html>
<head><meta charset="utf-8"><title>Autorização concluída</title></head>
<body>
<h1>Autorização concluída!</h1>
<p>Você já pode fechar esta janela e voltar ao terminal.</p>
</body>
</html>`

// callbackHandler delivers the authorization code of a request carrying the expected state
func callbackHandler(state string, codes chan<- string, errs chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "Estado inválido", http.StatusBadRequest)
			trySend(errs, fmt.Errorf("authorization callback with unexpected state"))
			return
		}
		code := query.Get("code")
		if code == "" {
			http.Error(w, "Autorização negada", http.StatusBadRequest)
			trySend(errs, fmt.Errorf("no authorization code received: %s", query.Get("error")))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, callbackPage)
		trySend(codes, code)
	}
}

// trySend drops the value when nobody is waiting any more
func trySend[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}

// listenForAuthCallback serves the redirect URL until a code arrives or the flow times out
func listenForAuthCallback(ctx context.Context, state string) (string, error) {
	codes := make(chan string, 1)
	errs := make(chan error, 2)

	mux := http.NewServeMux()
	mux.Handle(callbackPath, callbackHandler(state, codes, errs))
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", AuthPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			trySend(errs, fmt.Errorf("server error: %w", err))
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error
	select {
	case code = <-codes:
	case authErr = <-errs:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

	return code, authErr
}
