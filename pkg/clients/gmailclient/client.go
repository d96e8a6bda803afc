package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jakechorley/eeep-admissions/internal/config"
	"github.com/jakechorley/eeep-admissions/pkg/utils"
)

// EmailInterval is the minimum gap between two sends, to stay under Gmail rate limits
const EmailInterval = 3 * time.Second

// Client wraps the Gmail API client
type Client struct {
	service *gmail.Service
	ctx     context.Context

	sendMutex    sync.Mutex
	lastSendTime time.Time
}

// NewClient creates a Gmail client reusing a token obtained by the sheets client
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{service: service, ctx: ctx}, nil
}

// SendEmail sends a plain text email.
// Sends are serialized and spaced by EmailInterval.
func (c *Client) SendEmail(to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		if wait := EmailInterval - time.Since(c.lastSendTime); wait > 0 {
			select {
			case <-time.After(wait):
			case <-c.ctx.Done():
				return c.ctx.Err()
			}
		}
	}

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(BuildMessage(to, subject, body)),
	}

	if _, err := c.service.Users.Messages.Send("me", message).Context(c.ctx).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()
	return nil
}

// BuildMessage renders an RFC 2822 message. The subject is Q-encoded since
// list titles carry accented characters.
func BuildMessage(to, subject, body string) []byte {
	return []byte(fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		to, mime.QEncoding.Encode("utf-8", subject), body))
}
