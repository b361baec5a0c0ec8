package interviewdost

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://localhost:8000/api"
	userAgent     = "interviewdost-cli"
)

// Client is a typed HTTP client for the InterviewDost backend API.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(apiURL string, logger *zap.Logger) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	return &Client{
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// SetToken sets the bearer token used for all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates against the backend and stores the returned bearer
// token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthSession, error) {
	auth, err := c.login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	c.token = auth.AccessToken

	return auth, nil
}
