package userdirectory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Behyna/saldo-service/pkg/httpclient"
)

const usersEndpoint = "/users/%d"

type User struct {
	ID        int64     `json:"user_id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type response struct {
	Code   string `json:"code"`
	Result User   `json:"result"`
}

type Client interface {
	GetUser(ctx context.Context, userID int64) (User, error)
}

type client struct {
	http   httpclient.HTTPClient
	config Config
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Client {
	return &client{config: cfg, http: httpClient}
}

func (c *client) GetUser(ctx context.Context, userID int64) (User, error) {
	headers := map[string]string{"Accept": "application/json"}
	if c.config.APIKey != "" {
		headers["X-Api-Key"] = c.config.APIKey
	}

	resp, err := c.http.Get(ctx, c.config.BaseURL+fmt.Sprintf(usersEndpoint, userID), headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return User{}, ErrTimeout
		}

		return User{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, MapStatusToError(resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return User{}, fmt.Errorf("decoding error: %w", err)
	}

	return body.Result, nil
}
