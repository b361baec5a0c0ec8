package interviewdost

import (
	"context"
	"fmt"
)

type User struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type AuthSession struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) login(ctx context.Context, email, password string) (*AuthSession, error) {
	url := fmt.Sprintf("%s/auth/login", c.APIURL)

	var auth AuthSession
	if err := c.postJSON(ctx, url, &loginRequest{Email: email, Password: password}, &auth); err != nil {
		return nil, err
	}

	return &auth, nil
}
