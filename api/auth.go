package api

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Login authenticates and stores the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string, remember bool) (*Session, error) {
	var session Session
	req := LoginRequest{Email: email, Password: password, RememberMe: remember}
	if err := c.postJSON(ctx, "/api/v1/auth/login", req, &session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("login: empty access token")
	}

	if claims, err := TokenClaims(session.AccessToken); err == nil {
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Time
		}
		if session.User.Email == "" {
			session.User.Email = claims.Subject
		}
	}

	c.SetToken(session.AccessToken)
	return &session, nil
}

// Logout forgets the client token
func (c *Client) Logout() {
	c.SetToken("")
}

// TokenClaims reads the registered claims of a JWT access token without
// verifying its signature.
func TokenClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}
