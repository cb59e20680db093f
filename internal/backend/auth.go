package backend

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// AuthResult is what the auth endpoints hand back on success. Login and
// VerifyOTP return a token; Signup returns only the new user's id.
type AuthResult struct {
	Token  string
	UserID string
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	UserID      json.Number `json:"user_id"`
}

// Login exchanges credentials for a session token. The endpoint is
// form-encoded and calls the email field "username".
func (c *Client) Login(email, password string) (AuthResult, error) {
	values := url.Values{}
	values.Set("username", email)
	values.Set("password", password)
	var resp tokenResponse
	if err := c.doForm("/api/auth/login", values, &resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: resp.AccessToken, UserID: resp.UserID.String()}, nil
}

// Signup registers a new account. The backend returns the created user id
// but no token; the caller must log in separately.
func (c *Client) Signup(email, password string) (AuthResult, error) {
	payload := map[string]string{"username": email, "email": email, "password": password}
	var resp struct {
		ID json.Number `json:"id"`
	}
	if err := c.doJSON(http.MethodPost, "/api/auth/signup", "", payload, &resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{UserID: resp.ID.String()}, nil
}

// RequestOTP asks the backend to send a one-time passcode to email.
func (c *Client) RequestOTP(email string) (string, error) {
	payload := map[string]string{"email": email}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(http.MethodPost, "/api/auth/request-otp", "", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// VerifyOTP trades a passcode for a session token.
func (c *Client) VerifyOTP(email, otp string) (AuthResult, error) {
	payload := map[string]string{"email": email, "otp": otp}
	var resp tokenResponse
	if err := c.doJSON(http.MethodPost, "/api/auth/verify-otp", "", payload, &resp); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: resp.AccessToken, UserID: resp.UserID.String()}, nil
}

// ResetPassword sets a new password using a previously requested passcode.
func (c *Client) ResetPassword(email, otp, newPassword string) (string, error) {
	payload := map[string]string{"email": email, "otp": otp, "new_password": newPassword}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(http.MethodPost, "/api/auth/reset-password", "", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
