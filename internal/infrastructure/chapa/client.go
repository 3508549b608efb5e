// Package chapa implements the payment gateway port against the Chapa API.
package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/config"
)

// maxTitleLen is Chapa's limit on the checkout customization title.
const maxTitleLen = 16

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg config.ChapaConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// Initialize opens a hosted checkout session and returns its URL.
func (c *Client) Initialize(ctx context.Context, req application.InitializeRequest) (*application.InitializeResponse, error) {
	body := initializeRequest{
		Amount:      req.Amount.String(),
		Currency:    string(req.Currency),
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		TxRef:       req.TxRef,
		CallbackURL: req.CallbackURL,
		ReturnURL:   req.ReturnURL,
	}
	if req.PhoneNumber != nil {
		body.PhoneNumber = *req.PhoneNumber
	}
	if req.Customization != nil {
		title := req.Customization.Title
		if len(title) > maxTitleLen {
			title = title[:maxTitleLen]
		}
		body.Customization = &customization{
			Title:       title,
			Description: req.Customization.Description,
			Logo:        req.Customization.Logo,
		}
	}

	url := fmt.Sprintf("%s/v1/transaction/initialize", c.baseURL)
	raw, err := c.send(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}

	var parsed initializeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}
	if parsed.Data.CheckoutURL == "" {
		return nil, fmt.Errorf("chapa returned no checkout url: %s", parsed.Message)
	}

	return &application.InitializeResponse{
		CheckoutURL: parsed.Data.CheckoutURL,
		RawPayload:  raw,
	}, nil
}

// Verify fetches the authoritative status for a transaction reference.
func (c *Client) Verify(ctx context.Context, transactionRef string) (*application.VerifyResponse, error) {
	url := fmt.Sprintf("%s/v1/transaction/verify/%s", c.baseURL, transactionRef)
	raw, err := c.send(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var parsed verifyResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &application.VerifyResponse{
		Status:        parsed.Data.Status,
		GatewayRef:    parsed.Data.Reference,
		PaymentMethod: parsed.Data.Method,
		RawPayload:    raw,
	}, nil
}

func (c *Client) send(ctx context.Context, method, url string, reqBody *initializeRequest) ([]byte, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(raw, &errResp); err != nil || errResp.Message == "" {
			return nil, &GatewayError{
				Message:    string(raw),
				StatusCode: resp.StatusCode,
			}
		}
		return nil, &GatewayError{
			Message:    errResp.Message,
			StatusCode: resp.StatusCode,
		}
	}

	return raw, nil
}
