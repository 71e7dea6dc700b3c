package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

var ErrFeeUnavailable = errors.New("delivery fee unavailable")

// FeeQuote is the webhook's answer for one origin/destination pair.
type FeeQuote struct {
	Fee        decimal.Decimal
	DistanceKm float64
}

type feeResponse struct {
	Success    *bool            `json:"success"`
	Fee        *decimal.Decimal `json:"fee"`
	Valor      *decimal.Decimal `json:"valor"`
	DistanceKm *float64         `json:"distance_km"`
	Distance   *float64         `json:"distance"`
	Error      string           `json:"error"`
}

// DeliveryFeeClient asks an external webhook to price a delivery by CEP.
type DeliveryFeeClient struct {
	url    string
	client *http.Client
}

func NewDeliveryFeeClient(url string, client *http.Client) *DeliveryFeeClient {
	return &DeliveryFeeClient{url: url, client: client}
}

// Quote returns ErrFeeUnavailable (wrapped) whenever no usable fee came back.
func (d *DeliveryFeeClient) Quote(ctx context.Context, cepOrigem, cepDestino string) (FeeQuote, error) {
	if d.url == "" {
		return FeeQuote{}, fmt.Errorf("%w: webhook not configured", ErrFeeUnavailable)
	}

	body, err := json.Marshal(map[string]string{
		"cep_origem":  cepOrigem,
		"cep_destino": cepDestino,
	})
	if err != nil {
		return FeeQuote{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return FeeQuote{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return FeeQuote{}, fmt.Errorf("%w: %v", ErrFeeUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return FeeQuote{}, fmt.Errorf("%w: %v", ErrFeeUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		return FeeQuote{}, fmt.Errorf("%w: status %d", ErrFeeUnavailable, resp.StatusCode)
	}

	var out feeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return FeeQuote{}, fmt.Errorf("%w: decode: %v", ErrFeeUnavailable, err)
	}
	if out.Success != nil && !*out.Success {
		return FeeQuote{}, fmt.Errorf("%w: %s", ErrFeeUnavailable, out.Error)
	}

	fee := out.Fee
	if fee == nil {
		fee = out.Valor
	}
	if fee == nil || fee.IsNegative() {
		return FeeQuote{}, fmt.Errorf("%w: no fee in response", ErrFeeUnavailable)
	}

	quote := FeeQuote{Fee: *fee}
	switch {
	case out.DistanceKm != nil:
		quote.DistanceKm = *out.DistanceKm
	case out.Distance != nil:
		quote.DistanceKm = *out.Distance
	}
	return quote, nil
}
