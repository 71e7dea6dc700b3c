package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"restaurant_pos/config"

	"go.uber.org/zap"
)

type MenuOption struct {
	ID          string `json:"rowId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Menu is an interactive list message with canned reply choices.
type Menu struct {
	Title       string
	Description string
	ButtonText  string
	Footer      string
	Options     []MenuOption
}

type Document struct {
	FileName string
	MimeType string
	Caption  string
	Content  []byte
}

// WhatsApp talks to an Evolution-style gateway instance.
type WhatsApp struct {
	cfg    config.WhatsApp
	client *http.Client
	log    *zap.Logger
}

func NewWhatsApp(cfg config.WhatsApp, client *http.Client, log *zap.Logger) *WhatsApp {
	return &WhatsApp{cfg: cfg, client: client, log: log.With(zap.String("component", "whatsapp"))}
}

func (w *WhatsApp) Enabled() bool { return w.cfg.Enabled() }

func (w *WhatsApp) SendText(ctx context.Context, phone, text string) (Result, error) {
	return w.post(ctx, "sendText", map[string]any{
		"number": phone,
		"text":   text,
	})
}

func (w *WhatsApp) SendMenu(ctx context.Context, phone string, menu Menu) (Result, error) {
	return w.post(ctx, "sendList", map[string]any{
		"number":      phone,
		"title":       menu.Title,
		"description": menu.Description,
		"buttonText":  menu.ButtonText,
		"footerText":  menu.Footer,
		"sections": []map[string]any{
			{"title": menu.Title, "rows": menu.Options},
		},
	})
}

func (w *WhatsApp) SendDocument(ctx context.Context, phone string, doc Document) (Result, error) {
	return w.post(ctx, "sendMedia", map[string]any{
		"number":    phone,
		"mediatype": "document",
		"mimetype":  doc.MimeType,
		"fileName":  doc.FileName,
		"caption":   doc.Caption,
		"media":     base64.StdEncoding.EncodeToString(doc.Content),
	})
}

func (w *WhatsApp) post(ctx context.Context, action string, payload any) (Result, error) {
	if !w.cfg.Enabled() {
		return Skipped("whatsapp not configured"), nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}
	url := fmt.Sprintf("%s/message/%s/%s", w.cfg.APIURL, action, w.cfg.Instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", w.cfg.APIKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("whatsapp %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("whatsapp %s: status %d: %s", action, resp.StatusCode, excerpt)
	}
	w.log.Info("whatsapp message sent", zap.String("action", action))
	return Sent(), nil
}
