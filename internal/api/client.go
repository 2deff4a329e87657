package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nvarad/finsight/internal/session"
)

// Client talks to the dashboard service. All methods return wrapped errors
// and never panic; callers convert failures into local UI state.
type Client struct {
	base    string
	http    *http.Client
	session *session.Session
	log     *zap.Logger
}

// New builds a client for the given base URL, e.g. "http://localhost:8000/api".
func New(baseURL string, timeout time.Duration, sess *session.Session, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: sess,
		log:     log,
	}
}

type loginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    session.User `json:"user"`
}

// Login authenticates and installs the access token into the session.
func (c *Client) Login(ctx context.Context, username, password string) (session.User, error) {
	body := map[string]string{"username": username, "password": password}
	var out loginResponse
	if err := c.postJSON(ctx, "/auth/login/", body, &out); err != nil {
		return session.User{}, fmt.Errorf("login: %w", err)
	}
	c.session.Init(out.Access, out.User)
	return out.User, nil
}

// Profile fetches the current user.
func (c *Client) Profile(ctx context.Context) (session.User, error) {
	var u session.User
	if err := c.getJSON(ctx, "/auth/profile/", nil, &u); err != nil {
		return session.User{}, fmt.Errorf("profile: %w", err)
	}
	return u, nil
}

// Companies lists the companies visible to the current user.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	var out []Company
	if err := c.getJSON(ctx, "/companies/", nil, &out); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return out, nil
}

// BalanceSheets lists the balance-sheet periods for a company. Ordering is
// the caller's concern (the catalog sorts).
func (c *Client) BalanceSheets(ctx context.Context, companyID int64) ([]BalanceSheetRef, error) {
	q := url.Values{"company": {strconv.FormatInt(companyID, 10)}}
	var out []BalanceSheetRef
	if err := c.getJSON(ctx, "/balance-sheets/", q, &out); err != nil {
		return nil, fmt.Errorf("list balance sheets: %w", err)
	}
	return out, nil
}

// AnalyticsSummary fetches the derived summary for the selected period ids.
// The ids are always enumerated as repeated "ids" params; an empty slice
// produces zero params, which the service reads as "no explicit filter".
func (c *Client) AnalyticsSummary(ctx context.Context, companyID int64, ids []int64) (*AnalyticsSummary, error) {
	q := url.Values{"company": {strconv.FormatInt(companyID, 10)}}
	for _, id := range ids {
		q.Add("ids", strconv.FormatInt(id, 10))
	}
	var out AnalyticsSummary
	if err := c.getJSON(ctx, "/balance-sheets/analytics_summary/", q, &out); err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}
	return &out, nil
}

// ChatHistory returns past exchanges for a company, oldest first.
func (c *Client) ChatHistory(ctx context.Context, companyID int64) ([]ChatMessage, error) {
	q := url.Values{"company": {strconv.FormatInt(companyID, 10)}}
	var out []ChatMessage
	if err := c.getJSON(ctx, "/chat/history/", q, &out); err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	return out, nil
}

// SendChatQuery submits a question scoped to the current selection and
// returns the stored exchange.
func (c *Client) SendChatQuery(ctx context.Context, companyID int64, query string, selectedIDs []int64) (ChatMessage, error) {
	body := map[string]any{
		"company":           companyID,
		"query":             query,
		"balance_sheet_ids": selectedIDs,
	}
	var out ChatMessage
	if err := c.postJSON(ctx, "/chat/query/", body, &out); err != nil {
		return ChatMessage{}, fmt.Errorf("chat query: %w", err)
	}
	return out, nil
}

// UploadBalanceSheet uploads a PDF for extraction. Quarter may be empty for
// annual sheets. The new ref appears in the next catalog load.
func (c *Client) UploadBalanceSheet(ctx context.Context, companyID int64, year int, quarter, path string) (BalanceSheetRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return BalanceSheetRef{}, fmt.Errorf("upload: open %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("pdf_file", filepath.Base(path))
	if err != nil {
		return BalanceSheetRef{}, fmt.Errorf("upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return BalanceSheetRef{}, fmt.Errorf("upload: read %s: %w", path, err)
	}
	_ = mw.WriteField("company_id", strconv.FormatInt(companyID, 10))
	_ = mw.WriteField("year", strconv.Itoa(year))
	if quarter != "" {
		_ = mw.WriteField("quarter", quarter)
	}
	if err := mw.Close(); err != nil {
		return BalanceSheetRef{}, fmt.Errorf("upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/balance-sheets/", &buf)
	if err != nil {
		return BalanceSheetRef{}, fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out BalanceSheetRef
	if err := c.do(req, &out); err != nil {
		return BalanceSheetRef{}, fmt.Errorf("upload: %w", err)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	addr := c.base + path
	if len(q) > 0 {
		addr += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")
	if c.session != nil {
		if tok := c.session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("request done",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, statusError(resp))
	}
	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// DRF list endpoints may paginate; retry against the envelope.
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if envErr := json.Unmarshal(raw, &envelope); envErr == nil && envelope.Results != nil {
			return json.Unmarshal(envelope.Results, out)
		}
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}

// statusError extracts the service's error detail when present.
func statusError(resp *http.Response) string {
	var detail struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&detail); err == nil {
		if detail.Detail != "" {
			return detail.Detail
		}
		if detail.Error != "" {
			return detail.Error
		}
	}
	return resp.Status
}
