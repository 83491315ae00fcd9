// Package client HTTP-клиент API пункта выдачи.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"pickpoint/internal/domain"
)

const apiPrefix = "/api/v1"

// APIError ответ сервера со статусом 4xx/5xx
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pickpoint api: %d %s", e.Status, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// Intern стажёр вместе с рассчитанной эффективностью
type Intern struct {
	domain.Intern
	Efficiency domain.Efficiency `json:"efficiency"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	r := resty.New().
		SetBaseURL(baseURL + apiPrefix).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: r}
}

// Login обменивает код доступа на токен куратора, токен запоминается в клиенте
func (c *Client) Login(ctx context.Context, code string) error {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/session/curator", map[string]string{"code": code}, &out); err != nil {
		return err
	}
	c.http.SetAuthToken(out.Token)
	return nil
}

func (c *Client) CreateOrder(ctx context.Context, customer, barcode string, items []domain.OrderItem) (*domain.Order, error) {
	body := map[string]any{"customer_name": customer, "barcode": barcode, "items": items}
	var o domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) FindByBarcode(ctx context.Context, barcode string) (*domain.Order, error) {
	var o domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/barcode/"+barcode, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) Issue(ctx context.Context, id, actor string) (*domain.Order, error) {
	var o domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders/"+id+"/issue", map[string]string{"actor": actor}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Return оформляет возврат, helper может быть пустым
func (c *Client) Return(ctx context.Context, id, reason, helper string) (*domain.Order, error) {
	body := map[string]any{"reason": reason}
	if helper != "" {
		body["credit_intern"] = helper
	}
	var o domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders/"+id+"/return", body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	err := c.do(ctx, http.MethodGet, "/orders/stats", nil, &st)
	return st, err
}

func (c *Client) ListInterns(ctx context.Context) ([]Intern, error) {
	var list []Intern
	err := c.do(ctx, http.MethodGet, "/interns", nil, &list)
	return list, err
}

func (c *Client) AddIntern(ctx context.Context, name, surname string) (*Intern, error) {
	var in Intern
	if err := c.do(ctx, http.MethodPost, "/interns", map[string]string{"name": name, "surname": surname}, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	var out struct {
		CuratorBalance decimal.Decimal `json:"curator_balance"`
	}
	err := c.do(ctx, http.MethodGet, "/ledger", nil, &out)
	return out.CuratorBalance, err
}

func (c *Client) WithdrawCurator(ctx context.Context) (decimal.Decimal, error) {
	return c.withdraw(ctx, "/ledger/withdraw")
}

func (c *Client) WithdrawSalary(ctx context.Context, internID string) (decimal.Decimal, error) {
	return c.withdraw(ctx, "/interns/"+internID+"/withdraw")
}

func (c *Client) withdraw(ctx context.Context, path string) (decimal.Decimal, error) {
	var out struct {
		Amount decimal.Decimal `json:"amount"`
	}
	err := c.do(ctx, http.MethodPost, path, nil, &out)
	return out.Amount, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var apiErr errorBody
	req := c.http.R().
		SetContext(ctx).
		SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: apiErr.Error}
	}
	return nil
}
