// Package storeapi is the typed client for the external commerce backend.
// Every call is authenticated with the caller's bearer token and scoped by
// the caller's context, so tearing down the owning request aborts the
// in-flight upstream call.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "github.com/a1k2f3/sellercenter-buybot/internal/errors"
	"github.com/a1k2f3/sellercenter-buybot/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// backend routes, relative to the configured base URL
const (
	pathLogin         = "/api/store/login"
	pathStoreProfile  = "/api/store/profile"
	pathProducts      = "/api/products"
	pathProductByID   = "/api/products/%s"
	pathDeleteProduct = "/api/products/delete/%s"
	pathCategories    = "/api/categories"
	pathTags          = "/api/tags"
	pathStoreOrders   = "/api/orders/store-orders"
	pathOrderDetail   = "/api/orders/store/order/%s"
)

// LoginResult mirrors the backend login response body.
type LoginResult struct {
	Token string `json:"token"`
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// defines the methods the rest of the gateway may call on the backend.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	StoreProfile(ctx context.Context, token, storeID string) ([]models.Product, error)
	GetProduct(ctx context.Context, token, productID string) (*models.Product, error)
	CreateProduct(ctx context.Context, token string, payload *ProductPayload) (*models.Product, error)
	UpdateProduct(ctx context.Context, token, productID string, payload *ProductPayload) (*models.Product, error)
	DeleteProduct(ctx context.Context, token, productID string) error
	Categories(ctx context.Context, token string) ([]models.Category, error)
	Tags(ctx context.Context, token string) ([]models.Tag, error)
	StoreOrders(ctx context.Context, token, storeID string) ([]models.Order, error)
	OrderDetail(ctx context.Context, token, orderID, storeID string) (*models.OrderDetail, error)
}

// httpClient is the implementation of the Client interface.
type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *httpClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, appErrors.InternalError("Failed to encode login request").WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathLogin, bytes.NewReader(body))
	if err != nil {
		return nil, appErrors.InternalError("Failed to build login request").WithError(err)
	}

	req.Header.Set("Content-Type", "application/json")

	var result LoginResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *httpClient) StoreProfile(ctx context.Context, token, storeID string) ([]models.Product, error) {

	target := c.baseURL + pathStoreProfile + "?storeId=" + url.QueryEscape(storeID)

	req, err := c.newRequest(ctx, http.MethodGet, target, token, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Products []models.Product `json:"products"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return result.Products, nil
}

func (c *httpClient) GetProduct(ctx context.Context, token, productID string) (*models.Product, error) {

	target := c.baseURL + fmt.Sprintf(pathProductByID, url.PathEscape(productID))

	req, err := c.newRequest(ctx, http.MethodGet, target, token, nil)
	if err != nil {
		return nil, err
	}

	// the backend wraps single products in a data envelope
	var result struct {
		Data *models.Product `json:"data"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	if result.Data == nil {
		return nil, appErrors.NotFoundError("Product not found")
	}

	return result.Data, nil
}

func (c *httpClient) CreateProduct(ctx context.Context, token string, payload *ProductPayload) (*models.Product, error) {
	return c.sendProduct(ctx, http.MethodPost, c.baseURL+pathProducts, token, payload)
}

func (c *httpClient) UpdateProduct(ctx context.Context, token, productID string, payload *ProductPayload) (*models.Product, error) {
	target := c.baseURL + fmt.Sprintf(pathProductByID, url.PathEscape(productID))

	return c.sendProduct(ctx, http.MethodPut, target, token, payload)
}

func (c *httpClient) sendProduct(ctx context.Context, method, target, token string, payload *ProductPayload) (*models.Product, error) {

	body, contentType, err := payload.Encode()
	if err != nil {
		return nil, appErrors.InternalError("Failed to encode product payload").WithError(err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, appErrors.InternalError("Failed to build product request").WithError(err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	// the multipart writer owns the Content-Type, boundary included
	req.Header.Set("Content-Type", contentType)

	var result struct {
		Data    *models.Product `json:"data"`
		Product *models.Product `json:"product"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	if result.Data != nil {
		return result.Data, nil
	}

	return result.Product, nil
}

func (c *httpClient) DeleteProduct(ctx context.Context, token, productID string) error {

	target := c.baseURL + fmt.Sprintf(pathDeleteProduct, url.PathEscape(productID))

	req, err := c.newRequest(ctx, http.MethodDelete, target, token, nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

func (c *httpClient) Categories(ctx context.Context, token string) ([]models.Category, error) {

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+pathCategories, token, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data []models.Category `json:"data"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *httpClient) Tags(ctx context.Context, token string) ([]models.Tag, error) {

	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+pathTags, token, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data []models.Tag `json:"data"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *httpClient) StoreOrders(ctx context.Context, token, storeID string) ([]models.Order, error) {

	target := c.baseURL + pathStoreOrders + "?storeId=" + url.QueryEscape(storeID)

	req, err := c.newRequest(ctx, http.MethodGet, target, token, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return result.Orders, nil
}

func (c *httpClient) OrderDetail(ctx context.Context, token, orderID, storeID string) (*models.OrderDetail, error) {

	target := c.baseURL + fmt.Sprintf(pathOrderDetail, url.PathEscape(orderID)) + "?storeId=" + url.QueryEscape(storeID)

	req, err := c.newRequest(ctx, http.MethodGet, target, token, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Order *models.OrderDetail `json:"order"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	if result.Order == nil {
		return nil, appErrors.NotFoundError("Order not found")
	}

	return result.Order, nil
}

func (c *httpClient) newRequest(ctx context.Context, method, target, token string, body io.Reader) (*http.Request, error) {

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, appErrors.InternalError("Failed to build backend request").WithError(err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	return req, nil
}

// do issues the request, maps non-2xx statuses onto the error taxonomy and
// decodes a 2xx body into dest when dest is non-nil.
func (c *httpClient) do(req *http.Request, dest any) error {

	resp, err := c.client.Do(req)
	if err != nil {
		return appErrors.BackendUnavailableError("Could not reach the store backend").WithError(err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.BackendUnavailableError("Failed to read backend response").WithError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatusError(resp.StatusCode, body)
	}

	if dest == nil || len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return appErrors.BackendUnavailableError("Unexpected backend response format").WithError(err)
	}

	return nil
}

func mapStatusError(statusCode int, body []byte) error {

	message := extractMessage(body)

	switch statusCode {
	case http.StatusUnauthorized:
		if message == "" {
			message = "Session expired. Please log in again."
		}

		return appErrors.SessionExpiredError(message)
	case http.StatusForbidden:
		if message == "" {
			message = "You don't have permission to perform this action."
		}

		return appErrors.ForbiddenError(message)
	case http.StatusNotFound:
		if message == "" {
			message = "Resource not found"
		}

		return appErrors.NotFoundError(message)
	case http.StatusTooManyRequests:
		if message == "" {
			message = "Too many requests. Please slow down."
		}

		return appErrors.TooManyRequestsError(message)
	default:
		if message == "" {
			message = "The store backend rejected the request"
		}

		return appErrors.BackendRejectedError(message, statusCode)
	}
}

// extractMessage pulls the backend's message field out of an error body when
// one is present; anything unparseable yields the generic fallback upstream.
func extractMessage(body []byte) string {

	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if envelope.Message != "" {
		return envelope.Message
	}

	return envelope.Error
}
