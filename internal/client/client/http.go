package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/libhub/internal/client/models"
)

// APIClient talks to the libhub REST API.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (c *APIClient) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *APIClient) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// do sends req and decodes the envelope's data into out.
func (c *APIClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *APIClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/healthz", "", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *APIClient) Register(ctx context.Context, r RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	in := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type userData struct {
	User *models.User `json:"user"`
}

func (c *APIClient) Profile(ctx context.Context, token string) (*models.User, error) {
	var out userData
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *APIClient) UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) (*models.User, error) {
	var out userData
	if err := c.doJSON(ctx, http.MethodPut, "/api/auth/profile", token, upd, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *APIClient) Users(ctx context.Context, token string) ([]*models.User, error) {
	var out struct {
		Users []*models.User `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/all-users", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *APIClient) SetUserStatus(ctx context.Context, token, userID, status string) (*models.User, error) {
	var out userData
	path := "/api/auth/users/" + url.PathEscape(userID) + "/status"
	if err := c.doJSON(ctx, http.MethodPut, path, token, map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

type libraryData struct {
	Library *models.Library `json:"library"`
}

func libraryPath(id string) string {
	return "/api/libraries/" + url.PathEscape(id)
}

func (c *APIClient) Libraries(ctx context.Context, token string) ([]*models.Library, error) {
	var out struct {
		Libraries []*models.Library `json:"libraries"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/libraries", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Libraries, nil
}

// ActiveLibrary returns (nil, nil) when the user has no library yet.
func (c *APIClient) ActiveLibrary(ctx context.Context, token string) (*models.Library, error) {
	var out libraryData
	if err := c.doJSON(ctx, http.MethodGet, "/api/libraries/active", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Library, nil
}

func (c *APIClient) CreateLibrary(ctx context.Context, token, name string, imageURL *string) (*models.Library, error) {
	in := LibraryUpdate{Name: &name, ImageURL: imageURL}
	var out libraryData
	if err := c.doJSON(ctx, http.MethodPost, "/api/libraries", token, in, &out); err != nil {
		return nil, err
	}
	return out.Library, nil
}

func (c *APIClient) SwitchLibrary(ctx context.Context, token, id string) (*models.Library, error) {
	var out libraryData
	if err := c.doJSON(ctx, http.MethodPut, libraryPath(id)+"/switch", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Library, nil
}

func (c *APIClient) UpdateLibrary(ctx context.Context, token, id string, upd LibraryUpdate) (*models.Library, error) {
	var out libraryData
	if err := c.doJSON(ctx, http.MethodPut, libraryPath(id), token, upd, &out); err != nil {
		return nil, err
	}
	return out.Library, nil
}

func (c *APIClient) DeleteLibrary(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, libraryPath(id), token, nil, nil)
}

// UploadImage sends r as the multipart field "image" and returns the URL
// the server stored it under. The part's content type follows the file
// extension.
func (c *APIClient) UploadImage(ctx context.Context, token, filename string, r io.Reader) (string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(filename)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload/image", token, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}
