package bill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// RestStore talks to the remote bills API over HTTP. It is the
// production Store implementation.
type RestStore struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewRestStore creates a RestStore for the given API base URL. token is
// sent as a bearer credential when non-empty.
func NewRestStore(baseURL, token string) *RestStore {
	return &RestStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Bills returns the bills endpoint client.
func (r *RestStore) Bills() BillsClient {
	return &restBills{store: r}
}

type restBills struct {
	store *RestStore
}

// List fetches every bill from the remote store.
func (b *restBills) List(ctx context.Context) ([]Bill, error) {
	req, err := b.store.newRequest(ctx, http.MethodGet, "/bills", nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := b.store.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling bills API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var bills []Bill
	if err := json.NewDecoder(resp.Body).Decode(&bills); err != nil {
		return nil, fmt.Errorf("decoding bill list: %w", err)
	}
	return bills, nil
}

// Create uploads the receipt as a multipart form (file part plus the
// employee email field) and returns the stored file location and the
// draft key assigned by the remote store.
func (b *restBills) Create(ctx context.Context, cr CreateRequest) (CreateResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", cr.FileName)
	if err != nil {
		return CreateResult{}, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := part.Write(cr.Data); err != nil {
		return CreateResult{}, fmt.Errorf("building upload form: %w", err)
	}
	if err := w.WriteField("email", cr.Email); err != nil {
		return CreateResult{}, fmt.Errorf("building upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return CreateResult{}, fmt.Errorf("building upload form: %w", err)
	}

	req, err := b.store.newRequest(ctx, http.MethodPost, "/bills", &buf, w.FormDataContentType())
	if err != nil {
		return CreateResult{}, err
	}

	resp, err := b.store.client.Do(req)
	if err != nil {
		return CreateResult{}, fmt.Errorf("uploading receipt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return CreateResult{}, apiError(resp)
	}

	var result CreateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return CreateResult{}, fmt.Errorf("decoding upload response: %w", err)
	}
	return result, nil
}

// Update persists the completed bill under the given key.
func (b *restBills) Update(ctx context.Context, key string, bill Bill) (Bill, error) {
	body, err := json.Marshal(bill)
	if err != nil {
		return Bill{}, fmt.Errorf("marshaling bill: %w", err)
	}

	req, err := b.store.newRequest(ctx, http.MethodPatch, "/bills/"+key, bytes.NewReader(body), "application/json")
	if err != nil {
		return Bill{}, err
	}

	resp, err := b.store.client.Do(req)
	if err != nil {
		return Bill{}, fmt.Errorf("updating bill: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Bill{}, apiError(resp)
	}

	var updated Bill
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return Bill{}, fmt.Errorf("decoding updated bill: %w", err)
	}
	return updated, nil
}

func (r *RestStore) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	return req, nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("bills API error (status %d): %s", resp.StatusCode, string(body))
}
