package bill

import "context"

// Store is the remote persistence collaborator. An error is the only
// failure signal any of its calls expose.
type Store interface {
	// Bills returns the bills endpoint client.
	Bills() BillsClient
}

// BillsClient is the fixed call surface of the remote bills endpoint.
type BillsClient interface {
	// List returns every bill visible to the authenticated employee.
	List(ctx context.Context) ([]Bill, error)

	// Create uploads a receipt file and opens a draft bill around it.
	// The store assigns the key and the final file location.
	Create(ctx context.Context, req CreateRequest) (CreateResult, error)

	// Update persists the completed bill under the given key.
	Update(ctx context.Context, key string, b Bill) (Bill, error)
}

// CreateRequest carries a receipt upload.
type CreateRequest struct {
	FileName string
	Data     []byte
	Email    string
}

// CreateResult is the store's answer to a receipt upload.
type CreateResult struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	Key      string `json:"key"`
}
