package bill

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-process Store used for offline mode and tests. It
// assigns opaque keys the way the remote store does and keeps receipt
// files in the provided Storage.
type MemStore struct {
	mu      sync.Mutex
	bills   map[string]Bill
	order   []string
	storage Storage
}

// NewMemStore creates an empty MemStore. storage may be nil, in which
// case uploaded receipt bytes are discarded and only the metadata is
// kept.
func NewMemStore(storage Storage) *MemStore {
	return &MemStore{
		bills:   make(map[string]Bill),
		storage: storage,
	}
}

// Bills returns the bills endpoint client.
func (m *MemStore) Bills() BillsClient {
	return &memBills{store: m}
}

type memBills struct {
	store *MemStore
}

// List returns all bills in insertion order.
func (b *memBills) List(ctx context.Context) ([]Bill, error) {
	m := b.store
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Bill, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.bills[key])
	}
	return out, nil
}

// Create stores the receipt file and opens a draft bill around it,
// returning the assigned key and file location.
func (b *memBills) Create(ctx context.Context, req CreateRequest) (CreateResult, error) {
	m := b.store
	key := uuid.NewString()

	fileURL := ""
	if m.storage != nil {
		saved, err := m.storage.Save(fmt.Sprintf("%s_%s", key, req.FileName), req.Data)
		if err != nil {
			return CreateResult{}, fmt.Errorf("saving receipt: %w", err)
		}
		fileURL = m.storage.URL(saved)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[key] = Bill{
		ID:       key,
		Email:    req.Email,
		FileURL:  fileURL,
		FileName: req.FileName,
		Status:   StatusPending,
	}
	m.order = append(m.order, key)

	return CreateResult{FileURL: fileURL, FileName: req.FileName, Key: key}, nil
}

// Update persists the completed bill under key. An empty key (no
// upload happened) gets a fresh one, mirroring the remote store's
// create-as-update tolerance.
func (b *memBills) Update(ctx context.Context, key string, bill Bill) (Bill, error) {
	m := b.store
	m.mu.Lock()
	defer m.mu.Unlock()

	if key == "" {
		key = uuid.NewString()
	}
	if _, ok := m.bills[key]; !ok {
		m.order = append(m.order, key)
	}

	bill.ID = key
	if bill.Status == "" {
		bill.Status = StatusPending
	}
	m.bills[key] = bill

	return bill, nil
}

// SetStatus flips a persisted bill's lifecycle status, standing in for
// the remote side's accept/refuse decision in offline mode.
func (m *MemStore) SetStatus(key, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bills[key]
	if !ok {
		return fmt.Errorf("bill %s not found", key)
	}
	b.Status = status
	m.bills[key] = b
	return nil
}
