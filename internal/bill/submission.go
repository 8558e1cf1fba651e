package bill

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
)

// RejectedExtensionMessage is shown verbatim when a selected receipt
// file carries a disallowed extension.
const RejectedExtensionMessage = "Veuillez télécharger un fichier avec une extension jpg, jpeg ou png."

// DefaultPct is applied when the form's pct field is missing or unusable.
const DefaultPct = 20

// Navigator replaces the current view with the one behind the given
// route token. The submission service calls it exactly once per
// successful submission and never inspects the outcome.
type Navigator func(route string)

// Alerter raises a blocking, user-facing message.
type Alerter interface {
	Alert(message string)
}

// FileSelection is the outcome of one file-selection event.
type FileSelection struct {
	Accepted bool
	FileURL  string
	FileName string
}

// BillForm carries the raw form fields of one submission, exactly as
// read from the inputs.
type BillForm struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	VAT        string
	Pct        string
	Commentary string
}

// SubmissionService manages one in-progress bill submission: a
// file-selection sub-flow that validates and uploads the receipt, and a
// submit sub-flow that assembles the bill and persists it. The employee
// identity is injected at construction, never read from ambient state.
// The two sub-flows share no synchronization barrier: submitting while
// an upload is still unresolved sends whatever fileUrl/fileName are
// currently held, empty strings included.
type SubmissionService struct {
	store    Store
	email    string
	navigate Navigator
	alerter  Alerter

	key      string
	fileURL  string
	fileName string
}

// NewSubmissionService creates a SubmissionService for one form. email
// is the authenticated employee identity. A nil store turns both
// sub-flows into no-ops past validation.
func NewSubmissionService(store Store, email string, navigate Navigator, alerter Alerter) *SubmissionService {
	return &SubmissionService{
		store:    store,
		email:    email,
		navigate: navigate,
		alerter:  alerter,
	}
}

// allowedExtension reports whether name carries an accepted receipt
// image extension. Extension string match only; content is never
// inspected.
func allowedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// HandleFileSelected validates the selected receipt and uploads it
// through the store's bill-attachment endpoint, holding the resulting
// file location on the draft. A disallowed extension raises the
// rejection alert, clears any held selection and never touches the
// store.
func (s *SubmissionService) HandleFileSelected(ctx context.Context, name string, data []byte) (FileSelection, error) {
	if !allowedExtension(name) {
		s.key, s.fileURL, s.fileName = "", "", ""
		if s.alerter != nil {
			s.alerter.Alert(RejectedExtensionMessage)
		}
		return FileSelection{}, nil
	}

	if s.store == nil {
		return FileSelection{Accepted: true}, nil
	}

	res, err := s.store.Bills().Create(ctx, CreateRequest{
		FileName: name,
		Data:     data,
		Email:    s.email,
	})
	if err != nil {
		slog.Error("Failed to upload receipt", "filename", name, "error", err)
		return FileSelection{Accepted: true}, fmt.Errorf("uploading receipt: %w", err)
	}

	s.key = res.Key
	s.fileURL = res.FileURL
	s.fileName = name

	return FileSelection{Accepted: true, FileURL: s.fileURL, FileName: s.fileName}, nil
}

// HandleSubmit assembles the completed bill from the form fields and
// the currently held upload, persists it, then asks the navigator to
// return to the bills listing. An absent upload is sent as empty
// strings rather than blocking the submission. Persist failures are
// logged and returned; navigation only happens after the persist call
// resolves.
func (s *SubmissionService) HandleSubmit(ctx context.Context, form BillForm) error {
	b := Bill{
		Email:      s.email,
		Type:       form.Type,
		Name:       form.Name,
		Amount:     parseAmount(form.Amount),
		Date:       form.Date,
		VAT:        form.VAT,
		Pct:        parsePct(form.Pct),
		Commentary: form.Commentary,
		FileURL:    s.fileURL,
		FileName:   s.fileName,
		Status:     StatusPending,
	}

	if s.store == nil {
		return nil
	}

	if _, err := s.store.Bills().Update(ctx, s.key, b); err != nil {
		slog.Error("Failed to persist bill", "name", b.Name, "error", err)
		return fmt.Errorf("persisting bill: %w", err)
	}

	if s.navigate != nil {
		s.navigate(RouteBills)
	}
	return nil
}

func parseAmount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// parsePct falls back to DefaultPct for anything that is not a
// non-negative integer.
func parsePct(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return DefaultPct
	}
	return n
}
