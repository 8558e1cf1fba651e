package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/expensedesk/bill-tracker/internal/bill"
	"github.com/expensedesk/bill-tracker/internal/session"
	"github.com/expensedesk/bill-tracker/internal/view"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// A missing .env file is fine; flags and env vars still apply.
	_ = godotenv.Load()

	fs := ff.NewFlagSet("bill-tracker")
	var (
		apiURL      = fs.StringLong("api", "http://localhost:5678", "Bills API base URL")
		token       = fs.StringLong("token", "", "Bills API bearer token")
		sessionPath = fs.StringLong("session", "bill-tracker.db", "Session database file path")
		storagePath = fs.StringLong("storage", "./receipts", "Receipt storage directory (offline mode)")
		offline     = fs.BoolLong("offline", "Use the local store instead of the remote API")
		email       = fs.StringLong("email", "", "Employee email (login)")
		userType    = fs.StringLong("user-type", "Employee", "User type (login)")
		billType    = fs.StringLong("type", "", "Expense type (submit)")
		billName    = fs.StringLong("name", "", "Expense name (submit)")
		amount      = fs.StringLong("amount", "", "Amount (submit)")
		date        = fs.StringLong("date", "", "Date YYYY-MM-DD (submit)")
		vat         = fs.StringLong("vat", "", "VAT amount (submit)")
		pct         = fs.StringLong("pct", "", "VAT percentage (submit)")
		commentary  = fs.StringLong("commentary", "", "Commentary (submit)")
		file        = fs.StringLong("file", "", "Receipt image path (submit)")
		fileURL     = fs.StringLong("file-url", "", "Receipt URL (preview)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("BILL_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	args := fs.GetArgs()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: bill-tracker [flags] <login|logout|bills|submit|preview>")
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		os.Exit(1)
	}

	sess, err := session.Open(*sessionPath)
	if err != nil {
		slog.Error("Failed to open session", "error", err)
		os.Exit(1)
	}
	defer sess.Close()

	console := view.NewConsole(os.Stdout)
	ctx := context.Background()

	switch command := args[0]; command {
	case "login":
		if *email == "" {
			slog.Error("login requires --email")
			os.Exit(1)
		}
		if err := sess.SaveUser(session.User{Email: *email, Type: *userType}); err != nil {
			slog.Error("Failed to save user", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Logged in as %s\n", *email)

	case "logout":
		if err := sess.Clear(); err != nil {
			slog.Error("Failed to clear session", "error", err)
			os.Exit(1)
		}
		fmt.Println("Logged out")

	case "bills":
		store, err := openStore(*offline, *apiURL, *token, *storagePath)
		if err != nil {
			slog.Error("Failed to initialize store", "error", err)
			os.Exit(1)
		}
		listing := bill.NewListingService(store, console)
		views, err := listing.GetBills(ctx)
		if err != nil {
			slog.Error("Failed to fetch bills", "error", err)
			os.Exit(1)
		}
		if err := console.RenderBills(views); err != nil {
			slog.Error("Failed to render bills", "error", err)
			os.Exit(1)
		}

	case "preview":
		listing := bill.NewListingService(nil, console)
		listing.PreviewReceipt(*fileURL)

	case "submit":
		user, err := sess.CurrentUser()
		if err != nil {
			slog.Error("Not logged in", "error", err)
			os.Exit(1)
		}
		store, err := openStore(*offline, *apiURL, *token, *storagePath)
		if err != nil {
			slog.Error("Failed to initialize store", "error", err)
			os.Exit(1)
		}

		submission := bill.NewSubmissionService(store, user.Email, console.Navigate, console)

		if *file != "" {
			data, err := os.ReadFile(*file)
			if err != nil {
				slog.Error("Failed to read receipt file", "path", *file, "error", err)
				os.Exit(1)
			}
			selection, err := submission.HandleFileSelected(ctx, filepath.Base(*file), data)
			if err != nil {
				slog.Error("Failed to upload receipt", "error", err)
				os.Exit(1)
			}
			if !selection.Accepted {
				os.Exit(1)
			}
		}

		err = submission.HandleSubmit(ctx, bill.BillForm{
			Type:       *billType,
			Name:       *billName,
			Amount:     *amount,
			Date:       *date,
			VAT:        *vat,
			Pct:        *pct,
			Commentary: *commentary,
		})
		if err != nil {
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(1)
	}
}

// openStore picks the Store implementation: the remote bills API, or a
// local in-process store backed by a receipts directory.
func openStore(offline bool, apiURL, token, storagePath string) (bill.Store, error) {
	if offline {
		storage, err := bill.NewLocalStorage(storagePath)
		if err != nil {
			return nil, fmt.Errorf("initializing receipt storage: %w", err)
		}
		return bill.NewMemStore(storage), nil
	}
	return bill.NewRestStore(apiURL, token), nil
}
