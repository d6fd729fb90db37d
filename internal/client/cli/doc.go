// Package cli provides the interactive easyinvoice command-line client.
//
// It wires configuration, the record store, the invoice services and the
// export and mail collaborators behind a REPL. Typical flow: register,
// login, create invoices with 'new', then list, export or remind.
//
// Key features:
//   - Register / Login / Logout against locally stored accounts
//   - Create invoices with a running total, list and show them
//   - Mark invoices paid or pending
//   - Export to PDF (local directory or S3) and send email reminders
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
