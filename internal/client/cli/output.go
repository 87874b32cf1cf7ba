package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dmitrijs2005/gophinventory/internal/common"
	"github.com/dmitrijs2005/gophinventory/internal/envelope"
	"github.com/dmitrijs2005/gophinventory/internal/objectstore"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func success(msg string) string {
	return color.GreenString("✓") + " " + msg
}

func failure(msg string) string {
	return color.RedString("✗") + " " + msg
}

func hint(msg string) string {
	return color.CyanString("→") + " " + msg
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, envelope.ErrMalformedEnvelope):
		return "not an encrypted item file (bad Base64 or too short)"
	case errors.Is(err, envelope.ErrAuthenticationFailure):
		return "file was sealed with a different key or has been modified"
	case errors.Is(err, envelope.ErrInvalidPayload):
		return "file decrypted but does not contain a valid item"
	case errors.Is(err, common.ErrSharingDisabled):
		return "sharing is disabled in settings"
	case errors.Is(err, common.ErrOutOfStock):
		return "item is out of stock"
	case errors.Is(err, objectstore.ErrObjectNotFound):
		return "no such file in the bucket"
	case errors.Is(err, fs.ErrNotExist):
		return "no such file"
	case errors.Is(err, common.ErrorNotFound):
		return "no such item"
	case errors.Is(err, io.EOF):
		return "input closed"
	default:
		return err.Error()
	}
}

// isTerminal is a test seam.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// withSpinner runs fn while showing a spinner on w. Nothing is drawn when
// w is not a terminal.
func withSpinner(w io.Writer, message string, fn func() error) error {
	if !isTerminal(w) {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()
	defer s.Stop()

	return fn()
}
