package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/PolarWolf314/cpz/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner starts a spinner unless verbose or debug output is on.
// The returned cleanup stops it and prints FinalMSG, which does not need a
// trailing newline.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

func successMessage(msg string) string {
	return ui.Success.Sprint("✓") + " " + msg
}

func hint(msg string) string {
	return ui.Info.Sprint("→") + " " + msg
}

// failureMessage turns a workflow error into a final message with a hint
// for the error kinds a user can act on.
func failureMessage(action string, err error) string {
	msg := ui.Error.Sprint("✗") + " " + action + "\n" + ui.Error.Sprint("Error: ") + err.Error()

	switch {
	case errors.Is(err, cerrors.ErrPasswordRequired):
		msg += "\n" + hint("Pass "+ui.Flag.Sprint("--password")+", set "+ui.Code.Sprint("CPZ_PASSWORD")+" or use "+ui.Flag.Sprint("--generate"))
	case errors.Is(err, cerrors.ErrMalformedContainer):
		msg += "\n" + hint("The file is truncated or is not a cpz container")
	case errors.Is(err, cerrors.ErrDecompression):
		msg += "\n" + hint("The container is corrupted or its header was tampered with")
	case errors.Is(err, cerrors.ErrNoFilesFound):
		msg += "\n" + hint("Check the paths or quote glob patterns such as "+ui.Code.Sprint("'**/*.cpz'"))
	case errors.Is(err, cerrors.ErrUnsealFailed):
		msg += "\n" + hint("Was the password sealed to this account? Try "+ui.Code.Sprint("cpz wallet accounts"))
	case errors.Is(err, cerrors.ErrNoAccounts), errors.Is(err, cerrors.ErrAccountNotFound):
		msg += "\n" + hint("Run "+ui.Code.Sprint("cpz wallet create <name>")+" to create an account")
	case errors.Is(err, cerrors.ErrOutputConflict):
		msg += "\n" + hint("Encrypt same-named files without "+ui.Flag.Sprint("--output-dir")+" or in separate runs")
	case errors.Is(err, cerrors.ErrAccountExists):
		msg += "\n" + hint("Pick another name or run "+ui.Code.Sprint("cpz doctor")+" to check the keystore")
	case errors.Is(err, cerrors.ErrUnknownCodec):
		msg += "\n" + hint("Supported codecs are "+ui.Highlight.Sprint("zstd")+" and "+ui.Highlight.Sprint("lz4"))
	}
	return msg
}

// ErrReported marks a failure whose message was already shown. main exits
// non-zero without printing it again.
var ErrReported = errors.New("failure already reported")
