package mdpreview

import "errors"

// Sentinel errors for library operations.
var (
	// ErrGeneratorStopped is returned when submitting to or starting a
	// generator after Shutdown.
	ErrGeneratorStopped = errors.New("preview generator stopped")

	// ErrConversionPanic wraps a panic recovered from a converter.
	ErrConversionPanic = errors.New("conversion panicked")

	ErrTemplateLoad     = errors.New("preview template loading failed")
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
