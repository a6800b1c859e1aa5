package gangsheet

import (
	"errors"
	"fmt"
)

var (
	ErrDesignExceedsSheetWidth  = errors.New("design exceeds sheet width")
	ErrDesignExceedsSheetLength = errors.New("design exceeds longest sheet length")
	ErrInvalidDesign            = errors.New("design dimensions must be positive")
	ErrUnknownMode              = errors.New("unknown gang sheet mode")
)

// DesignExceedsSheetWidthError reports a design too wide for the roll once
// edge margins are taken off. Designs are never rotated to make them fit.
type DesignExceedsSheetWidthError struct {
	LineItemID  string
	ArtworkName string
	Width       float64
	MaxWidth    float64
}

func (e *DesignExceedsSheetWidthError) Error() string {
	return fmt.Sprintf("design %q (%s) is %.2fin wide, usable roll width is %.2fin", e.ArtworkName, e.LineItemID, e.Width, e.MaxWidth)
}

func (e *DesignExceedsSheetWidthError) Is(target error) bool {
	return target == ErrDesignExceedsSheetWidth
}

// DesignExceedsSheetLengthError reports a design taller than the longest
// configured sheet.
type DesignExceedsSheetLengthError struct {
	LineItemID  string
	ArtworkName string
	Height      float64
	MaxLength   float64
}

func (e *DesignExceedsSheetLengthError) Error() string {
	return fmt.Sprintf("design %q (%s) is %.2fin tall, longest usable sheet is %.2fin", e.ArtworkName, e.LineItemID, e.Height, e.MaxLength)
}

func (e *DesignExceedsSheetLengthError) Is(target error) bool {
	return target == ErrDesignExceedsSheetLength
}
