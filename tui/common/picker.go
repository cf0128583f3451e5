package common

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
)

// ImageExtensions are the files the photo picker offers.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// DefaultPickerHeight is used until the terminal size is known.
const DefaultPickerHeight = 10

// NewImagePicker returns a file picker limited to images, opened at the
// working directory and listing height rows at a time.
func NewImagePicker(height int) filepicker.Model {
	if height < 1 {
		height = DefaultPickerHeight
	}
	fp := filepicker.New()
	fp.AllowedTypes = ImageExtensions
	fp.ShowPermissions = false
	// Window sizes never reach the picker; the owner sizes it.
	fp.AutoHeight = false
	fp.SetHeight(height)
	if dir, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = dir
	}
	return fp
}
