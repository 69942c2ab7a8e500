package validation

import (
	"fmt"
	"io"
	"slices"

	"github.com/gabriel-vasile/mimetype"

	"inventory-system/config"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
)

// ValidateFile checks the size and the sniffed MIME type of an upload against
// the rules of contextName. The reader is rewound before returning.
func ValidateFile(size int64, file io.ReadSeeker, contextName constants.UploadContext) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("unknown upload context %q", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if size > maxSizeBytes {
			return apperrors.NewInvalidInputError("file size (%.2f MB) exceeds the %d MB limit", float64(size)/1024/1024, rules.MaxSizeMB)
		}
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind upload: %w", err)
	}

	if !allowed(mtype, rules.AllowedMimeTypes) {
		return apperrors.NewInvalidInputError("file format %s is not allowed for %s", mtype.String(), contextName)
	}
	return nil
}

// allowed walks the detected type and its parents, so e.g. a type detected as
// a specialised zip container still matches its declared office MIME type.
func allowed(mtype *mimetype.MIME, allowedTypes []string) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if slices.ContainsFunc(allowedTypes, m.Is) {
			return true
		}
	}
	return false
}
