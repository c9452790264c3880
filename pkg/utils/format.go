package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"s3fetch/internal/models"
	"time"
)

func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// WriteJSON writes data to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, data any) error {
	jsonOutput, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonOutput))
	return err
}

// WriteError writes err as a JSON error envelope. If the envelope cannot be
// written the plain message is written instead.
func WriteError(w io.Writer, err error, command string) {
	errorResp := models.ErrorResponse{
		Error:     err.Error(),
		Timestamp: FormatTime(time.Now()),
		Command:   command,
	}
	if werr := WriteJSON(w, errorResp); werr != nil {
		fmt.Fprintf(w, "Error: %s (%s)\n", errorResp.Error, command)
	}
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
