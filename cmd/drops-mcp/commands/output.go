package commands

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

func jsonString(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode output: %w", err)
	}
	return string(out) + "\n", nil
}

func printJSON(w io.Writer, v any) error {
	out, err := jsonString(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
