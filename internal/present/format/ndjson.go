package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/scalemate/internal/db"
)

// WriteNDJSONEvents writes events as newline-delimited JSON objects.
func WriteNDJSONEvents(w io.Writer, events []db.Event) error {
	enc := json.NewEncoder(w)
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
