package api

import (
	"bytes"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vovakirdan/tile-arcade/internal/notify"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// eventJSON is a notification as sent to clients.
type eventJSON struct {
	Name notify.Name  `json:"name"`
	Data notify.Event `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// readJSON decodes the request body into v. An empty body leaves v as is.
func readJSON(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
