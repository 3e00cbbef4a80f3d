package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseRequest decodes a single JSON object.
func ParseRequest(data []byte) (Request, error) {
	var req Request
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		return req, errors.New("request must be a JSON object")
	}
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Serve reads one request from in and writes exactly one JSON response line
// to out. Only a failure to read or write is returned as an error.
func (r *Responder) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return writeResponse(out, Failure(fmt.Sprintf("read request: %v", err)))
	}

	req, err := ParseRequest(data)
	if err != nil {
		return writeResponse(out, Failure(err.Error()))
	}
	return writeResponse(out, r.Respond(ctx, req))
}

func writeResponse(out io.Writer, resp Response) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
