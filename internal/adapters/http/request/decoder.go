// Package request
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const DefaultMaxBodyBytes = 1 << 20

var ErrInvalidBody = errors.New("invalid request body")

type RequestDecoder interface {
	Decode(r *http.Request, v any) error
}

type JSONDecoder struct {
	maxBytes int64
}

func NewJSONDecoder(maxBytes int64) *JSONDecoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return &JSONDecoder{maxBytes: maxBytes}
}

// Decode treats an empty body as an empty JSON object.
func (d *JSONDecoder) Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, d.maxBytes+1))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrInvalidBody)
	}

	if dec.InputOffset() > d.maxBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidBody, d.maxBytes)
	}

	return nil
}
