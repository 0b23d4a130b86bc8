// Package iojson reads and writes JSON for command line output.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the JSON shape of a command failure.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func marshalFailure(msg string, err error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(err.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// WriteError writes msg and data as an Error object to w.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	bits, err := json.Marshal(Error{Message: msg, Data: data})
	if err != nil {
		_, err = fmt.Fprintln(w, marshalFailure(msg, err))
		return err
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write writes obj as indented JSON to w. Marshal failures are reported as
// an Error object on ew.
func Write(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(ew, marshalFailure("marshal output", err))
		return werr
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj as a single line of JSON, for streaming output.
func WriteLine(w io.Writer, obj any) error {
	return json.NewEncoder(w).Encode(obj)
}
