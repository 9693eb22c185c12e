package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteSuccess writes {"success":true,"message":...,"data":...}.
// Empty message and nil data are omitted.
func WriteSuccess(w http.ResponseWriter, statusCode int, message string, data any) error {
	_, err := WriteJSON(w, models.Response{Success: true, Message: message, Data: data}, statusCode)
	return err
}

// WriteList writes a success envelope with a "count" field next to the data.
func WriteList(w http.ResponseWriter, message string, count int, data any) error {
	_, err := WriteJSON(w, models.Response{Success: true, Message: message, Count: &count, Data: data}, http.StatusOK)
	return err
}

// WriteError writes {"success":false,"error":...}.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	_, err := WriteJSON(w, models.Response{Success: false, Error: message}, statusCode)
	return err
}
