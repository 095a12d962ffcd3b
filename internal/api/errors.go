// ABOUTME: Typed API errors distinguishing connectivity failures from HTTP error responses
// ABOUTME: Maps status codes to localized default messages used across the client

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeNetwork tags errors where no response reached the client.
const CodeNetwork = "NETWORK"

// ErrNetwork matches any *Error produced by a transport-level failure.
var ErrNetwork = errors.New("network unreachable")

// NetworkMessage is shown to users when the server cannot be reached.
const NetworkMessage = "Não foi possível conectar ao servidor. Verifique sua conexão e tente novamente."

// Error is returned for every failed API call.
type Error struct {
	// Status is the HTTP status code, or 0 for network failures.
	Status int
	// Code is CodeNetwork for transport failures, empty otherwise.
	Code string
	// Message is the user-facing message.
	Message string
	// Body is the decoded JSON error body, when the server sent one.
	Body map[string]any

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the transport error for network failures.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the error matches ErrNetwork.
func (e *Error) Is(target error) bool {
	return target == ErrNetwork && e.Code == CodeNetwork
}

// IsNetwork reports whether err is a connectivity failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// StatusMessage returns the default user-facing message for an HTTP status.
func StatusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "Sua sessão expirou. Faça login novamente."
	case status == http.StatusForbidden:
		return "Você não tem permissão para esta ação."
	case status == http.StatusNotFound:
		return "Recurso não encontrado."
	case status >= 500:
		return "Erro no servidor. Tente novamente mais tarde."
	default:
		return fmt.Sprintf("Erro (%d).", status)
	}
}

func networkError(cause error) *Error {
	return &Error{
		Code:    CodeNetwork,
		Message: NetworkMessage,
		cause:   cause,
	}
}

// responseError builds the error for a non-2xx response. A server-supplied
// "error" or "message" field takes precedence over the status default.
func responseError(status int, body map[string]any) *Error {
	message := StatusMessage(status)
	if body != nil {
		if s, ok := body["error"].(string); ok && s != "" {
			message = s
		} else if s, ok := body["message"].(string); ok && s != "" {
			message = s
		}
	}
	return &Error{
		Status:  status,
		Message: message,
		Body:    body,
	}
}
