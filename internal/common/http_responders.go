package common

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HttpResponse is the envelope every JSON endpoint replies with
type HttpResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func GetNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		SendHttpFailResponse(w, r, http.StatusNotFound, "not found", fmt.Errorf("endpoint[%s] not found", r.URL.Path))
	}
}

func SendHttpFailResponse(
	w http.ResponseWriter,
	r *http.Request,
	statusCode int,
	message string,
	errorCode ...error,
) {
	if log, ok := r.Context().Value(HttpContextLogger).(HttpRequestLogger); ok {
		log(LogLevelError, message)
	}
	response := HttpResponse{
		Message: message,
		Success: false,
		Data:    "generic_error",
	}
	if len(errorCode) > 0 {
		response.Data = errorCode[0].Error()
	}
	writeJson(w, statusCode, response)
}

func SendHttpSuccessResponse(
	w http.ResponseWriter,
	r *http.Request,
	statusCode int,
	message string,
	data ...any,
) {
	response := HttpResponse{
		Message: message,
		Success: true,
	}
	if len(data) > 0 {
		response.Data = data[0]
	}
	writeJson(w, statusCode, response)
}

func writeJson(w http.ResponseWriter, statusCode int, response HttpResponse) {
	body, _ := json.Marshal(response)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}
