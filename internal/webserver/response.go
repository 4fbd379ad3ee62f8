package webserver

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// ok writes v as a JSON response body.
func ok(c echo.Context, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

// fail writes a JSON error envelope with the given status.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	data, err := json.Marshal(errorResponse{Code: code, Message: message, Detail: detail})
	if err != nil {
		return err
	}
	return c.JSONBlob(status, data)
}
