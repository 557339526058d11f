package mcp

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/satchel/internal/errors"
)

// decode maps tool arguments onto a request struct. A type mismatch is
// reported against the argument path (e.g. "weather.high_f").
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, errors.NewInvalidRequest(fmt.Sprintf("arguments are not valid JSON: %v", err))
	}
	if err := json.Unmarshal(b, &result); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			sErr := errors.NewInvalidRequest(fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value))
			sErr.Details = map[string]any{"field": typeErr.Field}
			return result, sErr
		}
		return result, errors.NewInvalidRequest(err.Error())
	}
	return result, nil
}
