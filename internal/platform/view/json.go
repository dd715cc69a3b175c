package view

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
)

// JSONRenderer answers every view with its Page as a JSON document, for
// headless clients and tests.
type JSONRenderer struct{}

func (JSONRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	page, ok := data.(Page)
	if !ok {
		page = Page{View: name, Data: Data{"value": data}}
	}
	if c != nil {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	}
	if err := json.NewEncoder(w).Encode(page); err != nil {
		return fmt.Errorf("encode view %s: %w", name, err)
	}
	return nil
}
