package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/budgetassist/budget-assist-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var errMissing = errors.New("missing")

// parseID reads the :id path parameter
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseDecimal accepts a JSON number or a numeric string. Absent or null
// values return errMissing.
func parseDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, errMissing
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, err
		}
		text = strings.TrimSpace(text)
	}
	return decimal.NewFromString(text)
}

// parseOptionalDecimal is parseDecimal for partial updates: absent yields nil
func parseOptionalDecimal(raw json.RawMessage) (*decimal.Decimal, error) {
	d, err := parseDecimal(raw)
	if errors.Is(err, errMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseOptionalDate parses YYYY-MM-DD or RFC 3339; empty yields nil
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := util.ParseDate(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseQueryDate reads an optional date query parameter
func parseQueryDate(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	return parseOptionalDate(&v)
}

func amountMessage(err error) string {
	if errors.Is(err, errMissing) {
		return "Amount is required"
	}
	return "Must be a valid decimal number"
}
