package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maqomuz/maktab/core"
)

const (
	limitParam    = "limit"
	orderingParam = "ordering"
)

// bindListOptions reads ?limit= and ?ordering= (field name, "-" prefix for
// descending) into ListOptions. Absent or malformed params keep the zero
// values; the services fill in their per-kind defaults.
func bindListOptions(ctx echo.Context) core.ListOptions {
	var opts core.ListOptions

	if val := ctx.QueryParam(limitParam); val != "" {
		if limit, err := strconv.Atoi(val); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if field := strings.TrimSpace(ctx.QueryParam(orderingParam)); field != "" {
		if opts.Desc = strings.HasPrefix(field, "-"); opts.Desc {
			field = field[1:] // drop "-"
		}
		opts.OrderBy = field
	}
	return opts
}
