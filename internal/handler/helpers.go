package handler

import (
	"net/http"
	"strings"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service/console"
)

// filterPrefix marks filter query parameters: ?filter.city=Sfax
const filterPrefix = "filter."

// requireOperator returns the authenticated operator. The auth middleware
// guarantees one on protected routes.
func requireOperator(r *http.Request) (*models.Operator, error) {
	op := httputil.GetOperator(r)
	if op == nil {
		return nil, &domain.SessionExpiredError{Message: "not authenticated"}
	}
	return op, nil
}

// parseQueryRequest reads a list query from the URL.
func parseQueryRequest(r *http.Request) (console.QueryRequest, error) {
	req := console.QueryRequest{
		Search:  httputil.QueryString(r, "search"),
		Sort:    httputil.QueryString(r, "sort"),
		Tab:     httputil.QueryString(r, "tab"),
		Reset:   httputil.QueryBool(r, "reset"),
		Refresh: httputil.QueryBool(r, "refresh"),
	}

	var err error
	if req.Page, err = httputil.QueryInt(r, "page"); err != nil {
		return req, domain.NewValidationError("page", "%v", err)
	}
	if req.PageSize, err = httputil.QueryInt(r, "pageSize"); err != nil {
		return req, domain.NewValidationError("pageSize", "%v", err)
	}

	for key, values := range r.URL.Query() {
		name, ok := strings.CutPrefix(key, filterPrefix)
		if !ok || len(values) == 0 {
			continue
		}
		if req.Filters == nil {
			req.Filters = map[string]string{}
		}
		req.Filters[name] = values[0]
	}
	return req, nil
}
