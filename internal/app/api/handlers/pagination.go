package handlers

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reelhouse/rental/pkg/response"
	"github.com/reelhouse/rental/pkg/types"
)

// pageQuery parses limit/page for list endpoints. Both are 1-indexed
// positive integers, defaulting to 10 and 1; any other query parameter is
// rejected so typos never silently degrade into a full listing. On failure
// it writes the 400 and returns ok=false.
func pageQuery(c *gin.Context) (types.PageQuery, bool) {
	var unknown []string
	for k := range c.Request.URL.Query() {
		if k != "limit" && k != "page" {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		response.BadRequest(c, "Unrecognized query params: "+strings.Join(unknown, ", "))
		return types.PageQuery{}, false
	}

	limit := types.DefaultPageLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.BadRequest(c, "Limit query param invalid. Must be a number greater than zero.")
			return types.PageQuery{}, false
		}
		limit = n
	}

	page := types.DefaultPage
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.BadRequest(c, "Page query param invalid. Must be a number greater than zero.")
			return types.PageQuery{}, false
		}
		page = n
	}

	return types.NewPageQuery(limit, page), true
}
