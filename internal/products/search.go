package product

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
)

const (
	defaultSortField = "created_at"
	defaultSortOrder = "desc"
)

// sortableColumns maps exposed sort fields to their backing columns. Anything
// outside this map is rejected instead of being passed into SQL.
var sortableColumns = map[string]string{
	"created_at":  "created_at",
	"updated_at":  "updated_at",
	"title":       "title",
	"price":       "price",
	"views_count": "views_count",
}

// SearchCriteria captures every optional filter of the public product search.
// Zero values mean "not filtered".
type SearchCriteria struct {
	Query      string
	CategoryID *uuid.UUID
	MaterialID *uuid.UUID
	City       string
	State      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Condition  *enums.ProductCondition
	SortBy     string
	SortOrder  string
	Skip       int
	Limit      int
}

// OrderClause validates the sort inputs and renders the ORDER BY expression.
func (c SearchCriteria) OrderClause() (string, error) {
	field := strings.TrimSpace(c.SortBy)
	if field == "" {
		field = defaultSortField
	}
	column, ok := sortableColumns[field]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported sort field %q", c.SortBy))
	}

	order := strings.ToLower(strings.TrimSpace(c.SortOrder))
	switch order {
	case "":
		order = defaultSortOrder
	case "asc", "desc":
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported sort order %q", c.SortOrder))
	}

	return column + " " + order, nil
}

// Validate verifies the criteria beyond what OrderClause covers.
func (c SearchCriteria) Validate() error {
	if _, err := c.OrderClause(); err != nil {
		return err
	}
	if c.Condition != nil && !c.Condition.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid condition %q", *c.Condition))
	}
	return nil
}
