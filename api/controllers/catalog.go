package controllers

import (
	"net/http"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/responses"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/catalog"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/logger"
)

// CatalogCategories lists the active product categories.
func CatalogCategories(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		rows, err := repo.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories"))
			return
		}

		responses.WriteSuccess(w, catalog.CategoriesFromModels(rows))
	}
}

// CatalogMaterials lists the active material taxonomy.
func CatalogMaterials(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		rows, err := repo.ListMaterials(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list materials"))
			return
		}

		responses.WriteSuccess(w, catalog.MaterialsFromModels(rows))
	}
}
