package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/responses"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/validators"
	productsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/products"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/logger"
)

type createProductRequest struct {
	Title             string           `json:"title" validate:"required,min=3,max=255"`
	Description       string           `json:"description" validate:"required"`
	CategoryID        string           `json:"category_id" validate:"required,uuid"`
	MaterialID        *string          `json:"material_id,omitempty" validate:"omitempty,uuid"`
	Quantity          int              `json:"quantity" validate:"required,min=1"`
	Unit              *string          `json:"unit,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	PriceNegotiable   bool             `json:"price_negotiable"`
	Condition         string           `json:"condition" validate:"required"`
	ManufacturingDate *time.Time       `json:"manufacturing_date,omitempty"`
	LocationCity      *string          `json:"location_city,omitempty"`
	LocationState     *string          `json:"location_state,omitempty"`
	Pincode           *string          `json:"pincode,omitempty" validate:"omitempty,len=6"`
	Specifications    map[string]any   `json:"specifications,omitempty"`
}

func (req createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id")
	}

	var materialID *uuid.UUID
	if req.MaterialID != nil {
		mid, err := uuid.Parse(*req.MaterialID)
		if err != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid material_id")
		}
		materialID = &mid
	}

	condition, err := enums.ParseProductCondition(strings.TrimSpace(req.Condition))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
	}

	return productsvc.CreateProductInput{
		Title:             req.Title,
		Description:       req.Description,
		CategoryID:        categoryID,
		MaterialID:        materialID,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		Price:             req.Price,
		PriceNegotiable:   req.PriceNegotiable,
		Condition:         condition,
		ManufacturingDate: req.ManufacturingDate,
		LocationCity:      req.LocationCity,
		LocationState:     req.LocationState,
		Pincode:           req.Pincode,
		Specifications:    req.Specifications,
	}, nil
}

type updateProductRequest struct {
	Title             *string          `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Description       *string          `json:"description,omitempty"`
	CategoryID        *string          `json:"category_id,omitempty" validate:"omitempty,uuid"`
	MaterialID        *string          `json:"material_id,omitempty" validate:"omitempty,uuid"`
	Quantity          *int             `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Unit              *string          `json:"unit,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	PriceNegotiable   *bool            `json:"price_negotiable,omitempty"`
	Condition         *string          `json:"condition,omitempty"`
	ManufacturingDate *time.Time       `json:"manufacturing_date,omitempty"`
	LocationCity      *string          `json:"location_city,omitempty"`
	LocationState     *string          `json:"location_state,omitempty"`
	Pincode           *string          `json:"pincode,omitempty" validate:"omitempty,len=6"`
	Specifications    map[string]any   `json:"specifications,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
	Status            *string          `json:"status,omitempty"`
}

func (req updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Title:             req.Title,
		Description:       req.Description,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		Price:             req.Price,
		PriceNegotiable:   req.PriceNegotiable,
		ManufacturingDate: req.ManufacturingDate,
		LocationCity:      req.LocationCity,
		LocationState:     req.LocationState,
		Pincode:           req.Pincode,
		Specifications:    req.Specifications,
		IsActive:          req.IsActive,
	}

	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id")
		}
		input.CategoryID = &cid
	}
	if req.MaterialID != nil {
		mid, err := uuid.Parse(*req.MaterialID)
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid material_id")
		}
		input.MaterialID = &mid
	}
	if req.Condition != nil {
		condition, err := enums.ParseProductCondition(strings.TrimSpace(*req.Condition))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		input.Condition = &condition
	}
	if req.Status != nil {
		status, err := enums.ParseProductStatus(strings.TrimSpace(*req.Status))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}

	return input, nil
}

// ProductsCreate handles listing creation for verified sellers.
func ProductsCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), uid, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductsUpdate applies a partial update to an owned listing.
func ProductsUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), uid, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductsDelete soft-deletes an owned listing.
func ProductsDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), uid, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ProductsDetail returns a public listing and bumps its view counter.
func ProductsDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetDetail(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductsSearch runs the public marketplace search.
func ProductsSearch(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		criteria, err := searchCriteriaFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Search(r.Context(), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func searchCriteriaFromQuery(r *http.Request) (productsvc.SearchCriteria, error) {
	skip, err := validators.ParseQueryInt(r, "skip", 0, 0, 1<<30)
	if err != nil {
		return productsvc.SearchCriteria{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil {
		return productsvc.SearchCriteria{}, err
	}
	categoryID, err := validators.ParseQueryUUID(r, "category_id")
	if err != nil {
		return productsvc.SearchCriteria{}, err
	}
	materialID, err := validators.ParseQueryUUID(r, "material_id")
	if err != nil {
		return productsvc.SearchCriteria{}, err
	}
	minPrice, err := validators.ParseQueryDecimal(r, "min_price")
	if err != nil {
		return productsvc.SearchCriteria{}, err
	}
	maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
	if err != nil {
		return productsvc.SearchCriteria{}, err
	}

	var condition *enums.ProductCondition
	if raw := strings.TrimSpace(r.URL.Query().Get("condition")); raw != "" {
		parsed, err := enums.ParseProductCondition(raw)
		if err != nil {
			return productsvc.SearchCriteria{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		condition = &parsed
	}

	return productsvc.SearchCriteria{
		Query:      strings.TrimSpace(r.URL.Query().Get("q")),
		CategoryID: categoryID,
		MaterialID: materialID,
		City:       strings.TrimSpace(r.URL.Query().Get("city")),
		State:      strings.TrimSpace(r.URL.Query().Get("state")),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Condition:  condition,
		SortBy:     strings.TrimSpace(r.URL.Query().Get("sort_by")),
		SortOrder:  strings.TrimSpace(r.URL.Query().Get("sort_order")),
		Skip:       skip,
		Limit:      limit,
	}, nil
}

// ProductsMine lists every listing owned by the caller, active or not.
func ProductsMine(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListMine(r.Context(), uid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductsUploadImages ingests multipart image files for an owned listing.
func ProductsUploadImages(svc productsvc.Service, cfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(cfg.MaxUploadMB) << 20

	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload"))
			return
		}

		headers := r.MultipartForm.File["images"]
		if len(headers) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no image files provided"))
			return
		}

		files := make([]productsvc.UploadFile, 0, len(headers))
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable file part"))
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable file part"))
				return
			}
			files = append(files, productsvc.UploadFile{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}

		makePrimary, _ := strconv.ParseBool(r.FormValue("make_primary"))

		result, err := svc.UploadImages(r.Context(), uid, productID, files, makePrimary)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
