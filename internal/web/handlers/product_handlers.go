package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shopfront/internal/api"
	"shopfront/internal/catalog"
	"shopfront/internal/models"
)

type productsPage struct {
	basePage
	Products   []models.Product
	Total      int
	Categories []string
	Search     string
	Category   string
	MinPrice   string
	MaxPrice   string
}

type productDetailPage struct {
	basePage
	Product models.Product
	History []models.HistoryEntry
}

type productFormPage struct {
	basePage
	Form        productForm
	FieldErrors []FieldError
	EditingID   int
	EditingSKU  string
}

// ProductsHandler renders the catalog. The full list is fetched once and the
// filter spec from the query string is applied locally, recomputed on every
// request.
func ProductsHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromRequest(r)
	client := backendFor(sess)
	page := productsPage{basePage: newBasePage(w, r)}

	products, err := client.Products(r.Context(), api.ProductQuery{})
	if redirectIfUnauthorized(w, r, err) {
		return
	}
	if err != nil {
		page.Error = api.Detail(err)
		render(w, "products.tmpl", page)
		return
	}

	categories, err := client.Categories(r.Context())
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load categories")
	}

	q := r.URL.Query()
	spec := catalog.FilterSpec{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		MinPrice: parseFloatPtr(q.Get("minPrice")),
		MaxPrice: parseFloatPtr(q.Get("maxPrice")),
	}

	page.Products = catalog.Filter(products, spec)
	page.Total = len(products)
	page.Categories = categories
	page.Search = spec.Search
	page.Category = spec.Category
	page.MinPrice = q.Get("minPrice")
	page.MaxPrice = q.Get("maxPrice")
	render(w, "products.tmpl", page)
}

func ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	sess, _ := SessionFromRequest(r)
	client := backendFor(sess)

	product, err := client.Product(r.Context(), id)
	if redirectIfUnauthorized(w, r, err) {
		return
	}
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			setFlash(w, "Product not found")
		} else {
			setFlash(w, api.Detail(err))
		}
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	page := productDetailPage{basePage: newBasePage(w, r), Product: product}
	if page.CanHistory {
		history, err := client.ProductHistory(r.Context(), id)
		if err != nil {
			logger.Warn().Err(err).Int("product_id", id).Msg("failed to load history")
		} else {
			page.History = history
		}
	}
	render(w, "product_detail.tmpl", page)
}

func NewProductHandler(w http.ResponseWriter, r *http.Request) {
	render(w, "product_form.tmpl", productFormPage{
		basePage: newBasePage(w, r),
		Form:     productForm{MinStockLevel: 10, FormToken: newFormToken()},
	})
}

func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	form, parseErrs := parseProductForm(r)
	if !consumeFormToken(form.FormToken) {
		// second submit of the same form, the first one already won
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	page := productFormPage{basePage: newBasePage(w, r), Form: form}
	if errs := append(parseErrs, form.check(true)...); len(errs) > 0 {
		form.FormToken = newFormToken()
		page.Form = form
		page.FieldErrors = errs
		w.WriteHeader(http.StatusBadRequest)
		render(w, "product_form.tmpl", page)
		return
	}

	sess, _ := SessionFromRequest(r)
	_, err := backendFor(sess).CreateProduct(r.Context(), api.ProductRequest{
		Name:          form.Name,
		SKU:           form.SKU,
		Description:   form.Description,
		Category:      form.Category,
		Price:         form.Price,
		Quantity:      form.Quantity,
		MinStockLevel: form.MinStockLevel,
		Supplier:      form.Supplier,
	})
	if redirectIfUnauthorized(w, r, err) {
		return
	}
	if err != nil {
		form.FormToken = newFormToken()
		page.Form = form
		page.Error = api.Detail(err)
		if api.IsValidation(err) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusBadGateway)
		}
		render(w, "product_form.tmpl", page)
		return
	}

	setFlash(w, "Product created")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func EditProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	sess, _ := SessionFromRequest(r)
	product, err := backendFor(sess).Product(r.Context(), id)
	if redirectIfUnauthorized(w, r, err) {
		return
	}
	if err != nil {
		setFlash(w, api.Detail(err))
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	render(w, "product_form.tmpl", productFormPage{
		basePage: newBasePage(w, r),
		Form: productForm{
			Name:          product.Name,
			Category:      product.Category,
			Description:   product.Description,
			Price:         product.Price,
			Quantity:      product.Quantity,
			MinStockLevel: product.MinStockLevel,
			Supplier:      product.Supplier,
			FormToken:     newFormToken(),
		},
		EditingID:  product.ID,
		EditingSKU: product.SKU,
	})
}

func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	form, parseErrs := parseProductForm(r)
	if !consumeFormToken(form.FormToken) {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}

	page := productFormPage{basePage: newBasePage(w, r), Form: form, EditingID: id}
	if errs := append(parseErrs, form.check(false)...); len(errs) > 0 {
		form.FormToken = newFormToken()
		page.Form = form
		page.FieldErrors = errs
		w.WriteHeader(http.StatusBadRequest)
		render(w, "product_form.tmpl", page)
		return
	}

	sess, _ := SessionFromRequest(r)
	// the SKU never travels on updates, it is write-once
	_, err = backendFor(sess).UpdateProduct(r.Context(), id, api.ProductUpdate{
		Name:          &form.Name,
		Description:   &form.Description,
		Category:      &form.Category,
		Price:         &form.Price,
		Quantity:      &form.Quantity,
		MinStockLevel: &form.MinStockLevel,
		Supplier:      &form.Supplier,
	})
	if redirectIfUnauthorized(w, r, err) {
		return
	}
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			setFlash(w, "Product not found")
			http.Redirect(w, r, "/products", http.StatusSeeOther)
			return
		}
		form.FormToken = newFormToken()
		page.Form = form
		page.Error = api.Detail(err)
		if api.IsValidation(err) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusBadGateway)
		}
		render(w, "product_form.tmpl", page)
		return
	}

	setFlash(w, "Product updated")
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	sess, _ := SessionFromRequest(r)
	err = backendFor(sess).DeleteProduct(r.Context(), id)
	if redirectIfUnauthorized(w, r, err) {
		return
	}
	switch {
	case errors.Is(err, api.ErrNotFound):
		setFlash(w, "Product not found")
	case err != nil:
		setFlash(w, api.Detail(err))
	default:
		setFlash(w, "Product deleted")
	}
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
