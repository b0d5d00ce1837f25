package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mobileriadardania/storefront/internal/catalog"
	"github.com/mobileriadardania/storefront/internal/webserver"
)

func registerProductRoutes(s *webserver.Server) {
	s.ApiGET("/products", listProducts)
	s.ApiGET("/products/:id", getProduct)
	s.ApiGET("/products/:id/inquiry", productInquiry)
	s.ApiPOST("/products", createProduct)
	s.ApiPUT("/products/:id", updateProduct)
	s.ApiDELETE("/products/:id", deleteProduct)
}

// listProducts returns every product, optionally filtered.
//
// @Summary list products
// @Tags Products
// @Param category query string false "Category, case insensitive"
// @Param q query string false "Search text, diacritics ignored"
// @Success 200 {array} domain.Product
// @Failure 500 {object} webserver.ErrorResponse
// @Router /api/products [get]
func listProducts(c echo.Context) error {
	var f catalog.Filter
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters", err)
	}
	items, err := GetAppContext(c).Catalog().List(c.Request().Context(), f)
	if err != nil {
		return failWith(c, err, "Failed to fetch products")
	}
	return ok(c, http.StatusOK, items)
}

// @Summary get a product
// @Tags Products
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} webserver.ErrorResponse
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/products/{id} [get]
func getProduct(c echo.Context) error {
	p, err := GetAppContext(c).Catalog().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failWith(c, err, "Failed to fetch product")
	}
	return ok(c, http.StatusOK, p)
}

// productInquiry returns the WhatsApp link the buy button opens.
//
// @Summary product purchase inquiry link
// @Tags Products
// @Param id path string true "Product ID"
// @Success 200 {object} whatsappResponse
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/products/{id}/inquiry [get]
func productInquiry(c echo.Context) error {
	appCtx := GetAppContext(c)
	p, err := appCtx.Catalog().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failWith(c, err, "Failed to fetch product")
	}
	return ok(c, http.StatusOK, whatsappResponse{WhatsappURL: appCtx.Links().InquiryLink(p)})
}

// @Summary create a product
// @Tags Products
// @Param product body catalog.ProductInput true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} webserver.ErrorResponse
// @Router /api/products [post]
func createProduct(c echo.Context) error {
	var in catalog.ProductInput
	if err := c.Bind(&in); err != nil {
		return failBind(c, err)
	}
	p, err := GetAppContext(c).Catalog().Create(c.Request().Context(), in)
	if err != nil {
		return failWith(c, err, "Failed to create product")
	}
	return ok(c, http.StatusCreated, p)
}

// updateProduct replaces every field of a product; omitted fields are
// cleared.
//
// @Summary replace a product
// @Tags Products
// @Param id path string true "Product ID"
// @Param product body catalog.ProductInput true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} webserver.ErrorResponse
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/products/{id} [put]
func updateProduct(c echo.Context) error {
	var in catalog.ProductInput
	if err := c.Bind(&in); err != nil {
		return failBind(c, err)
	}
	p, err := GetAppContext(c).Catalog().Replace(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return failWith(c, err, "Failed to update product")
	}
	return ok(c, http.StatusOK, p)
}

// @Summary delete a product
// @Tags Products
// @Param id path string true "Product ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} webserver.ErrorResponse
// @Router /api/products/{id} [delete]
func deleteProduct(c echo.Context) error {
	if err := GetAppContext(c).Catalog().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return failWith(c, err, "Failed to delete product")
	}
	return ok(c, http.StatusOK, messageResponse{Message: MsgDeleted})
}

// failBind reports undecodable bodies, including type mismatches such as
// a string where a list is expected, as validation failures.
func failBind(c echo.Context, err error) error {
	msg := "product validation failed: request body could not be decoded"
	if he, isHTTP := err.(*echo.HTTPError); isHTTP && he.Code == http.StatusUnsupportedMediaType {
		msg = "product validation failed: expected a JSON body"
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", msg, err)
}
