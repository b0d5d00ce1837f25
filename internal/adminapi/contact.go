package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mobileriadardania/storefront/internal/webserver"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func registerContactRoutes(s *webserver.Server) {
	s.ApiPOST("/contact", sendContact)
}

// sendContact turns the contact form into a WhatsApp link. Nothing is
// delivered server side.
//
// @Summary build a contact deep link
// @Tags Contact
// @Param contact body contactRequest true "Contact form"
// @Success 200 {object} whatsappResponse
// @Failure 400 {object} webserver.ErrorResponse
// @Router /api/contact [post]
func sendContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", MsgFieldsRequired, err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FIELD", MsgFieldsRequired, nil)
	}
	link, err := GetAppContext(c).Links().ContactLink(req.Name, req.Email, req.Message)
	if err != nil {
		return failWith(c, err, "Failed to build contact link")
	}
	return ok(c, http.StatusOK, whatsappResponse{WhatsappURL: link})
}
