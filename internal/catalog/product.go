package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/mobileriadardania/storefront/internal/domain"
)

// ProductInput is the writable part of a product as received from clients.
// Fields missing from the payload decode to their zero value, so a replace
// with an omitted field clears it.
type ProductInput struct {
	Title          string            `json:"title" validate:"notblank,max=200"`
	Subtitle       string            `json:"subtitle" validate:"max=200"`
	Description    string            `json:"description" validate:"max=20000"`
	Images         []string          `json:"images" validate:"dive,required,max=255"`
	Category       string            `json:"category" validate:"max=64"`
	Features       []string          `json:"features" validate:"dive,max=500"`
	Specifications map[string]string `json:"specifications" validate:"dive,keys,max=100,endkeys,max=2000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Validate checks in and returns the product to persist (without an id) or
// a *ValidationError. Text is stored exactly as sent. Image entries are
// reduced to bare filenames, and features or specifications that are blank
// are dropped.
func Validate(in ProductInput) (domain.Product, error) {
	in.Images = SanitizeImages(in.Images)
	in.Features = dropBlank(in.Features)
	if len(in.Specifications) > 0 {
		specs := make(map[string]string, len(in.Specifications))
		for k, v := range in.Specifications {
			if isBlank(k) {
				continue
			}
			specs[k] = v
		}
		in.Specifications = specs
	}

	if err := validate.Struct(in); err != nil {
		return domain.Product{}, toValidationError(err)
	}

	p := domain.Product{
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Description: in.Description,
		Images:      in.Images,
		Category:    in.Category,
	}
	if len(in.Features) > 0 {
		p.Features = in.Features
	}
	if len(in.Specifications) > 0 {
		p.Specifications = in.Specifications
	}
	return p, nil
}

// SanitizeImages reduces every entry to its last path element so that only
// bare filenames are stored. The result is never nil.
func SanitizeImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if i := strings.LastIndexAny(img, `/\`); i >= 0 {
			img = img[i+1:]
		}
		out = append(out, img)
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func dropBlank(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		if !isBlank(s) {
			out = append(out, s)
		}
	}
	return out
}

func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewValidationError("", err.Error())
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// normalize makes products read back from any backend look the same.
func normalize(p *domain.Product) {
	if p.Images == nil {
		p.Images = []string{}
	}
	if len(p.Features) == 0 {
		p.Features = nil
	}
	if len(p.Specifications) == 0 {
		p.Specifications = nil
	}
}
