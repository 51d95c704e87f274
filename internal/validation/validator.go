// Package validation checks catalog payloads against the product schema and
// reports violations as catalogerr field errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog/internal/catalogerr"
	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultSellerDomains is the storefront allow-list used when none is configured.
var DefaultSellerDomains = []string{
	"example.com",
	"shop.com",
	"dellexclusive.in",
	"ecommerce.com",
	"mistore.in",
	"realmeofficial.in",
	"applestoreindia.in",
	"samsungshop.in",
	"oneplusstore.in",
	"nokiaofficial.in",
	"lgshop.in",
	"sonyofficial.in",
	"htcofficial.in",
	"motorolaofficial.in",
	"asusofficial.in",
	"dellstore.in",
	"hpstore.in",
	"lenovostore.in",
	"acerstore.in",
	"microsoftstore.in",
	"xiaomiofficial.in",
	"realme.com",
	"apple.com",
	"samsung.com",
	"oneplus.com",
	"nokia.com",
}

const (
	tagSellerDomain  = "seller_domain"
	tagDiscountRange = "discount_range"
)

// Validator wraps a go-playground validator configured for catalog records.
type Validator struct {
	validate *validator.Validate
	domains  map[string]struct{}
}

// New builds a Validator that accepts seller emails only from allowedDomains.
func New(allowedDomains []string) *Validator {
	v := &Validator{
		validate: validator.New(),
		domains:  make(map[string]struct{}, len(allowedDomains)),
	}
	for _, d := range allowedDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			v.domains[d] = struct{}{}
		}
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation(tagSellerDomain, v.sellerDomain)
	v.validate.RegisterStructValidation(discountRule,
		models.Product{}, models.CreateProductRequest{}, models.ProductUpdate{})
	return v
}

// AllowsDomain reports whether the domain of email is on the allow-list.
func (v *Validator) AllowsDomain(email string) bool {
	_, ok := v.domains[domainOf(email)]
	return ok
}

// ValidateCreate checks a full creation payload.
func (v *Validator) ValidateCreate(req *models.CreateProductRequest) error {
	return v.Struct(req)
}

// ValidateUpdate checks only the fields present in a sparse update.
func (v *Validator) ValidateUpdate(u *models.ProductUpdate) error {
	return v.Struct(u)
}

// ValidateProduct checks a complete record, typically the result of a merge.
func (v *Validator) ValidateProduct(p *models.Product) error {
	return v.Struct(p)
}

// Struct validates any tagged struct and translates failures into
// catalogerr.FieldErrors.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	out := make(catalogerr.FieldErrors, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		if seen[path] {
			continue
		}
		seen[path] = true
		out = append(out, translate(path, fe))
	}
	return out
}

func (v *Validator) sellerDomain(fl validator.FieldLevel) bool {
	return v.AllowsDomain(fl.Field().String())
}

// discountRule enforces the record-level discount range after the
// per-field checks have run.
func discountRule(sl validator.StructLevel) {
	var d *float64
	switch s := sl.Current().Interface().(type) {
	case models.Product:
		d = s.DiscountPercent
	case models.CreateProductRequest:
		d = s.DiscountPercent
	case models.ProductUpdate:
		d = s.DiscountPercent
	}
	if d != nil && (*d < 0 || *d > 100) {
		sl.ReportError(*d, "discount_percent", "DiscountPercent", tagDiscountRange, "")
	}
}

func translate(path string, fe validator.FieldError) *catalogerr.FieldError {
	switch fe.Tag() {
	case "uuid":
		return catalogerr.Format(path, "invalid UUID format")
	case "email":
		return catalogerr.Format(path, "value is not a valid email address")
	case "url":
		return catalogerr.Format(path, "must be a valid URL")
	case tagSellerDomain:
		return catalogerr.Domain(path, domainOf(stringValue(fe.Value())))
	case tagDiscountRange:
		return catalogerr.Constraint(path, "discount_percent must be between 0 and 100")
	case "required":
		return catalogerr.Constraint(path, "field required")
	case "min":
		return catalogerr.Constraint(path, fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "max":
		return catalogerr.Constraint(path, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "gte":
		return catalogerr.Constraint(path, fmt.Sprintf("must be greater than or equal to %s", fe.Param()))
	case "lte":
		return catalogerr.Constraint(path, fmt.Sprintf("must be less than or equal to %s", fe.Param()))
	case "oneof":
		return catalogerr.Constraint(path, fmt.Sprintf("must be one of [%s]", fe.Param()))
	default:
		return catalogerr.Constraint(path, fmt.Sprintf("failed on the '%s' tag", fe.Tag()))
	}
}

// fieldPath drops the top-level struct name: "ProductUpdate.seller.email"
// becomes "seller.email".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func stringValue(v any) string {
	if s, ok := v.(*string); ok && s != nil {
		return *s
	}
	return fmt.Sprint(v)
}

func domainOf(email string) string {
	at := strings.LastIndexByte(email, '@')
	return strings.ToLower(email[at+1:])
}

// ParseID accepts an identifier as a uuid.UUID or as its 36-character
// string form.
func ParseID(field string, v any) (uuid.UUID, error) {
	switch id := v.(type) {
	case uuid.UUID:
		if id == uuid.Nil {
			return uuid.Nil, catalogerr.Format(field, "identifier must not be the nil UUID")
		}
		return id, nil
	case *uuid.UUID:
		if id == nil {
			return uuid.Nil, catalogerr.Format(field, "identifier is missing")
		}
		return ParseID(field, *id)
	case string:
		if len(id) != 36 {
			return uuid.Nil, catalogerr.Format(field, "invalid UUID format")
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, catalogerr.Format(field, "invalid UUID format")
		}
		return parsed, nil
	default:
		return uuid.Nil, catalogerr.Format(field, fmt.Sprintf("unsupported identifier type %T", v))
	}
}
