package quote

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/variant"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields under their JSON names so they match Field values
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("need", func(fl validator.FieldLevel) bool {
			_, ok := ParseNeed(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("lead", func(fl validator.FieldLevel) bool {
			_, ok := catalog.ParseLeadEquivalence(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("size", func(fl validator.FieldLevel) bool {
			_, ok := catalog.ParseSize(fl.Field().String())
			return ok
		})

		validate = v
	})
	return validate
}

// Validate checks req against its schema
func Validate(req *Request) FieldErrors {
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "", Code: "invalid"}}
	}

	out := make(FieldErrors, 0, len(verrs))
	seen := make(map[Field]bool, len(verrs))
	for _, fe := range verrs {
		field := Field(fieldName(fe))
		// dive errors on needs[0] collapse into the needs field
		if seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, FieldError{Field: field, Code: fe.Tag(), Param: fe.Param()})
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

// build converts a draft into a typed request. Values that cannot be parsed
// (quantity) and a grade or size the chosen product does not offer are
// reported as field errors alongside the schema errors.
func build(d *Draft, locale string, c Catalog) (*Request, FieldErrors) {
	req := &Request{
		Company:  strings.TrimSpace(d.Company),
		Contact:  strings.TrimSpace(d.Contact),
		Email:    strings.TrimSpace(d.Email),
		Phone:    strings.TrimSpace(d.Phone),
		Needs:    append([]Need(nil), d.Needs...),
		Product:  strings.TrimSpace(d.Product),
		Lead:     catalog.LeadEquivalence(strings.TrimSpace(d.Lead)),
		Size:     catalog.Size(strings.TrimSpace(d.Size)),
		Deadline: strings.TrimSpace(d.Deadline),
		Address:  strings.TrimSpace(d.Address),
		Notes:    strings.TrimSpace(d.Notes),
		Locale:   locale,
	}

	var parseErrs FieldErrors
	if q := strings.TrimSpace(d.Quantity); q != "" {
		n, err := strconv.Atoi(q)
		switch {
		case err != nil:
			parseErrs = append(parseErrs, FieldError{Field: FieldQuantity, Code: "integer"})
		case n <= 0:
			parseErrs = append(parseErrs, FieldError{Field: FieldQuantity, Code: "gt", Param: "0"})
		default:
			req.Quantity = n
		}
	}

	errs := append(parseErrs, Validate(req)...)
	errs = append(errs, checkVariant(req, c, errs)...)
	if len(errs) == 0 {
		return req, nil
	}
	return req, errs
}

// checkVariant reports a lead or size the selected product is not offered in.
// Values already rejected by the schema are not reported twice.
func checkVariant(req *Request, c Catalog, prior FieldErrors) FieldErrors {
	if c == nil || req.Product == "" {
		return nil
	}
	p, ok := c.BySlug(req.Product)
	if !ok {
		return nil
	}

	var out FieldErrors
	if req.Lead != "" && !prior.Has(FieldLead) {
		if _, offered := variant.VariantForLead(p, req.Lead); !offered {
			out = append(out, FieldError{Field: FieldLead, Code: "variant"})
			return out
		}
	}
	if req.Lead != "" && req.Size != "" && !prior.Has(FieldSize) {
		if !variant.IsSizeValidForLead(p, req.Lead, req.Size) {
			out = append(out, FieldError{Field: FieldSize, Code: "variant"})
		}
	}
	return out
}
