package draft

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Record is the validated, normalized form of a draft: numerics coerced,
// free text sanitized, selections verified against the reference snapshot.
type Record struct {
	Name          string   `validate:"required,min=3"`
	Description   string   `validate:"-"`
	Price         float64  `validate:"gte=1"`
	DiscountPrice *float64 `validate:"omitempty,gt=0"`
	Stock         int      `validate:"gte=0"`
	SKU           string   `validate:"required,min=1"`
	Category      string   `validate:"required"`
	Warranty      string
	AgeGroup      *string
	Tags          []string
	Sizes         []string
	Specs         []SpecRow
}

// free text is stripped of any markup before it enters the payload
var sanitizer = bluemonday.StrictPolicy()

var validate = validator.New()

// Validate coerces and checks the draft synchronously, without touching the
// network. It returns the normalized record, or field-keyed error messages.
// Coercion failure on a numeric field is a field error, never a crash.
//
// discountPrice is deliberately not compared against price: the backend owns
// pricing rules and the editor has never enforced the relation.
func (d *Draft) Validate() (*Record, map[string]string) {

	fieldErrors := make(map[string]string)

	record := &Record{
		Name:        strings.TrimSpace(d.Fields.Name),
		Description: sanitizer.Sanitize(d.Fields.Description),
		SKU:         strings.TrimSpace(d.Fields.SKU),
		Category:    d.Fields.Category,
		Warranty:    strings.TrimSpace(d.Fields.Warranty),
		AgeGroup:    d.Fields.AgeGroup,
		Tags:        append([]string(nil), d.Tags...),
		Sizes:       append([]string(nil), d.Sizes...),
	}

	price, err := coerceFloat(d.Fields.Price)
	if err != nil {
		fieldErrors["price"] = "Price must be a number"
	} else {
		record.Price = price
	}

	if d.Fields.DiscountPrice != "" {
		discount, err := coerceFloat(d.Fields.DiscountPrice)
		if err != nil {
			fieldErrors["discountPrice"] = "Discount price must be a number"
		} else {
			record.DiscountPrice = &discount
		}
	}

	stock, err := coerceInt(d.Fields.Stock)
	if err != nil {
		fieldErrors["stock"] = "Stock must be a whole number"
	} else {
		record.Stock = stock
	}

	if err := validate.Struct(record); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				field, message := describeRuleError(verr)
				if _, taken := fieldErrors[field]; !taken {
					fieldErrors[field] = message
				}
			}
		}
	}

	if record.Category != "" && !d.knownCategory(record.Category) {
		fieldErrors["category"] = "Select a category"
	}

	for _, tagID := range record.Tags {
		if !d.knownTag(tagID) {
			fieldErrors["tags"] = "Unknown tag selected"
			break
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	for _, row := range d.FilteredSpecs() {
		record.Specs = append(record.Specs, SpecRow{
			Key:   strings.TrimSpace(row.Key),
			Value: sanitizer.Sanitize(row.Value),
		})
	}

	return record, nil
}

func coerceFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func coerceInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

func (d *Draft) knownCategory(id string) bool {
	for _, c := range d.Categories {
		if c.ID == id {
			return true
		}
	}

	return false
}

func (d *Draft) knownTag(id string) bool {
	for _, t := range d.TagOptions {
		if t.ID == id {
			return true
		}
	}

	return false
}

func describeRuleError(verr validator.FieldError) (string, string) {

	switch verr.Field() {
	case "Name":
		return "name", "Product name must be at least 3 characters"
	case "SKU":
		return "sku", "SKU is required"
	case "Price":
		return "price", "Price must be at least 1"
	case "DiscountPrice":
		return "discountPrice", "Discount price must be positive"
	case "Stock":
		return "stock", "Stock cannot be negative"
	case "Category":
		return "category", "Select a category"
	default:
		return strings.ToLower(verr.Field()), "Invalid value"
	}
}
