package services

import (
	"errors"
	"reflect"
	"strings"

	"networkingbude/internal/domain"

	"github.com/go-playground/validator/v10"
)

// payloadValidators holds one validator per collection, each carrying that
// collection's SlotPayload rules.
var payloadValidators = map[domain.Collection]*validator.Validate{
	domain.CollectionEvents:  newPayloadValidator(domain.CollectionEvents),
	domain.CollectionContent: newPayloadValidator(domain.CollectionContent),
}

func newPayloadValidator(c domain.Collection) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidationMapRules(c.PayloadRules(), domain.SlotPayload{})
	return v
}

// normalizePayload trims free-text fields so whitespace-only values count as missing.
func normalizePayload(p domain.SlotPayload) domain.SlotPayload {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Location = strings.TrimSpace(p.Location)
	p.Organization = strings.TrimSpace(p.Organization)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	p.ExternalURL = strings.TrimSpace(p.ExternalURL)
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	p.Tags = tags
	return p
}

// validatePayload checks p against the collection's rules and returns a
// *domain.ValidationError naming every failing field.
func validatePayload(c domain.Collection, p domain.SlotPayload) error {
	v, ok := payloadValidators[c]
	if !ok {
		return domain.ErrInvalidInput
	}
	err := v.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &domain.ValidationError{Fields: fields}
}
