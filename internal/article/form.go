// Package article holds the state of the article preview-card form:
// field values, per-field validation and the preview toggle.
package article

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Field names a form input.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldImageURL    Field = "imageUrl"
	FieldCTAText     Field = "ctaText"
	FieldLinkOutURL  Field = "linkOutUrl"
)

const (
	TitleLimit       = 40
	DescriptionLimit = 150

	DefaultImageURL = "https://images.pexels.com/photos/518543/pexels-photo-518543.jpeg"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidCTA   = errors.New("invalid call-to-action")
)

// CTAOptions is the closed set of call-to-action labels.
var CTAOptions = []string{"Watch Live", "Breaking News", "Read More"}

// Fields lists every form field in display order.
var Fields = []Field{FieldTitle, FieldDescription, FieldImageURL, FieldCTAText, FieldLinkOutURL}

// RequiredFields are the fields checked on submit.
var RequiredFields = []Field{FieldTitle, FieldDescription, FieldImageURL, FieldLinkOutURL}

var urlPattern = regexp.MustCompile(`^https?://.+`)

var errorMessages = map[Field]string{
	FieldTitle:       "title long is required",
	FieldDescription: "desc text is required",
	FieldImageURL:    "image url is required",
	FieldLinkOutURL:  "link out url is required",
}

// ValidateTitle reports whether s is a usable title.
func ValidateTitle(s string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n > 0 && n <= TitleLimit
}

// ValidateDescription reports whether s is a usable description.
func ValidateDescription(s string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n > 0 && n <= DescriptionLimit
}

// ValidateURL accepts http and https URLs with something after the scheme.
func ValidateURL(s string) bool {
	t := strings.TrimSpace(s)
	return t != "" && urlPattern.MatchString(t)
}

// Validate applies the predicate for field to value. Fields without a
// constraint are always valid.
func Validate(field Field, value string) bool {
	switch field {
	case FieldTitle:
		return ValidateTitle(value)
	case FieldDescription:
		return ValidateDescription(value)
	case FieldImageURL, FieldLinkOutURL:
		return ValidateURL(value)
	default:
		return true
	}
}

// Form is the mutable state of one mounted article form.
type Form struct {
	values         map[Field]string
	errors         map[Field]string
	previewVisible bool
}

// NewForm returns a form holding the initial values.
func NewForm() *Form {
	return &Form{
		values: map[Field]string{
			FieldTitle:       "",
			FieldDescription: "",
			FieldImageURL:    DefaultImageURL,
			FieldCTAText:     CTAOptions[0],
			FieldLinkOutURL:  DefaultImageURL,
		},
		errors: map[Field]string{},
	}
}

func knownField(f Field) bool {
	return slices.Contains(Fields, f)
}

// Value returns the stored, untrimmed value of field.
func (f *Form) Value(field Field) string {
	return f.values[field]
}

// UpdateField stores value verbatim and re-validates that field only.
func (f *Form) UpdateField(field Field, value string) error {
	if !knownField(field) {
		return fmt.Errorf("update %q: %w", field, ErrUnknownField)
	}
	if field == FieldCTAText && !slices.Contains(CTAOptions, value) {
		return fmt.Errorf("update %q to %q: %w", field, value, ErrInvalidCTA)
	}
	f.values[field] = value
	if Validate(field, value) {
		delete(f.errors, field)
	} else {
		f.errors[field] = errorMessages[field]
	}
	return nil
}

// CharsRemaining returns limit minus the current length for the counted
// fields. ok is false for fields without a counter.
func (f *Form) CharsRemaining(field Field) (remaining int, ok bool) {
	var limit int
	switch field {
	case FieldTitle:
		limit = TitleLimit
	case FieldDescription:
		limit = DescriptionLimit
	default:
		return 0, false
	}
	return limit - utf8.RuneCountInString(f.values[field]), true
}

// Submit validates every required field. On success the preview becomes
// visible; otherwise the error set is rebuilt and the preview flag is left
// alone.
func (f *Form) Submit() bool {
	errs := map[Field]string{}
	for _, field := range RequiredFields {
		if !Validate(field, f.values[field]) {
			errs[field] = errorMessages[field]
		}
	}
	if len(errs) > 0 {
		f.errors = errs
		return false
	}
	f.previewVisible = true
	return true
}

// Error returns the current message for field, if any.
func (f *Form) Error(field Field) (string, bool) {
	msg, ok := f.errors[field]
	return msg, ok
}

// Errors returns a copy of the current validation errors.
func (f *Form) Errors() map[Field]string {
	out := make(map[Field]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) PreviewVisible() bool { return f.previewVisible }

// NextCTA moves the call-to-action to the following option, wrapping.
func (f *Form) NextCTA() string { return f.shiftCTA(1) }

// PrevCTA moves the call-to-action to the preceding option, wrapping.
func (f *Form) PrevCTA() string { return f.shiftCTA(-1) }

func (f *Form) shiftCTA(dir int) string {
	i := slices.Index(CTAOptions, f.values[FieldCTAText])
	if i < 0 {
		i = 0
	}
	next := CTAOptions[(i+dir+len(CTAOptions))%len(CTAOptions)]
	_ = f.UpdateField(FieldCTAText, next)
	return next
}
