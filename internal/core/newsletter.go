package core

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxSubscriptions is how many subscriptions are retained.
const DefaultMaxSubscriptions = 50

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type (
	SubscriptionRequest struct {
		Name     string `json:"name" validate:"min=2"`
		Email    string `json:"email" validate:"emailshape"`
		Interest string `json:"interest" validate:"required"`
	}

	Subscription struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Interest  string    `json:"interest"`
		CreatedAt time.Time `json:"date"`
	}

	// ValidationError carries every problem found in one request.
	ValidationError struct {
		Messages []string
	}
)

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

var fieldMessages = map[string]string{
	"Name":     "Name must be at least 2 characters",
	"Email":    "Please enter a valid email address",
	"Interest": "Please select an interest",
}

// NewValidator returns a validator with the rules used by subscription
// requests registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

// Normalize trims surrounding whitespace from every field.
func (r SubscriptionRequest) Normalize() SubscriptionRequest {
	return SubscriptionRequest{
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Interest: strings.TrimSpace(r.Interest),
	}
}

// Validate checks a normalized request and returns a *ValidationError
// listing the messages in field order.
func (r SubscriptionRequest) Validate(v *validator.Validate) error {
	err := v.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = true
	}
	verr := &ValidationError{}
	for _, field := range []string{"Name", "Email", "Interest"} {
		if failed[field] {
			verr.Messages = append(verr.Messages, fieldMessages[field])
		}
	}
	return verr
}

// AppendCapped appends sub and keeps only the limit most recent entries.
func AppendCapped(subs []Subscription, sub Subscription, limit int) []Subscription {
	subs = append(subs, sub)
	if limit > 0 && len(subs) > limit {
		subs = append([]Subscription(nil), subs[len(subs)-limit:]...)
	}
	return subs
}
