package model

import (
	"encoding/json"
	"time"
)

// Enquiry is a question left by a site visitor, optionally answered by the admin.
type Enquiry struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Question   string     `json:"question"`
	Answer     *string    `json:"answer"`
	IsAnswered bool       `json:"is_answered"`
	IsVisible  *bool      `json:"is_visible"`
	CreatedAt  time.Time  `json:"created_at"`
	AnsweredAt *time.Time `json:"answered_at"`
}

// CreateEnquiryRequest is the public payload. Only name and question are accepted.
type CreateEnquiryRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=150"`
	Question string `json:"question" binding:"required,notblank,max=5000"`
}

// UpdateEnquiryRequest answers or un-answers an enquiry.
// HasAnswer reports whether the body contained an "answer" key at all,
// which selects between the two update modes.
type UpdateEnquiryRequest struct {
	Answer    *string `json:"answer"`
	IsVisible *bool   `json:"is_visible" binding:"required"`
	HasAnswer bool    `json:"-"`
}

func (r *UpdateEnquiryRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateEnquiryRequest

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*r = UpdateEnquiryRequest(p)
	_, r.HasAnswer = keys["answer"]
	return nil
}
