package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Cause represents a boycott cause
type Cause struct {
	CauseID       string `json:"cause_id" dynamodbav:"cause_id" db:"cause_id" validate:"required"`
	Category      string `json:"category" dynamodbav:"category" db:"category" validate:"required"`
	CauseDesc     string `json:"cause_desc" dynamodbav:"cause_desc" db:"cause_desc" validate:"required"`
	FollowerCount int64  `json:"follower_count" dynamodbav:"follower_count" db:"follower_count" validate:"gte=0"`
}

// Validate validates the cause data
func (c *Cause) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("cause validation failed: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("cause validation failed: %w", err)
	}
	return nil
}
