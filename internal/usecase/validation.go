package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/droppurity/leadsboard/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateAddInteractionInput(input AddInteractionInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}
	if strings.TrimSpace(input.LeadType) == "" {
		errs = append(errs, ValidationError{"lead_type", "is required"})
	} else if _, err := entity.ParseLeadType(input.LeadType); err != nil {
		errs = append(errs, ValidationError{"lead_type", "is invalid"})
	}
	if strings.TrimSpace(input.Notes) == "" {
		errs = append(errs, ValidationError{"notes", "is required"})
	}
	if strings.TrimSpace(input.InteractionType) == "" {
		errs = append(errs, ValidationError{"interaction_type", "is required"})
	} else if _, err := entity.ParseInteractionType(input.InteractionType); err != nil {
		errs = append(errs, ValidationError{"interaction_type", "must be Call, WhatsApp or Note"})
	}

	return errs
}

func ValidateUpdateLeadStatusInput(input UpdateLeadStatusInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}
	if strings.TrimSpace(input.LeadType) == "" {
		errs = append(errs, ValidationError{"lead_type", "is required"})
	} else if _, err := entity.ParseLeadType(input.LeadType); err != nil {
		errs = append(errs, ValidationError{"lead_type", "is invalid"})
	}
	if strings.TrimSpace(input.Status) == "" {
		errs = append(errs, ValidationError{"status", "is required"})
	} else if _, err := entity.ParseLeadStatus(input.Status); err != nil {
		errs = append(errs, ValidationError{"status", "must be New, Contacted, Converted or Closed"})
	}

	return errs
}

func ValidateLogContactAttemptInput(input LogContactAttemptInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}
	if strings.TrimSpace(input.LeadType) == "" {
		errs = append(errs, ValidationError{"lead_type", "is required"})
	} else if _, err := entity.ParseLeadType(input.LeadType); err != nil {
		errs = append(errs, ValidationError{"lead_type", "is invalid"})
	}
	switch entity.InteractionType(input.Method) {
	case entity.InteractionCall, entity.InteractionWhatsApp:
	case "":
		errs = append(errs, ValidationError{"method", "is required"})
	default:
		errs = append(errs, ValidationError{"method", "must be Call or WhatsApp"})
	}

	return errs
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	leadType, err := entity.ParseLeadType(input.LeadType)
	if strings.TrimSpace(input.LeadType) == "" {
		errs = append(errs, ValidationError{"lead_type", "is required"})
	} else if err != nil {
		errs = append(errs, ValidationError{"lead_type", "is invalid"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	switch leadType {
	case entity.LeadTypeContact:
		if strings.TrimSpace(input.Name) == "" {
			errs = append(errs, ValidationError{"name", "is required"})
		}
		if strings.TrimSpace(input.Message) == "" {
			errs = append(errs, ValidationError{"message", "is required"})
		}
	case entity.LeadTypeReferral:
		if strings.TrimSpace(input.ReferrerEmail) == "" {
			errs = append(errs, ValidationError{"referrer_email", "is required"})
		}
	case entity.LeadTypeFreeTrial, entity.LeadTypeSubscription:
		if strings.TrimSpace(input.Name) == "" {
			errs = append(errs, ValidationError{"name", "is required"})
		}
		if strings.TrimSpace(input.Phone) == "" {
			errs = append(errs, ValidationError{"phone", "is required"})
		}
	}

	return errs
}

func validationMessage(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
