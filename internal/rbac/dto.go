package rbac

// ResolvePermissionsDTO is the request body for the permission resolution
// endpoint. OrganizationID is optional: without it only the platform role is
// resolved.
type ResolvePermissionsDTO struct {
	OrganizationID string `json:"organizationId"`
}

// SwitchOrganizationDTO is the request body for the organization switch
// endpoint.
type SwitchOrganizationDTO struct {
	OrganizationID string `json:"organizationId"`
}

// SwitchOrganizationResponse is the status-flag-only success payload.
type SwitchOrganizationResponse struct {
	Success bool `json:"success"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d SwitchOrganizationDTO) Validate() error {
	if d.OrganizationID == "" {
		return ValidationError{Msg: "organizationId is required"}
	}
	return nil
}
