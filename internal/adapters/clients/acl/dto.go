package acl

// authorizeRequestDTO is the body of POST /api/v1/authorize.
type authorizeRequestDTO struct {
	Subject int64    `json:"subject"`
	Name    string   `json:"name,omitempty"`
	Roles   []string `json:"roles"`
	Action  string   `json:"action"`
	Scope   string   `json:"scope"`
}

// authorizeResponseDTO is the policy decision returned by the downstream API.
type authorizeResponseDTO struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
