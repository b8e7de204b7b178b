package domain

// EnforceRequest asks whether Subject, acting as Role, may perform Action
// on Resource.
type EnforceRequest struct {
	Subject  string `json:"subject"`
	Role     string `json:"role"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
