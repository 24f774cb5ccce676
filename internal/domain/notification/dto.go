package notification

// ============= Response DTOs =============

type MailListResponse struct {
	Mails []Mail `json:"mails"`
	Total int    `json:"total"`
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
