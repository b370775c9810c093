package rest

// MintRequest is the body of a mint attempt
type MintRequest struct {
	// Wallet is the minter's base58 address
	Wallet string `json:"wallet" binding:"required"`
	// Identity is an optional off-chain identity hint, recorded with the mint
	Identity string `json:"identity"`
}

// PauseRequest toggles the collection's pause flag
type PauseRequest struct {
	Paused *bool `json:"paused" binding:"required"`
}

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// CollectionsResponse lists loaded collection IDs
type CollectionsResponse struct {
	Collections []string `json:"collections"`
}
