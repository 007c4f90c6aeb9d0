package server

import (
	"github.com/opyruso/nw-leaderboard-sub000/encode"
	"github.com/opyruso/nw-leaderboard-sub000/expand"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeNodeNotFound      = "NODE_NOT_FOUND"
	CodeInitialLoadFailed = "INITIAL_LOAD_FAILED"
	CodeExpansionFailed   = "EXPANSION_FAILED"
	CodeNotLoaded         = "GRAPH_NOT_LOADED"
	CodeSuperseded        = "SUPERSEDED"
	CodeInternal          = "INTERNAL_ERROR"
)

// OriginRequest selects the origin of a graph session.
type OriginRequest struct {
	Origin string `json:"origin" binding:"required"`
}

// GraphResponse is the state of one graph session.
type GraphResponse struct {
	SessionID string        `json:"sessionId"`
	Status    expand.Status `json:"status"`
	Scene     encode.Scene  `json:"scene"`
}

// TapResponse reports the outcome of a tap and the resulting scene.
type TapResponse struct {
	Action expand.Action `json:"action"`
	Status expand.Status `json:"status"`
	Scene  encode.Scene  `json:"scene"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Sessions int    `json:"sessions"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the machine-readable error code.
	Code string `json:"code,omitempty"`
}
