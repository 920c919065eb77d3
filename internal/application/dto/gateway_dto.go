package dto

// GatewayRequest body para /api/db/query y /api/db/command.
type GatewayRequest struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// CommandResponse resultado de un comando de escritura.
type CommandResponse struct {
	ID      int64 `json:"id"`
	Changes int64 `json:"changes"`
}
