package models

// Requests for pulse HTTP endpoints. Defined in domain for consistency and reuse.

type PulseRequest struct {
	Keyword string `query:"keyword" json:"keyword" validate:"required,min=2,max=120"`
	Days    int    `query:"days" json:"days" default:"30" validate:"gte=2,lte=365"`
}

type ScanRequest struct {
	Keywords    []string `json:"keywords" validate:"required,min=1,max=50,dive,min=2,max=120"`
	Days        int      `json:"days" default:"30" validate:"gte=2,lte=365"`
	Concurrency int      `json:"concurrency" default:"8" validate:"gte=1,lte=32"`
	Async       bool     `json:"async"`
}

type HistoryRequest struct {
	Keyword string `query:"keyword" json:"keyword" validate:"required,min=2,max=120"`
	From    string `query:"from" json:"from"`
	To      string `query:"to" json:"to"`
	Limit   int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
}
