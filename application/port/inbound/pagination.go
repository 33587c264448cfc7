package inbound

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PaginationInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PageRequest is the page/limit pair shared by every list endpoint.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps the page and limit and returns the row offset.
func (p *PageRequest) Normalize() int {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return (p.Page - 1) * p.Limit
}

func (p PageRequest) Info(total int) PaginationInfo {
	return PaginationInfo{Page: p.Page, Limit: p.Limit, Total: total}
}
