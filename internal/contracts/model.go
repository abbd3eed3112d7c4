package contracts

import "time"

// Contract holds the per-user values filled into the rental
// contract template.
type Contract struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	TenantName string    `json:"tenantName"`
	RentAmount string    `json:"rentAmount"`
	StartDate  string    `json:"startDate"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TemplateValues returns the placeholder keys the contract template uses.
func (c Contract) TemplateValues() map[string]string {
	return map[string]string{
		"tenant_name": c.TenantName,
		"rent_amount": c.RentAmount,
		"start_date":  c.StartDate,
		"address":     c.Address,
	}
}
