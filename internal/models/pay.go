package models

// PayBreakdown is the full monetary decomposition of one work session.
// All amounts are rounded to 2 decimals per component before any summing.
// KmPayment is a non-taxable reimbursement and is never subject to the net
// deduction.
type PayBreakdown struct {
	DayHours        float64 `json:"day_hours"`
	NightHours      float64 `json:"night_hours"`
	GrossBase       float64 `json:"gross_base"`
	IFMAmount       float64 `json:"ifm_amount"`
	CPAmount        float64 `json:"cp_amount"`
	GrossTotal      float64 `json:"gross_total"`
	NetBase         float64 `json:"net_base"`
	NetIFM          float64 `json:"net_ifm"`
	NetCP           float64 `json:"net_cp"`
	NetSalary       float64 `json:"net_salary"`
	PayableDistance float64 `json:"payable_distance"`
	KmPayment       float64 `json:"km_payment"`
	NetTotal        float64 `json:"net_total"`
}
