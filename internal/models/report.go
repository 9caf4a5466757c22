package models

import "github.com/google/uuid"

// AgencyReport is the monthly rollup of one agency's sessions for a worker.
// NetSalary excludes km reimbursement; TotalToTransfer = NetSalary + KmPayment.
type AgencyReport struct {
	AgencyLabel     string  `json:"agency_label"`
	Hours           float64 `json:"hours"`
	GrossBase       float64 `json:"gross_base"`
	GrossComplete   float64 `json:"gross_complete"` // base + IFM + CP
	KmDistance      float64 `json:"km_distance"`
	KmPayment       float64 `json:"km_payment"`
	NetSalary       float64 `json:"net_salary"`
	TotalToTransfer float64 `json:"total_to_transfer"`
	SessionCount    int     `json:"session_count"`
}

// MonthlyReport aggregates a worker's sessions over one calendar month.
// The per-agency lines sum exactly to the worker-wide totals.
type MonthlyReport struct {
	WorkerID        uuid.UUID      `json:"worker_id"`
	Year            int            `json:"year"`
	Month           int            `json:"month"`
	Hours           float64        `json:"hours"`
	GrossBase       float64        `json:"gross_base"`
	GrossComplete   float64        `json:"gross_complete"`
	KmDistance      float64        `json:"km_distance"`
	KmPayment       float64        `json:"km_payment"`
	NetSalary       float64        `json:"net_salary"`
	TotalToTransfer float64        `json:"total_to_transfer"`
	SessionCount    int            `json:"session_count"`
	Agencies        []AgencyReport `json:"agencies"`
}
