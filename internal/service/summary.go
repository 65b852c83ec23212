package service

import (
	"math"

	"vision-batch-service/internal/domain/analysis"
)

// Summarize reduces a batch of outcomes into summary statistics.
// Error and unknown outcomes contribute to no counter.
func Summarize(outcomes []analysis.Outcome) analysis.Summary {
	var tickets []*analysis.TicketData
	vehicleTypes := map[string]int{}
	vehicles := 0

	for _, o := range outcomes {
		switch o.Type {
		case analysis.TypeTicket:
			data, _ := o.Data.(*analysis.TicketData)
			tickets = append(tickets, data)
		case analysis.TypeVehicle:
			vehicles++
			vehicleType := "unknown"
			if data, ok := o.Data.(*analysis.VehicleData); ok {
				if t := data.Vehicle.VehicleType; t != nil && *t != "" {
					vehicleType = *t
				}
			}
			vehicleTypes[vehicleType]++
		}
	}

	return analysis.Summary{
		TotalTickets:     len(tickets),
		VehiclesDetected: vehicles,
		VehicleTypes:     vehicleTypes,
		CombinedTotal:    combinedTotal(tickets),
	}
}

// combinedTotal sums ticket totals only when the batch has more than one
// ticket and every ticket carries the same non-null currency. A single
// missing currency voids the combination even if the rest agree.
func combinedTotal(tickets []*analysis.TicketData) *analysis.Money {
	if len(tickets) < 2 {
		return nil
	}

	var sum float64
	var currency string
	seen := false
	for _, t := range tickets {
		// An empty-string currency counts as missing, just like null.
		if t == nil || t.Ticket.Currency == nil || *t.Ticket.Currency == "" {
			return nil
		}
		if !seen {
			currency = *t.Ticket.Currency
			seen = true
		} else if currency != *t.Ticket.Currency {
			return nil
		}
		if t.Totals.Total != nil {
			sum += *t.Totals.Total
		}
	}

	return &analysis.Money{
		Amount:   math.Round(sum*100) / 100,
		Currency: currency,
	}
}
