package service

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"vision-batch-service/internal/domain/analysis"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func ticketOutcome(id string, total *float64, currency *string) analysis.Outcome {
	return analysis.Outcome{
		ImageID:    id,
		Type:       analysis.TypeTicket,
		Confidence: 0.9,
		Data: &analysis.TicketData{
			Ticket: analysis.TicketInfo{Currency: currency},
			Totals: analysis.Totals{Total: total},
		},
	}
}

func vehicleOutcome(id string, vehicleType *string) analysis.Outcome {
	return analysis.Outcome{
		ImageID:    id,
		Type:       analysis.TypeVehicle,
		Confidence: 0.9,
		Data: &analysis.VehicleData{
			Vehicle: analysis.VehicleAttrs{VehicleType: vehicleType},
		},
	}
}

var _ = Describe("Summarize", func() {
	var (
		outcomes []analysis.Outcome
		summary  analysis.Summary
	)

	JustBeforeEach(func() {
		summary = Summarize(outcomes)
	})

	When("two tickets share one currency", func() {
		BeforeEach(func() {
			outcomes = []analysis.Outcome{
				ticketOutcome("img_1", floatPtr(10), strPtr("EUR")),
				ticketOutcome("img_2", floatPtr(5), strPtr("EUR")),
			}
		})

		It("counts the tickets", func() {
			Expect(summary.TotalTickets).To(Equal(2))
		})

		It("emits the combined total", func() {
			Expect(summary.CombinedTotal).NotTo(BeNil())
			Expect(summary.CombinedTotal.Amount).To(Equal(15.0))
			Expect(summary.CombinedTotal.Currency).To(Equal("EUR"))
		})
	})

	When("tickets use different currencies", func() {
		BeforeEach(func() {
			outcomes = []analysis.Outcome{
				ticketOutcome("img_1", floatPtr(10), strPtr("EUR")),
				ticketOutcome("img_2", floatPtr(5), strPtr("USD")),
			}
		})

		It("omits the combined total", func() {
			Expect(summary.CombinedTotal).To(BeNil())
		})
	})

	When("one ticket has no currency", func() {
		BeforeEach(func() {
			outcomes = []analysis.Outcome{
				ticketOutcome("img_1", floatPtr(10), strPtr("EUR")),
				ticketOutcome("img_2", floatPtr(5), nil),
			}
		})

		It("omits the combined total even though the others agree", func() {
			Expect(summary.CombinedTotal).To(BeNil())
		})
	})

	When("the first ticket's currency is the empty string", func() {
		BeforeEach(func() {
			outcomes = []analysis.Outcome{
				ticketOutcome("img_1", floatPtr(10), strPtr("")),
				ticketOutcome("img_2", floatPtr(5), strPtr("EUR")),
			}
		})

		It("treats it as missing and omits the combined total", func() {
			Expect(summary.CombinedTotal).To(BeNil())
		})
	})

	When("the last ticket's currency is the empty string", func() {
		BeforeEach(func() {
			outcomes = []analysis.Outcome{
				ticketOutcome("img_1", floatPtr(10), strPtr("EUR")),
				ticketOutcome("img_2", floatPtr(5), strPtr("")),
			}
		})

		It("treats it as missing and omits the combined total", func() {
			Expect(summary.CombinedTotal).To(BeNil())
		})
	})

	When("there is only a single ticket", func() {
		BeforeEach(func() {
			outcomes = []analysis.Outcome{
				ticketOutcome("img_1", floatPtr(10), strPtr("EUR")),
			}
		})

		It("never emits a combined total", func() {
			Expect(summary.TotalTickets).To(Equal(1))
			Expect(summary.CombinedTotal).To(BeNil())
		})
	})

	When("a ticket total is missing", func() {
		BeforeEach(func() {
			outcomes = []analysis.Outcome{
				ticketOutcome("img_1", floatPtr(10.556), strPtr("EUR")),
				ticketOutcome("img_2", nil, strPtr("EUR")),
			}
		})

		It("treats the missing total as zero and rounds to cents", func() {
			Expect(summary.CombinedTotal).NotTo(BeNil())
			Expect(summary.CombinedTotal.Amount).To(Equal(10.56))
		})
	})

	When("the batch mixes vehicles and failures", func() {
		BeforeEach(func() {
			outcomes = []analysis.Outcome{
				vehicleOutcome("img_1", strPtr("car")),
				vehicleOutcome("img_2", strPtr("car")),
				vehicleOutcome("img_3", strPtr("truck")),
				vehicleOutcome("img_4", nil),
				{ImageID: "img_5", Type: analysis.TypeError, Data: &analysis.GenericData{Warnings: []string{"boom"}}},
				{ImageID: "img_6", Type: analysis.TypeUnknown, Data: &analysis.GenericData{}},
			}
		})

		It("counts vehicles only", func() {
			Expect(summary.VehiclesDetected).To(Equal(4))
			Expect(summary.TotalTickets).To(BeZero())
		})

		It("buckets a missing vehicle type as unknown", func() {
			Expect(summary.VehicleTypes).To(Equal(map[string]int{
				"car":     2,
				"truck":   1,
				"unknown": 1,
			}))
		})
	})
})
