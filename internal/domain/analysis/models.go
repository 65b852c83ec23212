package analysis

import (
	"time"
)

// OutcomeType classifies what the vision model recognized in an image.
type OutcomeType string

const (
	TypeTicket  OutcomeType = "ticket"
	TypeVehicle OutcomeType = "vehicle"
	TypeUnknown OutcomeType = "unknown"
	TypeError   OutcomeType = "error"
)

// UploadedFile is one validated file extracted from a multipart upload.
// It is immutable once built and consumed by exactly one analysis call.
type UploadedFile struct {
	FieldName    string
	OriginalName string
	MediaType    string
	Content      []byte
}

// Outcome is the per-image analysis result. There is always exactly one
// per uploaded file, in upload order, even when the analysis failed.
type Outcome struct {
	ImageID    string      `json:"image_id"`
	Type       OutcomeType `json:"type"`
	Confidence float64     `json:"confidence"`
	Data       interface{} `json:"data"`
}

// GenericData carries warnings for error and unknown outcomes.
type GenericData struct {
	Warnings []string `json:"warnings"`
}

type Merchant struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	VATNumber *string `json:"vat_number"`
}

type TicketInfo struct {
	Date             *string `json:"date"`
	Time             *string `json:"time"`
	Currency         *string `json:"currency"`
	CurrencyInferred bool    `json:"currency_inferred"`
}

type TicketItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence"`
}

type TaxLine struct {
	Name   string   `json:"name"`
	Rate   *float64 `json:"rate"`
	Base   *float64 `json:"base"`
	Amount *float64 `json:"amount"`
}

type Totals struct {
	Subtotal *float64  `json:"subtotal"`
	Tax      *float64  `json:"tax"`
	TaxLines []TaxLine `json:"tax_lines,omitempty"`
	Total    *float64  `json:"total"`
}

// TicketData is the structured extraction for a receipt image.
type TicketData struct {
	Merchant Merchant     `json:"merchant"`
	Ticket   TicketInfo   `json:"ticket"`
	Items    []TicketItem `json:"items"`
	Totals   Totals       `json:"totals"`
	RawText  string       `json:"raw_text"`
	Warnings []string     `json:"warnings"`
}

type VehicleAttrs struct {
	LicensePlate          *string `json:"license_plate"`
	PlateVisible          bool    `json:"plate_visible"`
	PlateUnreadableReason *string `json:"plate_unreadable_reason"`
	Country               *string `json:"country"`
	VehicleType           *string `json:"vehicle_type"`
	Brand                 *string `json:"brand"`
	Model                 *string `json:"model"`
	Color                 *string `json:"color"`
}

type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Detection struct {
	BoundingBox BoundingBox `json:"bounding_box"`
}

// VehicleData is the structured extraction for a vehicle image.
type VehicleData struct {
	Vehicle   VehicleAttrs `json:"vehicle"`
	Detection Detection    `json:"detection"`
	RawText   string       `json:"raw_text"`
	Warnings  []string     `json:"warnings"`
}

// Money is an amount in a single currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Summary aggregates a batch of outcomes. CombinedTotal is only present
// when at least two tickets share one non-null currency.
type Summary struct {
	TotalTickets     int            `json:"total_tickets"`
	VehiclesDetected int            `json:"vehicles_detected"`
	VehicleTypes     map[string]int `json:"vehicle_types"`
	CombinedTotal    *Money         `json:"combined_total,omitempty"`
}

type Meta struct {
	BatchID     string    `json:"batch_id"`
	ProcessedAt time.Time `json:"processed_at"`
	TotalImages int       `json:"total_images"`
}

// Envelope is the full response for one analyzed batch.
type Envelope struct {
	Meta    Meta      `json:"meta"`
	Results []Outcome `json:"results"`
	Summary Summary   `json:"summary"`
}
