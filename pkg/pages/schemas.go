package pages

import "github.com/goliatone/go-eventforms/pkg/model"

// Form identifiers.
const (
	BookingFormID  = "book-ticket"
	CreationFormID = "create-event"
)

// TicketTypes are the options offered by the booking form.
var TicketTypes = []string{"Standard", "VIP", "Student"}

// BookingSchema declares the ticket booking form.
func BookingSchema() model.FormSchema {
	return model.FormSchema{
		ID:          BookingFormID,
		Title:       "Book Ticket",
		SubmitLabel: "Book Ticket",
		Fields: []model.Field{
			{
				Name:        "ticketType",
				Type:        model.FieldTypeString,
				Label:       "Ticket Type",
				Placeholder: "Select ticket type",
				Default:     "",
				Enum:        append([]string(nil), TicketTypes...),
				Constraints: []model.Constraint{model.Required("Ticket type is required")},
			},
			{
				Name:        "quantity",
				Type:        model.FieldTypeInteger,
				Label:       "Quantity",
				Placeholder: "Quantity",
				Default:     int64(1),
				Constraints: []model.Constraint{
					model.Required("Quantity is required"),
					model.Min(1, "Quantity must be at least 1"),
				},
			},
			{
				Name:        "cardNumber",
				Type:        model.FieldTypeString,
				Label:       "Card Number",
				Placeholder: "Card Number",
				Default:     "",
				Constraints: model.ExactLength(16, "Card number must be 16 digits"),
			},
			{
				Name:        "expiryDate",
				Type:        model.FieldTypeString,
				Label:       "Expiry Date (MM/YY)",
				Placeholder: "MM/YY",
				Description: "Use the <strong>MM/YY</strong> printed on the card.",
				Default:     "",
				Constraints: []model.Constraint{
					model.MinLength(5, "Expiry date is required"),
					model.MaxLength(5, "Expiry date must be in MM/YY format"),
				},
			},
			{
				Name:        "cvv",
				Type:        model.FieldTypeString,
				Format:      model.FormatPassword,
				Label:       "CVV",
				Placeholder: "CVV",
				Default:     "",
				Constraints: model.ExactLength(3, "CVV must be 3 digits"),
			},
		},
	}
}

// CreationSchema declares the event creation form.
func CreationSchema() model.FormSchema {
	return model.FormSchema{
		ID:          CreationFormID,
		Title:       "Create Event",
		SubmitLabel: "Create Event",
		Fields: []model.Field{
			{
				Name:        "name",
				Type:        model.FieldTypeString,
				Label:       "Event Name",
				Placeholder: "Event Name",
				Default:     "",
				Constraints: []model.Constraint{model.Required("Event name is required")},
			},
			{
				Name:        "date",
				Type:        model.FieldTypeDate,
				Label:       "Event Date",
				Placeholder: "YYYY-MM-DD",
				Description: "Accepts <em>YYYY-MM-DD</em> or a full timestamp.",
				Constraints: []model.Constraint{
					model.Required("Event date is required"),
					model.FutureDate("Event date must be in the future"),
				},
			},
			{
				Name:        "location",
				Type:        model.FieldTypeString,
				Label:       "Location",
				Placeholder: "Location",
				Default:     "",
				Constraints: []model.Constraint{model.Required("Location is required")},
			},
			{
				Name:        "description",
				Type:        model.FieldTypeString,
				Format:      model.FormatTextArea,
				Label:       "Description",
				Placeholder: "Description",
				Default:     "",
				Constraints: []model.Constraint{model.Required("Description is required")},
			},
		},
	}
}
