package email

// Template names an embedded email template (templates/<name>.html).
type Template string

const (
	TemplateWelcome              Template = "welcome"
	TemplateReservationConfirmed Template = "reservation_confirmed"
)
