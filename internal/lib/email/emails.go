package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(to, "Welcome to LightBnB!", TemplateWelcome, map[string]string{
		"UserName": name,
	})
}

// ReservationDetails fills the reservation confirmation template.
type ReservationDetails struct {
	GuestName     string
	PropertyTitle string
	StartDate     string
	EndDate       string
}

// SendReservationConfirmedEmail confirms a booking to the guest.
func (c *Client) SendReservationConfirmedEmail(to string, details ReservationDetails) error {
	return c.SendEmail(to, "Your LightBnB reservation is confirmed", TemplateReservationConfirmed, map[string]string{
		"GuestName":     details.GuestName,
		"PropertyTitle": details.PropertyTitle,
		"StartDate":     details.StartDate,
		"EndDate":       details.EndDate,
	})
}
