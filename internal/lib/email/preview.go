package email

// PreviewData holds sample values for rendering each template locally.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Devin Sanders",
	},
	TemplateReservationConfirmed: {
		"GuestName":     "Devin Sanders",
		"PropertyTitle": "Speed lamp",
		"StartDate":     "2018-09-11",
		"EndDate":       "2018-09-26",
	},
}

// Preview renders a template with its sample data.
func (c *Client) Preview(templateName Template) (string, bool, error) {
	data, ok := PreviewData[templateName]
	if !ok {
		return "", false, nil
	}
	body, err := c.Render(templateName, data)
	return body, true, err
}
