package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Invitation holds the event details sent to each attendee.
type Invitation struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	MeetLink    string
}

// TimeLayout is used for start and end times in invitation bodies.
const TimeLayout = "Mon, Jan 2, 2006, 3:04 PM MST"

var invitationTemplate = template.Must(template.New("invitation").Parse(
	`<p>You have been invited to a meeting:</p>
<p><strong>Title:</strong> {{.Summary}}</p>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Start Time:</strong> {{.Start}}</p>
<p><strong>End Time:</strong> {{.End}}</p>
<p><strong>Meeting Link:</strong> <a href="{{.MeetLink}}">{{.MeetLink}}</a></p>
`))

// Subject returns the invitation subject line.
func (inv Invitation) Subject() string {
	return "Invitation: " + inv.Summary
}

// RenderHTML renders the invitation body with times shown in loc.
func (inv Invitation) RenderHTML(loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}

	data := struct {
		Summary     string
		Description string
		Start       string
		End         string
		MeetLink    string
	}{
		Summary:     inv.Summary,
		Description: inv.Description,
		Start:       inv.Start.In(loc).Format(TimeLayout),
		End:         inv.End.In(loc).Format(TimeLayout),
		MeetLink:    inv.MeetLink,
	}

	var buf bytes.Buffer
	if err := invitationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render invitation: %w", err)
	}
	return buf.String(), nil
}
