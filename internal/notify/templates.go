package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// dateLayout renders dates in mail bodies, e.g. "7 March 2026".
const dateLayout = "2 January 2006"

var (
	tripCreatedTmpl = template.Must(template.New("trip_created").Parse(
		`<p>Hello {{.OwnerName}}, your trip to <strong>{{.Destination}}</strong> has been created.</p>
<p>Dates: {{.Dates}}</p>
<p>Confirm the trip to send the invitations: <a href="{{.ConfirmURL}}">{{.ConfirmURL}}</a></p>`))

	invitationTmpl = template.Must(template.New("invitation").Parse(
		`<p>Hello {{.Name}}, you have been invited to a trip to <strong>{{.Destination}}</strong>.</p>
<p>Dates: {{.Dates}}</p>
<p>Confirm your presence: <a href="{{.ConfirmURL}}">{{.ConfirmURL}}</a></p>`))
)

// TripCreated is the data for the message sent to a trip owner on creation.
type TripCreated struct {
	OwnerName   string
	OwnerEmail  string
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
	ConfirmURL  string
}

// Invitation is the data for the message asking a participant to confirm.
type Invitation struct {
	Email       string
	Name        string
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
	ConfirmURL  string
}

// Composer renders messages, formatting dates in a fixed location.
type Composer struct {
	loc *time.Location
}

// NewComposer returns a Composer that formats dates in loc (UTC when nil).
func NewComposer(loc *time.Location) *Composer {
	if loc == nil {
		loc = time.UTC
	}
	return &Composer{loc: loc}
}

// TripCreated renders the owner's "trip created" message.
func (c *Composer) TripCreated(d TripCreated) (Message, error) {
	body, err := render(tripCreatedTmpl, map[string]any{
		"OwnerName":   d.OwnerName,
		"Destination": d.Destination,
		"Dates":       c.dateRange(d.StartsAt, d.EndsAt),
		"ConfirmURL":  d.ConfirmURL,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      d.OwnerEmail,
		Subject: fmt.Sprintf("Trip to %s created", d.Destination),
		HTML:    body,
	}, nil
}

// Invitation renders a participant's invitation.
func (c *Composer) Invitation(d Invitation) (Message, error) {
	body, err := render(invitationTmpl, map[string]any{
		"Name":        d.Name,
		"Destination": d.Destination,
		"Dates":       c.dateRange(d.StartsAt, d.EndsAt),
		"ConfirmURL":  d.ConfirmURL,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      d.Email,
		Subject: fmt.Sprintf("You are invited to a trip to %s", d.Destination),
		HTML:    body,
	}, nil
}

func (c *Composer) dateRange(start, end time.Time) string {
	return start.In(c.loc).Format(dateLayout) + " - " + end.In(c.loc).Format(dateLayout)
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
