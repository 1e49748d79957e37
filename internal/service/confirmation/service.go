package confirmation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log"
	texttemplate "text/template"

	"blandselv-backend/internal/domain"
	"blandselv-backend/internal/invoice"
	"blandselv-backend/internal/mail"
)

// Service sends the order confirmation mail with the PDF invoice attached.
type Service struct {
	mailer mail.Mailer
	logger *log.Logger
}

func New(mailer mail.Mailer, logger *log.Logger) *Service {
	return &Service{mailer: mailer, logger: logger}
}

type emailData struct {
	OrderID string
	Name    string
	Items   []emailLine
	Total   string
	Pant    string
}

type emailLine struct {
	Slug     string
	Quantity int
	Total    string
}

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`Hej {{.Name}},

Tak for din bestilling hos Bland Selv.

Ordrenummer: {{.OrderID}}
{{range .Items}}
  {{.Slug}} x {{.Quantity}} - {{.Total}}
{{- end}}

{{if .Pant}}Heraf pant: {{.Pant}}
{{end}}Total: {{.Total}}

Din ordrebekræftelse er vedhæftet som PDF.

Venlig hilsen
Bland Selv
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<p>Hej {{.Name}},</p>
<p>Tak for din bestilling hos Bland Selv.</p>
<p><strong>Ordrenummer:</strong> {{.OrderID}}</p>
<table>
{{range .Items}}<tr><td>{{.Slug}}</td><td>x {{.Quantity}}</td><td>{{.Total}}</td></tr>
{{end}}</table>
{{if .Pant}}<p>Heraf pant: {{.Pant}}</p>{{end}}
<p><strong>Total: {{.Total}}</strong></p>
<p>Din ordrebekr&aelig;ftelse er vedh&aelig;ftet som PDF.</p>
<p>Venlig hilsen<br>Bland Selv</p>
`))

// Confirm renders the invoice and mails it to the customer. The caller is
// expected to log a returned error and carry on; order status is never
// rolled back over a failed mail.
func (s *Service) Confirm(ctx context.Context, o domain.Order) error {
	if o.CustomerDetails.Email == "" {
		return errors.New("order has no customer email")
	}

	msg := mail.Message{
		To:      o.CustomerDetails.Email,
		Subject: fmt.Sprintf("Ordrebekræftelse %s", o.OrderID),
	}

	pdf, err := invoice.Render(o)
	if err != nil {
		// Still send the confirmation itself.
		s.logger.Printf("render invoice for order %s: %v", o.OrderID, err)
	} else {
		msg.Attachments = []mail.Attachment{{
			Filename: fmt.Sprintf("faktura-%s.pdf", o.OrderID),
			Content:  pdf,
		}}
	}

	data := buildEmailData(o)
	var text, html bytes.Buffer
	if err := textBody.Execute(&text, data); err != nil {
		return fmt.Errorf("render text body: %w", err)
	}
	if err := htmlBody.Execute(&html, data); err != nil {
		return fmt.Errorf("render html body: %w", err)
	}
	msg.Text = text.String()
	msg.HTML = html.String()

	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

func buildEmailData(o domain.Order) emailData {
	name := o.CustomerDetails.Name
	if name == "" {
		name = "kunde"
	}
	data := emailData{
		OrderID: o.OrderID,
		Name:    name,
		Total:   formatKr(o.TotalPriceOre),
	}
	var pant int64
	for _, item := range o.BasketItems {
		data.Items = append(data.Items, emailLine{
			Slug:     item.Slug,
			Quantity: item.Quantity,
			Total:    formatKr(item.TotalPriceOre),
		})
		pant += item.TotalRecyclingFeeOre
	}
	if pant > 0 {
		data.Pant = formatKr(pant)
	}
	return data
}

func formatKr(ore int64) string {
	return fmt.Sprintf("%d,%02d kr.", ore/100, ore%100)
}
