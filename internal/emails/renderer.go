// Package emails renders the transactional HTML emails sent by the notification dispatcher.
package emails

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	accentBrand   = template.CSS("linear-gradient(90deg,#7c3aed,#a78bfa)")
	accentSuccess = template.CSS("linear-gradient(90deg,#059669,#34d399)")
	accentDanger  = template.CSS("linear-gradient(90deg,#dc2626,#f87171)")
)

// Data is the view model shared by every email template.
type Data struct {
	Accent              template.CSS
	BaseURL             string
	BaseHost            string
	Year                int
	ActionURL           string
	SenderName          string
	ClientName          string
	InvoiceNumber       string
	Amount              string
	DueDate             string
	RejectionReason     string
	ContractTitle       string
	ContractDescription string
	SignatureName       string
	SignedDate          string
}

// Renderer holds one parsed template per email type plus a generic fallback.
type Renderer struct {
	byType   map[domain.EmailType]*template.Template
	fallback *template.Template
}

var funcs = template.FuncMap{
	"row": func(label, value string) template.HTML {
		return template.HTML(fmt.Sprintf(
			`<tr><td style="padding:8px 0;color:#64748b;font-size:14px;width:130px;">%s</td><td style="padding:8px 0;color:#1e293b;font-size:14px;font-weight:600;">%s</td></tr>`,
			template.HTMLEscapeString(label), template.HTMLEscapeString(value)))
	},
	"badgeRow": func(label, badge, color string) template.HTML {
		return template.HTML(fmt.Sprintf(
			`<tr><td style="padding:8px 0;color:#64748b;font-size:14px;width:130px;">%s</td><td style="padding:8px 0;"><span style="display:inline-block;padding:3px 10px;border-radius:20px;background:%s15;color:%s;font-size:12px;font-weight:700;letter-spacing:0.5px;text-transform:uppercase;">%s</span></td></tr>`,
			template.HTMLEscapeString(label), template.HTMLEscapeString(color), template.HTMLEscapeString(color), template.HTMLEscapeString(badge)))
	},
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{byType: make(map[domain.EmailType]*template.Template)}
	types := []domain.EmailType{
		domain.EmailInvoiceSent, domain.EmailInvoiceApproved, domain.EmailInvoiceRejected,
		domain.EmailContractSent, domain.EmailContractAccepted, domain.EmailContractRejected,
		domain.EmailPaymentReceived,
	}
	for _, t := range types {
		tmpl, err := parse(string(t))
		if err != nil {
			return nil, err
		}
		r.byType[t] = tmpl
	}
	fallback, err := parse("default")
	if err != nil {
		return nil, err
	}
	r.fallback = fallback
	return r, nil
}

// MustNewRenderer is NewRenderer for package initialisation; the templates are embedded
// so a failure is a programming error.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func parse(name string) (*template.Template, error) {
	tmpl, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
	}
	return tmpl, nil
}

// Render executes the template of emailType, or the generic one for unknown types.
func (r *Renderer) Render(emailType domain.EmailType, data Data) (string, error) {
	tmpl, ok := r.byType[emailType]
	if !ok {
		tmpl = r.fallback
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", emailType, err)
	}
	return buf.String(), nil
}

// NewData builds the view model of a queued notification.
func NewData(nc *domain.NotificationContext, baseURL string, now time.Time) Data {
	baseURL = strings.TrimRight(baseURL, "/")
	d := Data{
		Accent:   accentBrand,
		BaseURL:  baseURL,
		BaseHost: strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://"),
		Year:     now.Year(),
	}
	if nc.Client != nil {
		d.ClientName = nc.Client.Name
	}
	if nc.Owner != nil {
		d.SenderName = nc.Owner.DisplayName()
	}
	if inv := nc.Invoice; inv != nil {
		d.InvoiceNumber = inv.Number()
		d.Amount = utils.FormatMoney(inv.Amount, inv.Currency)
		if inv.DueDate != nil {
			d.DueDate = inv.DueDate.Format("Jan 2, 2006")
		}
		if inv.RejectionReason != nil {
			d.RejectionReason = *inv.RejectionReason
		}
	}
	if c := nc.Contract; c != nil {
		d.ContractTitle = c.Title
		d.ContractDescription = c.Description
		if c.SignatureName != nil {
			d.SignatureName = *c.SignatureName
		}
		if c.SignedDate != nil {
			d.SignedDate = c.SignedDate.Format("Jan 2, 2006")
		}
		if c.RejectionReason != nil {
			d.RejectionReason = *c.RejectionReason
		}
	}

	switch nc.Record.EmailType {
	case domain.EmailInvoiceSent:
		if nc.Invoice != nil {
			d.ActionURL = utils.InvoiceShareURL(baseURL, nc.Invoice.ShareToken)
		}
	case domain.EmailContractSent:
		if nc.Contract != nil {
			d.ActionURL = utils.ContractShareURL(baseURL, nc.Contract.ShareToken)
		}
	case domain.EmailInvoiceApproved, domain.EmailPaymentReceived:
		d.Accent = accentSuccess
		d.ActionURL = utils.OwnerInvoicesURL(baseURL)
	case domain.EmailInvoiceRejected:
		d.Accent = accentDanger
		d.ActionURL = utils.OwnerInvoicesURL(baseURL)
	case domain.EmailContractAccepted:
		d.Accent = accentSuccess
		d.ActionURL = utils.OwnerContractsURL(baseURL)
	case domain.EmailContractRejected:
		d.Accent = accentDanger
		d.ActionURL = utils.OwnerContractsURL(baseURL)
	}
	if d.ActionURL == "" {
		d.ActionURL = baseURL
	}
	return d
}
