package export

import (
	"bytes"
	"io"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"

	"github.com/sells-group/salesmix/internal/model"
)

// Rule separates messages in a batch.
var Rule = strings.Repeat("=", 80)

// MessageRenderer turns an outreach message into text.
type MessageRenderer interface {
	Render(msg model.OutreachMessage) (string, error)
}

// DefaultMessageTemplate is the built-in outreach email.
const DefaultMessageTemplate = `Subject: Product Recommendation for {{.CustomerID}}

Dear {{.CustomerID}},

We noticed that other {{.BusinessCategory}}s in {{.Location}} are finding great success with our {{.ProductCategory}} line.

Based on your current product mix ({{.CurrentProducts}}), we believe {{.ProductCategory}} would be an excellent addition to your inventory.

Other similar products that might interest you:
{{.SimilarProducts}}

Would you like to learn more about our {{.ProductCategory}} offerings? We'd be happy to provide samples or a personalized consultation.

Best regards,
Your Sales Team`

// TemplateRenderer renders messages with a text/template.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses text as a message template. Empty text uses
// DefaultMessageTemplate.
func NewTemplateRenderer(text string) (*TemplateRenderer, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultMessageTemplate
	}
	tmpl, err := template.New("message").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, eris.Wrap(err, "export: parse message template")
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render implements MessageRenderer.
func (r *TemplateRenderer) Render(msg model.OutreachMessage) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, msg); err != nil {
		return "", eris.Wrapf(err, "export: render message for %s", msg.CustomerID)
	}
	return strings.TrimSpace(buf.String()), nil
}

// WriteMessages renders every message and writes them separated by Rule.
func WriteMessages(w io.Writer, r MessageRenderer, msgs []model.OutreachMessage) error {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		text, err := r.Render(m)
		if err != nil {
			return err
		}
		parts = append(parts, text)
	}

	out := strings.Join(parts, "\n\n"+Rule+"\n\n")
	if out != "" {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return eris.Wrap(err, "export: write messages")
	}
	return nil
}
