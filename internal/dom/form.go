package dom

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
)

// DefaultSendingLabel is the pending label when the bundle has no form.sending.
const DefaultSendingLabel = "Enviando..."

// SubmitState is the state of the contact form's submit button.
type SubmitState struct {
	Disabled bool
	Label    string
}

// Submitting is the pending state entered on submit.
func Submitting(label string) SubmitState {
	if label == "" {
		label = DefaultSendingLabel
	}
	return SubmitState{Disabled: true, Label: label}
}

// ApplyContactForm stores the localized sending label on the #contact-form submit button
// and returns it. It returns "" when the page has no contact form.
func ApplyContactForm(doc *goquery.Document, messages i18n.Messages) string {
	form := doc.Find("#contact-form").First()
	if form.Length() == 0 {
		return ""
	}
	label := messages.StringOr("form.sending", DefaultSendingLabel)
	form.Find("button").First().SetAttr("data-sending-label", label)
	return label
}

// ApplySubmitState renders st onto the #contact-form submit button.
func ApplySubmitState(doc *goquery.Document, st SubmitState) {
	btn := doc.Find("#contact-form button").First()
	if btn.Length() == 0 {
		return
	}
	if st.Disabled {
		btn.SetAttr("disabled", "")
	} else {
		btn.RemoveAttr("disabled")
	}
	if st.Label != "" {
		btn.SetText(st.Label)
	}
}
