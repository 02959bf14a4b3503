package domain

// DocumentViewKind is how a share-token page is presented to whoever opened it.
// It is chosen once per load.
type DocumentViewKind string

const (
	// OwnerPreview: the document owner is looking at their own link; no actions.
	OwnerPreview DocumentViewKind = "owner_preview"
	// RecipientActionable: the recipient can act on the document in its current status.
	RecipientActionable DocumentViewKind = "recipient_actionable"
	// RecipientTerminal: the recipient can only read.
	RecipientTerminal DocumentViewKind = "recipient_terminal"
)

// DocumentAction is something the recipient may do from the public viewer.
type DocumentAction string

const (
	ActionApprove DocumentAction = "approve"
	ActionAccept  DocumentAction = "accept"
	ActionReject  DocumentAction = "reject"
	ActionPay     DocumentAction = "pay"
)

// DocumentView is the selected presentation plus the actions it exposes.
type DocumentView struct {
	Kind    DocumentViewKind `json:"kind"`
	Actions []DocumentAction `json:"actions"`
}

// isOwner reports whether viewer is the authenticated owner ownerID.
func isOwner(viewer Session, ownerID string) bool {
	return viewer.IsAuthenticated() && viewer.UserID == ownerID
}

// SelectInvoiceView picks the view variant for invoice as seen by viewer.
func SelectInvoiceView(invoice *Invoice, viewer Session) DocumentView {
	if isOwner(viewer, invoice.UserID) {
		return DocumentView{Kind: OwnerPreview, Actions: []DocumentAction{}}
	}
	switch invoice.Status {
	case InvoiceStatusPending:
		return DocumentView{Kind: RecipientActionable, Actions: []DocumentAction{ActionApprove, ActionReject}}
	case InvoiceStatusApproved:
		return DocumentView{Kind: RecipientActionable, Actions: []DocumentAction{ActionPay}}
	default:
		return DocumentView{Kind: RecipientTerminal, Actions: []DocumentAction{}}
	}
}

// SelectContractView picks the view variant for contract as seen by viewer.
func SelectContractView(contract *Contract, viewer Session) DocumentView {
	if isOwner(viewer, contract.UserID) {
		return DocumentView{Kind: OwnerPreview, Actions: []DocumentAction{}}
	}
	if contract.AwaitsResponse() {
		return DocumentView{Kind: RecipientActionable, Actions: []DocumentAction{ActionAccept, ActionReject}}
	}
	return DocumentView{Kind: RecipientTerminal, Actions: []DocumentAction{}}
}

// Allows reports whether the view exposes action.
func (v DocumentView) Allows(action DocumentAction) bool {
	for _, a := range v.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Sender is the issuing owner's identity as shown on a public document.
type Sender struct {
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
}

// SenderFromProfile builds the public sender block.
func SenderFromProfile(p *Profile) Sender {
	if p == nil {
		return Sender{}
	}
	return Sender{Name: p.DisplayName(), BusinessName: p.BusinessName, Email: p.Email}
}

// PublicInvoice is an invoice resolved by share token with its selected view.
type PublicInvoice struct {
	Invoice *Invoice
	Sender  Sender
	View    DocumentView
}

// PublicContract is a contract resolved by share token with its selected view.
type PublicContract struct {
	Contract *Contract
	Sender   Sender
	View     DocumentView
}
