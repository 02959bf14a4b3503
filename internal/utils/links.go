package utils

import "strings"

// InvoiceShareURL is the public page of an invoice, addressed by its share token.
func InvoiceShareURL(publicURL, shareToken string) string {
	return strings.TrimRight(publicURL, "/") + "/invoice/" + shareToken
}

// ContractShareURL is the public page of a contract, addressed by its share token.
func ContractShareURL(publicURL, shareToken string) string {
	return strings.TrimRight(publicURL, "/") + "/contract/" + shareToken
}

// OwnerInvoicesURL is the owner's invoice list in the frontend.
func OwnerInvoicesURL(publicURL string) string {
	return strings.TrimRight(publicURL, "/") + "/invoices"
}

// OwnerContractsURL is the owner's contract list in the frontend.
func OwnerContractsURL(publicURL string) string {
	return strings.TrimRight(publicURL, "/") + "/contracts"
}
