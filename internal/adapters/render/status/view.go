package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zainarain279/paws/internal/application"
)

func renderView(statuses []application.Status, s styles) string {
	lines := []string{
		s.title.Render("PAWS Accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderAccount(status, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(status application.Status, s styles) string {
	parts := []string{
		s.account.Render(accountTitle(status.Account.Name, string(status.Account.ID))),
	}

	if status.Err != nil {
		parts = append(parts, s.warning.Render(fmt.Sprintf("error: %v", status.Err)))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts, s.detail.Render(fmt.Sprintf("balance: %.0f PAWS", status.Balance)))
	parts = append(parts, walletLine(status, s))

	if status.Account.Proxy != "" {
		parts = append(parts, s.detail.Render("proxy: configured"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func walletLine(status application.Status, s styles) string {
	if status.WalletLinked {
		return s.linked.Render("wallet: linked")
	}
	if status.Account.Wallet == "" {
		return s.empty.Render("wallet: none configured")
	}
	return s.pending.Render("wallet: not linked yet")
}

func accountTitle(name string, id string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Sprintf("Account %s", id)
	}
	return fmt.Sprintf("%s (%s)", trimmed, id)
}
