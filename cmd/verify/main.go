// Package main checks the compiled-in course menu for consistency: every
// option resolves to an action and every label fits the Cloud API limits.
package main

import (
	"fmt"
	"os"

	"github.com/garyellow/whatsapp-course-bot/internal/menu"
	"github.com/garyellow/whatsapp-course-bot/internal/whatsapp"
)

// Verification results
type verifyResult struct {
	name    string
	passed  bool
	message string
}

func main() {
	fmt.Println("WhatsApp Course Bot - Menu Consistency Verification")
	fmt.Println("===================================================")

	results := runChecks()

	fmt.Println("\nVerification Results:")
	fmt.Println("=====================")

	passedCount := 0
	failedCount := 0

	for _, result := range results {
		status := "FAIL"
		if result.passed {
			status = "ok  "
			passedCount++
		} else {
			failedCount++
		}
		fmt.Printf("[%s] %s: %s\n", status, result.name, result.message)
	}

	fmt.Printf("\nSummary: %d passed, %d failed\n", passedCount, failedCount)

	if failedCount > 0 {
		os.Exit(1)
	}
}

func runChecks() []verifyResult {
	var results []verifyResult
	results = append(results, verifyButtons(menu.ProgramPrompt)...)
	results = append(results, verifyList("UG", menu.UGList, menu.ActionUGList)...)
	results = append(results, verifyList("PG", menu.PGList, menu.ActionPGList)...)
	results = append(results, verifyUniqueIDs()...)
	return results
}

// verifyButtons checks the program prompt buttons resolve and fit.
func verifyButtons(prompt menu.Prompt) []verifyResult {
	results := []verifyResult{
		lengthResult("Prompt body", prompt.Body, whatsapp.MaxInteractiveBodyLength),
		{
			name:    "Prompt button count",
			passed:  len(prompt.Buttons) > 0 && len(prompt.Buttons) <= whatsapp.MaxReplyButtonCount,
			message: fmt.Sprintf("%d buttons (max %d)", len(prompt.Buttons), whatsapp.MaxReplyButtonCount),
		},
	}

	for _, b := range prompt.Buttons {
		entry, ok := menu.LookupButton(b.ID)
		results = append(results,
			verifyResult{
				name:    "Button " + b.ID + " resolves",
				passed:  ok && entry.Action != menu.ActionNone,
				message: fmt.Sprintf("action=%s", entry.Action),
			},
			lengthResult("Button "+b.ID+" title", b.Title, whatsapp.MaxButtonTitleLength),
		)
	}
	return results
}

// verifyList checks a course list is reachable from a button and every row
// resolves to a non-empty text reply.
func verifyList(label string, list menu.List, via menu.Action) []verifyResult {
	reachable := false
	for _, b := range menu.ProgramPrompt.Buttons {
		if entry, ok := menu.LookupButton(b.ID); ok && entry.Action == via {
			reachable = true
		}
	}

	results := []verifyResult{
		{
			name:    label + " list reachable",
			passed:  reachable,
			message: fmt.Sprintf("opened by %s", via),
		},
		lengthResult(label+" list body", list.Body, whatsapp.MaxInteractiveBodyLength),
		lengthResult(label+" list button", list.Button, whatsapp.MaxListButtonLength),
		lengthResult(label+" section title", list.SectionTitle, whatsapp.MaxSectionTitleLength),
		{
			name:    label + " row count",
			passed:  len(list.Rows) > 0 && len(list.Rows) <= whatsapp.MaxListRowCount,
			message: fmt.Sprintf("%d rows (max %d)", len(list.Rows), whatsapp.MaxListRowCount),
		},
	}

	for _, row := range list.Rows {
		entry, ok := menu.LookupRow(row.ID)
		results = append(results,
			verifyResult{
				name:    "Row " + row.ID + " resolves",
				passed:  ok && entry.Action == menu.ActionText && entry.Text != "",
				message: fmt.Sprintf("%q", entry.Text),
			},
			lengthResult("Row "+row.ID+" title", row.Title, whatsapp.MaxRowTitleLength),
			lengthResult("Row "+row.ID+" reply", entry.Text, whatsapp.MaxTextBodyLength),
		)
	}
	return results
}

// verifyUniqueIDs checks no ID is used twice; replies carry only the ID.
func verifyUniqueIDs() []verifyResult {
	seen := make(map[string]int)
	for _, b := range menu.ProgramPrompt.Buttons {
		seen[b.ID]++
	}
	for _, list := range []menu.List{menu.UGList, menu.PGList} {
		for _, row := range list.Rows {
			seen[row.ID]++
		}
	}

	var dupes []string
	for id, n := range seen {
		if n > 1 {
			dupes = append(dupes, id)
		}
	}

	return []verifyResult{{
		name:    "Menu IDs unique",
		passed:  len(dupes) == 0,
		message: fmt.Sprintf("%d IDs, duplicates: %v", len(seen), dupes),
	}}
}

func lengthResult(name, text string, limit int) verifyResult {
	n := len([]rune(text))
	return verifyResult{
		name:    name + " length",
		passed:  n > 0 && n <= limit,
		message: fmt.Sprintf("%d runes (max %d)", n, limit),
	}
}
