// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import "testing"

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	av := GetAvailableLocales()
	for _, k := range []string{"en", "de"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present: %v", k, av)
		}
	}
	if av["de"] != "Deutsch" {
		t.Fatalf("unexpected display name for de: %q", av["de"])
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	t.Cleanup(func() { Init("en") })

	if got := T("dialog.create_title"); got != "Create New Payment Method" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := T("search.found", 3); got != "Found 3 payment methods" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}
	if got := T("dialog.edit_title", "My Card"); got != `Edit payment method "My Card"` {
		t.Fatalf("unexpected edit title: %q", got)
	}

	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("dialog.edit_label"); got != "Speichern" {
		t.Fatalf("expected German 'Speichern', got %q", got)
	}
}

func TestT_UnknownIDAndFallback(t *testing.T) {
	Init("fr")
	t.Cleanup(func() { Init("en") })

	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("unknown id = %q", got)
	}
	if got := T("dialog.create_label"); got != "Create" {
		t.Fatalf("fallback = %q, want English", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	Init("en")
	en := catalogKeys(t, "locales/en.yaml")
	de := catalogKeys(t, "locales/de.yaml")
	for k := range en {
		if !de[k] {
			t.Fatalf("de.yaml lacks %q", k)
		}
	}
	for k := range de {
		if !en[k] {
			t.Fatalf("en.yaml lacks %q", k)
		}
	}
}
