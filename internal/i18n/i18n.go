// Package i18n provides internationalization support for the basket service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Conflict",
			"error.timeout":              "Request timed out",
			"error.validation.basket":    "Invalid basket: every item needs a product id and a positive quantity",
			"error.product_not_found":    "Product not found",
			"error.pharmacy_not_found":   "Pharmacy not found",
			"error.duplicate_minsan":     "A product with this minsan code already exists",
			"error.item_not_present":     "The product is not in the basket",
			"error.storage_unavailable":  "Storage is temporarily unavailable",

			// Success messages
			"success.basket_optimized": "Basket optimization completed successfully",
		},
		"it": {
			// Error messages
			"error.invalid_request":      "Richiesta non valida",
			"error.invalid_request_body": "Corpo della richiesta non valido",
			"error.internal_error":       "Si è verificato un errore imprevisto",
			"error.not_found":            "Non trovato",
			"error.rate_limit_exceeded":  "Troppe richieste, riprova più tardi",
			"error.conflict":             "Conflitto",
			"error.timeout":              "Richiesta scaduta",
			"error.validation.basket":    "Carrello non valido: ogni riga richiede un id prodotto e una quantità positiva",
			"error.product_not_found":    "Prodotto non trovato",
			"error.pharmacy_not_found":   "Farmacia non trovata",
			"error.duplicate_minsan":     "Esiste già un prodotto con questo codice minsan",
			"error.item_not_present":     "Il prodotto non è nel carrello",
			"error.storage_unavailable":  "Archiviazione temporaneamente non disponibile",

			// Success messages
			"success.basket_optimized": "Ottimizzazione del carrello completata con successo",
		},
	}
}
