// Package i18n holds the fr/en label catalogues of the explorer and error codes.
package i18n

import (
	"context"

	"golang.org/x/text/language"
)

const DefaultLang = "fr"

var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

var catalogues = map[string]map[string]string{
	"fr": {
		"required":         "Requis",
		"invalid_value":    "Valeur invalide",
		"must_be_positive": "Doit être positif",
		"not_found":        "Introuvable",
		"conflict":         "Conflit",

		"client":    "Client",
		"site":      "Site",
		"building":  "Bâtiment",
		"level":     "Niveau",
		"location":  "Local",
		"equipment": "Équipement",

		"explorer":       "Explorateur",
		"children":       "Éléments",
		"no_children":    "Aucun élément",
		"equipment_list": "Équipements",
		"no_equipment":   "Aucun équipement",
		"code":           "Code",
		"libelle":        "Libellé",
		"statut":         "Statut",
		"etat_sante":     "État de santé",
		"famille":        "Famille",
		"search":         "Rechercher",
		"gmao_only":      "GMAO uniquement",
		"critical_only":  "Critiques uniquement",
		"filter":         "Filtrer",

		"non_commence": "Non commencé",
		"commence":     "Commencé",
		"en_cours":     "En cours",
		"termine":      "Terminé",
	},
	"en": {
		"required":         "Required",
		"invalid_value":    "Invalid value",
		"must_be_positive": "Must be positive",
		"not_found":        "Not found",
		"conflict":         "Conflict",

		"client":    "Client",
		"site":      "Site",
		"building":  "Building",
		"level":     "Level",
		"location":  "Location",
		"equipment": "Equipment",

		"explorer":       "Explorer",
		"children":       "Items",
		"no_children":    "No items",
		"equipment_list": "Equipment",
		"no_equipment":   "No equipment",
		"code":           "Code",
		"libelle":        "Label",
		"statut":         "Status",
		"etat_sante":     "Health",
		"famille":        "Family",
		"search":         "Search",
		"gmao_only":      "CMMS only",
		"critical_only":  "Critical only",
		"filter":         "Filter",

		"non_commence": "Not started",
		"commence":     "Started",
		"en_cours":     "In progress",
		"termine":      "Done",
	},
}

// T translates code for lang, falling back to French then to the code itself.
func T(lang, code string) string {
	if m, ok := catalogues[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalogues[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Supported reports whether lang has a catalogue.
func Supported(lang string) bool {
	_, ok := catalogues[lang]
	return ok
}

// DetectLanguage picks the best supported language of an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	base, _ := supported[idx].Base()
	return base.String()
}

type ctxKey struct{}

func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFromContext returns the request language, DefaultLang when unset.
func LangFromContext(ctx context.Context) string {
	if l, ok := ctx.Value(ctxKey{}).(string); ok && l != "" {
		return l
	}
	return DefaultLang
}
