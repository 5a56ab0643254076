package services

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type ExportOptions struct {
	Format        string
	IncludeAudits bool
	ClientID      string
}

// ExportRecord is one flattened equipment row. The audit fields describe the
// latest version and are only filled when audits are requested.
type ExportRecord struct {
	Code                 string `json:"code"`
	Libelle              string `json:"libelle"`
	Type                 string `json:"type"`
	Famille              string `json:"famille"`
	SousFamille          string `json:"sousFamille"`
	Marque               string `json:"marque"`
	Modele               string `json:"modele"`
	NumeroSerie          string `json:"numeroSerie"`
	DomaineTechnique     string `json:"domaineTechnique"`
	Statut               string `json:"statut"`
	EtatSante            string `json:"etatSante"`
	Quantite             int    `json:"quantite"`
	InclureGMAO          bool   `json:"inclureGMAO"`
	EstCritique          bool   `json:"estCritique"`
	FrequenceMaintenance int    `json:"frequenceMaintenance"`
	DerniereMaintenance  string `json:"derniereMaintenance"`
	ProchaineMaintenance string `json:"prochaineMaintenance"`
	Client               string `json:"client"`
	Site                 string `json:"site"`
	Building             string `json:"building"`
	Level                string `json:"level"`
	Location             string `json:"location"`

	AuditCount        int    `json:"auditCount,omitempty"`
	LastAuditVersion  int    `json:"lastAuditVersion,omitempty"`
	LastAuditDate     string `json:"lastAuditDate,omitempty"`
	LastAuditAuditeur string `json:"lastAuditAuditeur,omitempty"`
	LastAuditStatut   string `json:"lastAuditStatut,omitempty"`
}

func (o *ExportOptions) normalize() error {
	o.Format = strings.ToLower(trim(o.Format))
	if o.Format == "" {
		o.Format = FormatJSON
	}
	v := validation.Violations{}
	validation.OneOf("format", o.Format, []string{FormatJSON, FormatCSV}, v)
	return check(v)
}

// Export flattens equipment, optionally scoped to a client, into export records.
func (s *EquipmentService) Export(ctx context.Context, opts ExportOptions) ([]ExportRecord, ExportOptions, error) {
	if err := opts.normalize(); err != nil {
		return nil, opts, err
	}
	items, err := s.store.ListWithAudits(ctx, trim(opts.ClientID))
	if err != nil {
		return nil, opts, err
	}
	records := make([]ExportRecord, 0, len(items))
	for i := range items {
		records = append(records, flatten(&items[i], opts.IncludeAudits))
	}
	return records, opts, nil
}

func flatten(e *models.Equipment, withAudits bool) ExportRecord {
	r := ExportRecord{
		Code:                 e.Code,
		Libelle:              e.Libelle,
		Type:                 e.Type,
		Famille:              e.Famille,
		SousFamille:          e.SousFamille,
		Marque:               e.Marque,
		Modele:               e.Modele,
		NumeroSerie:          e.NumeroSerie,
		DomaineTechnique:     e.DomaineTechnique,
		Statut:               e.Statut,
		EtatSante:            e.EtatSante,
		Quantite:             e.Quantite,
		InclureGMAO:          e.InclureGMAO,
		EstCritique:          e.EstCritique,
		FrequenceMaintenance: e.FrequenceMaintenance,
		DerniereMaintenance:  date(e.DerniereMaintenance),
		ProchaineMaintenance: date(e.ProchaineMaintenance),
	}
	if loc := e.Location; loc != nil {
		r.Location = loc.Name
		if lvl := loc.Level; lvl != nil {
			r.Level = lvl.Name
			if b := lvl.Building; b != nil {
				r.Building = b.Name
				if site := b.Site; site != nil {
					r.Site = site.Name
					if site.Client != nil {
						r.Client = site.Client.Name
					}
				}
			}
		}
	}
	if withAudits && len(e.Audits) > 0 {
		latest := e.Audits[0]
		for _, a := range e.Audits[1:] {
			if a.Version > latest.Version {
				latest = a
			}
		}
		r.AuditCount = len(e.Audits)
		r.LastAuditVersion = latest.Version
		r.LastAuditDate = latest.DateAudit.Format(time.DateOnly)
		r.LastAuditAuditeur = latest.Auditeur
		r.LastAuditStatut = latest.StatutGlobal
	}
	return r
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

type csvColumn struct {
	header string
	value  func(r *ExportRecord) string
}

var baseColumns = []csvColumn{
	{"code", func(r *ExportRecord) string { return r.Code }},
	{"libelle", func(r *ExportRecord) string { return r.Libelle }},
	{"type", func(r *ExportRecord) string { return r.Type }},
	{"famille", func(r *ExportRecord) string { return r.Famille }},
	{"sousFamille", func(r *ExportRecord) string { return r.SousFamille }},
	{"marque", func(r *ExportRecord) string { return r.Marque }},
	{"modele", func(r *ExportRecord) string { return r.Modele }},
	{"numeroSerie", func(r *ExportRecord) string { return r.NumeroSerie }},
	{"domaineTechnique", func(r *ExportRecord) string { return r.DomaineTechnique }},
	{"statut", func(r *ExportRecord) string { return r.Statut }},
	{"etatSante", func(r *ExportRecord) string { return r.EtatSante }},
	{"quantite", func(r *ExportRecord) string { return strconv.Itoa(r.Quantite) }},
	{"inclureGMAO", func(r *ExportRecord) string { return strconv.FormatBool(r.InclureGMAO) }},
	{"estCritique", func(r *ExportRecord) string { return strconv.FormatBool(r.EstCritique) }},
	{"frequenceMaintenance", func(r *ExportRecord) string { return strconv.Itoa(r.FrequenceMaintenance) }},
	{"derniereMaintenance", func(r *ExportRecord) string { return r.DerniereMaintenance }},
	{"prochaineMaintenance", func(r *ExportRecord) string { return r.ProchaineMaintenance }},
	{"client", func(r *ExportRecord) string { return r.Client }},
	{"site", func(r *ExportRecord) string { return r.Site }},
	{"building", func(r *ExportRecord) string { return r.Building }},
	{"level", func(r *ExportRecord) string { return r.Level }},
	{"location", func(r *ExportRecord) string { return r.Location }},
}

var auditColumns = []csvColumn{
	{"auditCount", func(r *ExportRecord) string { return strconv.Itoa(r.AuditCount) }},
	{"lastAuditVersion", func(r *ExportRecord) string { return strconv.Itoa(r.LastAuditVersion) }},
	{"lastAuditDate", func(r *ExportRecord) string { return r.LastAuditDate }},
	{"lastAuditAuditeur", func(r *ExportRecord) string { return r.LastAuditAuditeur }},
	{"lastAuditStatut", func(r *ExportRecord) string { return r.LastAuditStatut }},
}

// WriteCSV writes a header line then one line per record.
func WriteCSV(w io.Writer, records []ExportRecord, withAudits bool) error {
	cols := baseColumns
	if withAudits {
		cols = append(append([]csvColumn{}, baseColumns...), auditColumns...)
	}
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeCSV(c.header))
	}
	b.WriteByte('\n')
	for i := range records {
		for j, c := range cols {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(EscapeCSV(c.value(&records[i])))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// EscapeCSV quotes a field containing a comma, quote or newline and doubles embedded quotes.
func EscapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
