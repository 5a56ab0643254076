// Package flows holds the single-shot AI flows (audit report, presentation,
// asset extraction from a QR code picture) and the local QR code generator.
// Each flow is one blocking request without retry or streaming.
package flows

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/config"
	"github.com/diewo77/gmao/internal/validation"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Flow names, as reported to the observer.
const (
	FlowAuditReport  = "generateAuditReport"
	FlowPresentation = "generatePresentation"
	FlowAssetDetails = "extractAssetDetailsFromQrCode"
	FlowGenerateQR   = "generateQrCode"
)

const qrFailureMessage = "failed to generate QR code"

// Observer is notified of every flow invocation.
type Observer interface {
	ObserveFlow(name string, err error)
}

type AuditReportInput struct {
	AuditText string `json:"auditText"`
}

type AuditReportOutput struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"actionItems"`
}

type PresentationInput struct {
	AuditData  string `json:"auditData"`
	ClientName string `json:"clientName"`
}

type PresentationOutput struct {
	Presentation string `json:"presentation"`
}

type AssetDetailsInput struct {
	QRCodeDataURI string `json:"qrCodeDataUri"`
}

type AssetDetailsOutput struct {
	AssetDetails string `json:"assetDetails"`
}

type QRCodeInput struct {
	EquipmentID string `json:"equipmentId"`
}

type QRCodeOutput struct {
	QRCodeDataURI string `json:"qrCodeDataUri"`
}

type Flows struct {
	model       Model
	textModel   string
	visionModel string
	log         *zap.Logger
	observer    Observer
}

// New wires the flows. model may be nil when no API key is configured; the
// AI flows then fail with a provider error while GenerateQRCode keeps working.
func New(model Model, cfg config.AIConfig, log *zap.Logger, observer Observer) *Flows {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flows{model: model, textModel: cfg.Model, visionModel: cfg.VisionModel, log: log, observer: observer}
}

func (f *Flows) observe(name string, err error) {
	if err != nil {
		f.log.Warn("flow failed", zap.String("flow", name), zap.Error(err))
	}
	if f.observer != nil {
		f.observer.ObserveFlow(name, err)
	}
}

// generate runs one request and decodes the JSON answer into out.
func (f *Flows) generate(ctx context.Context, name, failure string, req Request, out any) (err error) {
	defer func() { f.observe(name, err) }()
	if f.model == nil {
		return apperr.Provider(failure, ErrNotConfigured)
	}
	text, err := f.model.Generate(ctx, req)
	if err != nil {
		return apperr.Provider(failure, err)
	}
	if err := json.Unmarshal([]byte(stripFences(text)), out); err != nil {
		return apperr.Provider(failure, err)
	}
	return nil
}

// stripFences drops a ```json fence some models wrap around JSON answers.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

func (f *Flows) GenerateAuditReport(ctx context.Context, in AuditReportInput) (*AuditReportOutput, error) {
	v := validation.Violations{}
	validation.Required("auditText", in.AuditText, v)
	if !v.Empty() {
		return nil, apperr.Validation(v)
	}
	prompt, err := render("auditReport", in)
	if err != nil {
		return nil, err
	}
	req := Request{
		Model:  f.textModel,
		System: systemInstruction,
		Parts:  []Part{{Text: prompt}},
		Schema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"summary":     {Type: genai.TypeString, Description: "A concise summary of the audit findings."},
				"actionItems": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Action items to address the findings."},
			},
			Required: []string{"summary", "actionItems"},
		},
	}
	var out AuditReportOutput
	if err := f.generate(ctx, FlowAuditReport, "Failed to generate audit report", req, &out); err != nil {
		return nil, err
	}
	if out.ActionItems == nil {
		out.ActionItems = []string{}
	}
	return &out, nil
}

func (f *Flows) GeneratePresentation(ctx context.Context, in PresentationInput) (*PresentationOutput, error) {
	v := validation.Violations{}
	validation.Required("auditData", in.AuditData, v)
	validation.Required("clientName", in.ClientName, v)
	if !v.Empty() {
		return nil, apperr.Validation(v)
	}
	prompt, err := render("presentation", in)
	if err != nil {
		return nil, err
	}
	req := Request{
		Model:  f.textModel,
		System: systemInstruction,
		Parts:  []Part{{Text: prompt}},
		Schema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"presentation": {Type: genai.TypeString, Description: "The generated presentation text."},
			},
			Required: []string{"presentation"},
		},
	}
	var out PresentationOutput
	if err := f.generate(ctx, FlowPresentation, "Failed to generate presentation", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Flows) ExtractAssetDetailsFromQRCode(ctx context.Context, in AssetDetailsInput) (*AssetDetailsOutput, error) {
	img, err := ParseDataURI(strings.TrimSpace(in.QRCodeDataURI))
	if err != nil {
		return nil, apperr.Invalid("qrCodeDataUri: %v", err)
	}
	prompt, err := render("assetDetails", nil)
	if err != nil {
		return nil, err
	}
	req := Request{
		Model:  f.visionModel,
		System: systemInstruction,
		Parts:  []Part{{Text: prompt}, {Data: img.Data, MIMEType: img.MIMEType}},
		Schema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"assetDetails": {Type: genai.TypeString, Description: "Details of the asset identified by the QR code."},
			},
			Required: []string{"assetDetails"},
		},
	}
	var out AssetDetailsOutput
	if err := f.generate(ctx, FlowAssetDetails, "Failed to extract asset details", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QRCode renders the equipment identifier locally; the provider is not involved.
func (f *Flows) QRCode(_ context.Context, in QRCodeInput) (out *QRCodeOutput, err error) {
	defer func() { f.observe(FlowGenerateQR, err) }()
	v := validation.Violations{}
	validation.Required("equipmentId", in.EquipmentID, v)
	if !v.Empty() {
		return nil, apperr.Validation(v)
	}
	uri, err := EncodeQRCode(in.EquipmentID)
	if err != nil {
		return nil, apperr.Provider(qrFailureMessage, err)
	}
	return &QRCodeOutput{QRCodeDataURI: uri}, nil
}

// GenerateQRCode returns the data URI directly.
func (f *Flows) GenerateQRCode(ctx context.Context, equipmentID string) (string, error) {
	out, err := f.QRCode(ctx, QRCodeInput{EquipmentID: equipmentID})
	if err != nil {
		return "", err
	}
	return out.QRCodeDataURI, nil
}
