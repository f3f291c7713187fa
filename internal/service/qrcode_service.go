package service

import (
	"encoding/base64"
	"fmt"

	"menuboard/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

// qrPageTargets maps the two enumerated QR targets to their mobile pages.
var qrPageTargets = map[string]string{
	"vote":  "mobile-vote.html",
	"forum": "mobile-forum.html",
}

const qrImageSize = 600

// QRCodeService renders scannable codes linking to the mobile pages.
type QRCodeService struct{}

// NewQRCodeService creates a QR code service.
func NewQRCodeService() *QRCodeService {
	return &QRCodeService{}
}

// QRCode is a rendered code plus the URL it encodes.
type QRCode struct {
	DataURL string
	URL     string
}

// Generate renders a high-error-correction PNG for the given page target,
// encoding a URL built from the requesting host.
func (s *QRCodeService) Generate(host, target string) (*QRCode, error) {
	page, ok := qrPageTargets[target]
	if !ok {
		return nil, models.NewValidationError("QR code type must be 'vote' or 'forum'")
	}

	url := fmt.Sprintf("http://%s/%s", host, page)

	png, err := qrcode.Encode(url, qrcode.High, qrImageSize)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &QRCode{
		DataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		URL:     url,
	}, nil
}
