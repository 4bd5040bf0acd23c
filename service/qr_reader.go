package service

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/jansahayak/aadhaar-extraction-server/dto"
)

// decodeAadhaarQR looks for an Aadhaar secure QR code in the image and
// parses its PrintLetterBarcodeData XML payload. A fresh reader is used
// per call; gozxing readers keep decode state.
func decodeAadhaarQR(img image.Image) (*dto.AadhaarQRData, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return nil, fmt.Errorf("no QR code found: %w", err)
	}

	var qrData dto.AadhaarQRData
	if err := xml.Unmarshal([]byte(result.GetText()), &qrData); err != nil {
		return nil, fmt.Errorf("QR payload is not Aadhaar letter data: %w", err)
	}
	if qrData.UID == "" && qrData.Name == "" {
		return nil, fmt.Errorf("QR payload carries no identity attributes")
	}
	return &qrData, nil
}

// decodeImage decodes raw PNG/JPEG bytes; image.Decode sniffs the
// actual format regardless of the declared media type.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
