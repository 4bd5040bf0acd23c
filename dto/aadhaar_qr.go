package dto

import (
	"encoding/xml"
	"strings"
)

// AadhaarQRData is the XML payload embedded in the Aadhaar secure QR
// code (UIDAI PrintLetterBarcodeData format).
type AadhaarQRData struct {
	XMLName     xml.Name `xml:"PrintLetterBarcodeData"`
	UID         string   `xml:"uid,attr"`
	Name        string   `xml:"name,attr"`
	Gender      string   `xml:"gender,attr"`
	YearOfBirth string   `xml:"yob,attr"`
	DateOfBirth string   `xml:"dob,attr"`
	CareOf      string   `xml:"co,attr"`
	House       string   `xml:"house,attr"`
	Street      string   `xml:"street,attr"`
	Landmark    string   `xml:"lm,attr"`
	Locality    string   `xml:"loc,attr"`
	VTC         string   `xml:"vtc,attr"`
	PostOffice  string   `xml:"po,attr"`
	District    string   `xml:"dist,attr"`
	SubDistrict string   `xml:"subdist,attr"`
	State       string   `xml:"state,attr"`
	PinCode     string   `xml:"pc,attr"`
}

// ToAadhaarData maps the QR payload onto the extraction record.
func (q *AadhaarQRData) ToAadhaarData() AadhaarData {
	return AadhaarData{
		Name:        q.Name,
		FatherName:  q.GuardianName(),
		DateOfBirth: q.DOB(),
		IDNumber:    formatAadhaarNumber(q.UID),
		Address:     q.FullAddress(),
		Gender:      q.Gender,
	}
}

// GuardianName returns the care-of value without its relationship
// marker ("S/O RAM KUMAR" -> "RAM KUMAR").
func (q *AadhaarQRData) GuardianName() string {
	co := strings.TrimSpace(q.CareOf)
	for _, marker := range []string{"S/O ", "D/O ", "W/O ", "C/O "} {
		if strings.HasPrefix(strings.ToUpper(co), marker) {
			return strings.TrimSpace(co[len(marker):])
		}
	}
	return co
}

// DOB prefers the full date of birth, falling back to year of birth.
func (q *AadhaarQRData) DOB() string {
	if q.DateOfBirth != "" {
		return q.DateOfBirth
	}
	return q.YearOfBirth
}

// FullAddress joins the address attributes in printed-letter order.
func (q *AadhaarQRData) FullAddress() string {
	parts := []string{}
	for _, p := range []string{
		q.House, q.Street, q.Landmark, q.Locality,
		q.VTC, q.PostOffice, q.SubDistrict, q.District, q.State, q.PinCode,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// formatAadhaarNumber groups a 12-digit UID as "XXXX XXXX XXXX".
func formatAadhaarNumber(uid string) string {
	if len(uid) != 12 {
		return uid
	}
	return uid[0:4] + " " + uid[4:8] + " " + uid[8:12]
}
